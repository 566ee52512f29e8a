// Copyright 2012 - 2018 The ASCIIToSVG Contributors
// All rights reserved.

package asciitosvg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// DefaultFont is the font-family of the text layer when none is given.
const DefaultFont = "Consolas,Monaco,Anonymous Pro,Anonymous,Bitstream Sans Mono,monospace"

const (
	header    = "<!DOCTYPE svg PUBLIC \"-//W3C//DTD SVG 1.1//EN\" \"http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd\">\n"
	watermark = "<!-- Created with ASCIItoSVG -->\n"
	svgTag    = "<svg width=\"%dpx\" height=\"%dpx\" version=\"1.1\" xmlns=\"http://www.w3.org/2000/svg\" xmlns:xlink=\"http://www.w3.org/1999/xlink\">\n"

	// Path related tag.
	pathTag       = "    %s<path id=\"%s%d\" %sd=\"%s\" />%s\n"
	pathMarkStart = "marker-start=\"url(#iPointer)\" "
	pathMarkEnd   = "marker-end=\"url(#Pointer)\" "
	pathDashed    = "stroke-dasharray=\"5 5\" "

	// Decorations drawn on ticks and dots.
	tickTag = "    <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke-width=\"1\" />\n"
	dotTag  = "    <circle cx=\"%g\" cy=\"%g\" r=\"3\" fill=\"#000\" />\n"

	// Text related tag.
	textGroupTag = "  <g id=\"text\" stroke=\"none\" style=\"font-family:%s;font-size:15.2px\" >\n"
	textTag      = "    %s<text id=\"obj%d\" x=\"%g\" y=\"%g\" fill=\"%s\">%s</text>%s\n"

	linkStart = "<a xlink:href=\"%s\">"
	linkEnd   = "</a>"

	// Without the blur step the shadow is a plain offset copy.
	blurStep = "      <feGaussianBlur result=\"blurOut\" in=\"matrixOut\" stdDeviation=\"3\"/>\n"
	defsTag  = `  <defs>
    <filter id="dsFilter" width="150%%" height="150%%">
      <feOffset result="offOut" in="SourceGraphic" dx="2" dy="2"/>
      <feColorMatrix result="matrixOut" in="offOut" type="matrix" values="0.2 0 0 0 0 0 0.2 0 0 0 0 0 0.2 0 0 0 0 0 1 0"/>
%s      <feBlend in="SourceGraphic" in2="%s" mode="normal"/>
    </filter>
    <marker id="iPointer"
      viewBox="0 0 10 10" refX="5" refY="5"
      markerUnits="strokeWidth"
      markerWidth="%g" markerHeight="%g"
      orient="auto">
      <path d="M 10 0 L 10 10 L 0 5 z" />
    </marker>
    <marker id="Pointer"
      viewBox="0 0 10 10" refX="5" refY="5"
      markerUnits="strokeWidth"
      markerWidth="%g" markerHeight="%g"
      orient="auto">
      <path d="M 0 0 L 10 5 L 0 10 z" />
    </marker>
  </defs>
`

	// cornerRadius is the offset, in pixels, of the control points of a rounded corner.
	cornerRadius = 10
)

// CanvasToSVG renders the supplied Canvas to an SVG document. Closed paths are drawn first, then
// open paths, then text, so that lines and labels stay visible on top of filled boxes.
func CanvasToSVG(c Canvas, noBlur bool, font string, scaleX, scaleY int) []byte {
	if len(font) == 0 {
		font = DefaultFont
	}
	opts := c.Options()
	objs := c.Objects()

	// Generating the XML manually is a tad fishy but encoding/xml enforces a standard XML
	// header and the end code would be significantly larger. The down side is potential
	// escaping errors.
	b := &bytes.Buffer{}
	_, _ = io.WriteString(b, header)
	_, _ = io.WriteString(b, watermark)
	_, _ = fmt.Fprintf(b, svgTag, (c.Size().X+1)*scaleX, (c.Size().Y+1)*scaleY)
	blur, blend := blurStep, "blurOut"
	if noBlur {
		blur, blend = "", "matrixOut"
	}
	mx, my := float64(scaleX-1), float64(scaleY-1)
	_, _ = fmt.Fprintf(b, defsTag, blur, blend, mx, my, mx, my)

	_, _ = io.WriteString(b, "  <g id=\"closed\" stroke=\"#000\" stroke-width=\"2\" fill=\"none\">\n")
	for i, obj := range objs {
		if !obj.IsClosed() || obj.IsText() {
			continue
		}
		m := closedAttributes(opts, obj.Tag())
		attrs := ""
		if obj.IsDashed() {
			attrs += pathDashed
		}
		attrs += svgAttributes(m)
		start, end := link(m)
		_, _ = fmt.Fprintf(b, pathTag, start, "closed", i, attrs, flatten(obj.Corners(), true, scaleX, scaleY), end)
	}
	_, _ = io.WriteString(b, "  </g>\n")

	_, _ = io.WriteString(b, "  <g id=\"lines\" stroke=\"#000\" stroke-width=\"2\" fill=\"none\">\n")
	for i, obj := range objs {
		if obj.IsClosed() || obj.IsText() {
			continue
		}
		points := obj.Points()
		attrs := ""
		if obj.IsDashed() {
			attrs += pathDashed
		}
		if points[0].Hint == StartMarker {
			attrs += pathMarkStart
		}
		if points[len(points)-1].Hint == EndMarker {
			attrs += pathMarkEnd
		}
		m, _ := opts.Attributes(obj.Tag())
		attrs += svgAttributes(m)
		start, end := link(m)

		for _, p := range points {
			x, y := scale(p, scaleX, scaleY)
			switch p.Hint {
			case Dot:
				_, _ = fmt.Fprintf(b, dotTag, x, y)
			case Tick:
				_, _ = fmt.Fprintf(b, tickTag, x-4, y-4, x+4, y+4)
				_, _ = fmt.Fprintf(b, tickTag, x+4, y-4, x-4, y+4)
			}
		}
		_, _ = fmt.Fprintf(b, pathTag, start, "open", i, attrs, flatten(obj.Corners(), false, scaleX, scaleY), end)
	}
	_, _ = io.WriteString(b, "  </g>\n")

	_, _ = fmt.Fprintf(b, textGroupTag, escape(font))
	for i, obj := range objs {
		if !obj.IsText() || obj.IsTagDefinition() {
			continue
		}
		tag := obj.Tag()
		// If we're told to delete the reference, then skip the text entirely.
		if _, ok := opts.lookup(tag, DelRefOption); ok && atFirstColumn(c, obj) {
			continue
		}
		text := string(obj.Text())
		if label, ok := opts.lookup(tag, LabelOption); ok {
			text = label
		}
		m, _ := opts.Attributes(tag)
		start, end := link(m)
		topleft := obj.Points()[0]
		x := float64(topleft.X * scaleX)
		y := (float64(topleft.Y) + .75) * float64(scaleY)
		_, _ = fmt.Fprintf(b, textTag, start, i, x, y, findTextColor(c, obj), escape(text), end)
	}
	_, _ = io.WriteString(b, "  </g>\n")

	_, _ = io.WriteString(b, "</svg>\n")
	return b.Bytes()
}

// closedAttributes returns the options styling a closed path with the given tag. Untagged paths,
// and paths whose tag was never defined, get the default style. A missing fill is white.
func closedAttributes(opts TagOptions, tag string) map[string]interface{} {
	m, ok := opts.Attributes(tag)
	if !ok {
		m, _ = opts.Attributes(defaultClosedTag)
	}
	if _, ok := m["fill"]; ok {
		return m
	}
	filled := make(map[string]interface{}, len(m)+1)
	for k, v := range m {
		filled[k] = v
	}
	filled["fill"] = "#fff"
	return filled
}

// link returns the anchor wrapping an element whose options carry a link.
func link(m map[string]interface{}) (string, string) {
	v, ok := m[LinkOption]
	if !ok {
		return "", ""
	}
	return fmt.Sprintf(linkStart, escape(optionString(v))), linkEnd
}

// findTextColor picks a text color readable on the fill of the innermost tagged container of o.
func findTextColor(c Canvas, o Object) string {
	opts := c.Options()
	for _, container := range c.EnclosingObjects(o.Points()[0]) {
		fill, ok := opts.lookup(container.Tag(), "fill")
		if !ok || fill == "none" {
			continue
		}
		color, err := textColor(fill)
		if err != nil {
			// Unknown colors fall back to black text.
			return "#000"
		}
		return color
	}
	return "#000"
}

// atFirstColumn reports whether text o starts in the column right after the top-left corner of its
// innermost container.
func atFirstColumn(c Canvas, o Object) bool {
	p := o.Points()[0]
	containers := c.EnclosingObjects(p)
	if len(containers) == 0 {
		return false
	}
	return containers[0].Points()[0].X+1 == p.X
}

func escape(s string) string {
	b := &bytes.Buffer{}
	if err := xml.EscapeText(b, []byte(s)); err != nil {
		panic(err)
	}
	return b.String()
}

// scale returns the pixel coordinates of the center of p's cell.
func scale(p Point, scaleX, scaleY int) (float64, float64) {
	return (float64(p.X) + .5) * float64(scaleX), (float64(p.Y) + .5) * float64(scaleY)
}

// flatten turns the corners of a path into SVG path data. Rounded corners are drawn as quadratic
// Bezier curves whose control point is the corner itself.
func flatten(corners []Point, closed bool, scaleX, scaleY int) string {
	var out []string
	for i, cp := range corners {
		x, y := scale(cp, scaleX, scaleY)
		if i == 0 {
			// A closed path is always entered at its top-left corner heading right, and left
			// heading up, so a rounded start turns from below to the right.
			if closed && cp.Hint == RoundedCorner {
				out = append(out, fmt.Sprintf("M %g %g Q %g %g %g %g", x, y+cornerRadius, x, y, x+cornerRadius, y))
			} else {
				out = append(out, fmt.Sprintf("M %g %g", x, y))
			}
			continue
		}
		if cp.Hint == RoundedCorner && (closed || i < len(corners)-1) {
			next := corners[0]
			if i < len(corners)-1 {
				next = corners[i+1]
			}
			px, py := scale(corners[i-1], scaleX, scaleY)
			nx, ny := scale(next, scaleX, scaleY)
			if sx, sy, ex, ey, ok := roundedTurn(px, py, x, y, nx, ny); ok {
				out = append(out, fmt.Sprintf("L %g %g Q %g %g %g %g", sx, sy, x, y, ex, ey))
				continue
			}
		}
		out = append(out, fmt.Sprintf("L %g %g", x, y))
	}
	if closed {
		out = append(out, "Z")
	}
	return strings.Join(out, " ")
}

// roundedTurn computes the start and end of the curve replacing the corner (x, y), reached from
// (px, py) and left towards (nx, ny). Only turns between a horizontal and a vertical segment can
// be rounded.
func roundedTurn(px, py, x, y, nx, ny float64) (sx, sy, ex, ey float64, ok bool) {
	switch {
	case px == x && ny == y:
		sx, ey = x, y
		if py < y {
			sy = y - cornerRadius
		} else {
			sy = y + cornerRadius
		}
		if nx < x {
			ex = x - cornerRadius
		} else {
			ex = x + cornerRadius
		}
	case py == y && nx == x:
		sy, ex = y, x
		if px < x {
			sx = x - cornerRadius
		} else {
			sx = x + cornerRadius
		}
		if ny <= y {
			ey = y - cornerRadius
		} else {
			ey = y + cornerRadius
		}
	default:
		return 0, 0, 0, 0, false
	}
	return sx, sy, ex, ey, true
}
