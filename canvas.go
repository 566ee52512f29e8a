// Copyright 2012 - 2018 The ASCIIToSVG Contributors
// All rights reserved.

package asciitosvg

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidUTF8 is returned when the diagram is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 encoding")

// Canvas provides methods for returning objects from an underlying textual grid.
type Canvas interface {
	// A Canvas has an underlying visual representation. The fmt.Stringer interface for this
	// interface provides a view into the underlying grid.
	fmt.Stringer
	// Objects returns all the objects found in the underlying grid, paths first, in the order
	// they were discovered.
	Objects() []Object
	// Size returns the visual dimensions of the Canvas.
	Size() image.Point
	// Options returns the tag options registered while parsing the diagram.
	Options() TagOptions
	// EnclosingObjects returns the closed objects containing p, innermost first.
	EnclosingObjects(p Point) []Object
}

// CanvasOption configures how a Canvas is built.
type CanvasOption func(*canvas)

// WithLogger makes the canvas report what it finds to l.
func WithLogger(l zerolog.Logger) CanvasOption {
	return func(c *canvas) { c.log = l }
}

// WithNormalization composes the diagram to Unicode NFC before building the grid, so that
// combining sequences occupy a single cell.
func WithNormalization() CanvasOption {
	return func(c *canvas) { c.normalize = true }
}

// NewCanvas returns a new Canvas, initialized from the provided data. If tabWidth is set to a
// positive value, every tab is replaced by that many spaces. noBlur drops the drop-shadow filter
// from the default styling of closed paths. Creation fails if the diagram is not valid UTF-8 or if
// one of its tag definitions cannot be decoded.
func NewCanvas(data []byte, tabWidth int, noBlur bool, opts ...CanvasOption) (Canvas, error) {
	c := &canvas{
		options: newTagOptions(noBlur),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.normalize {
		data = norm.NFC.Bytes(data)
	}

	lines := bytes.Split(data, []byte("\n"))
	c.size.Y = len(lines)

	// Diagrams will often not be padded to a uniform width. To be able to manipulate the Canvas as a
	// 2-D array, we need to ensure all lines are padded with spaces.
	for i, line := range lines {
		lines[i] = expandTabs(line, tabWidth)
		if n := utf8.RuneCount(lines[i]); n > c.size.X {
			c.size.X = n
		}
	}

	c.grid = make([]char, c.size.X*c.size.Y)
	c.visited = make([]bool, c.size.X*c.size.Y)
	for y, line := range lines {
		x := 0
		for len(line) > 0 {
			r, l := utf8.DecodeRune(line)
			if r == utf8.RuneError && l <= 1 {
				return nil, fmt.Errorf("%w on line %d", ErrInvalidUTF8, y+1)
			}
			c.grid[y*c.size.X+x] = char(r)
			x++
			line = line[l:]
		}
		for ; x < c.size.X; x++ {
			c.grid[y*c.size.X+x] = ' '
		}
	}

	if err := c.findObjects(); err != nil {
		return nil, err
	}
	return c, nil
}

// expandTabs replaces every tab in line with tabWidth spaces.
func expandTabs(line []byte, tabWidth int) []byte {
	if tabWidth <= 0 || bytes.IndexByte(line, '\t') < 0 {
		return line
	}
	return bytes.ReplaceAll(line, []byte("\t"), bytes.Repeat([]byte(" "), tabWidth))
}

// objectID is a stable handle to an object owned by a canvas.
type objectID int

// canvas is the parsed source data.
type canvas struct {
	// (0,0) is top left.
	grid      []char
	visited   []bool
	objects   []*object
	size      image.Point
	options   TagOptions
	log       zerolog.Logger
	normalize bool
}

func (c *canvas) String() string {
	var b bytes.Buffer
	for y := 0; y < c.size.Y; y++ {
		for x := 0; x < c.size.X; x++ {
			b.WriteRune(rune(c.grid[y*c.size.X+x]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *canvas) Objects() []Object {
	out := make([]Object, len(c.objects))
	for i, o := range c.objects {
		out[i] = o
	}
	return out
}

func (c *canvas) Size() image.Point {
	return c.size
}

func (c *canvas) Options() TagOptions {
	return c.options
}

// EnclosingObjects returns the closed paths containing p. The innermost container comes first:
// containers are ordered by their top-left corner, greatest X first, then greatest Y.
func (c *canvas) EnclosingObjects(p Point) []Object {
	var out []Object
	for _, id := range c.enclosing(p) {
		out = append(out, c.objects[id])
	}
	return out
}

func (c *canvas) enclosing(p Point) []objectID {
	var ids []objectID
	for i, o := range c.objects {
		// An object can't really contain another unless it is a polygon.
		if !o.IsClosed() || !o.HasPoint(p) {
			continue
		}
		ids = append(ids, objectID(i))
	}
	// Insertion sort keeps discovery order between containers sharing a top-left corner.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && c.inside(ids[j], ids[j-1]); j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	return ids
}

// inside reports whether a is nested deeper than b, judged by their top-left corners.
func (c *canvas) inside(a, b objectID) bool {
	ta, tb := c.objects[a].topLeft(), c.objects[b].topLeft()
	if ta.X != tb.X {
		return ta.X > tb.X
	}
	return ta.Y > tb.Y
}

// add stores o in the arena and returns its handle.
func (c *canvas) add(o *object) objectID {
	c.objects = append(c.objects, o)
	return objectID(len(c.objects) - 1)
}

// retag replaces the object at id with a copy carrying tag.
func (c *canvas) retag(id objectID, tag string) {
	c.log.Debug().Str("tag", tag).Stringer("object", c.objects[id]).Msg("tag bound")
	c.objects[id] = c.objects[id].withTag(tag)
}

// findObjects runs both passes over the grid: line art first, then text.
func (c *canvas) findObjects() error {
	p := Point{}

	// Find any new paths by starting with a point that wasn't yet visited, beginning at the top
	// left of the grid.
	for y := 0; y < c.size.Y; y++ {
		p.Y = y
		for x := 0; x < c.size.X; x++ {
			p.X = x
			if c.isVisited(p) {
				continue
			}
			if ch := c.at(p); ch.isPathStart() {
				// Found the start of one or multiple connected paths. Traverse all connecting
				// points. This will generate multiple objects if multiple paths (either open or
				// closed) are found.
				c.visit(p)
				for _, obj := range c.scanPath(p) {
					// For all points in all objects found, mark the points as visited.
					for _, p := range obj.Points() {
						c.visit(p)
					}
					c.log.Trace().Stringer("object", obj).Bool("closed", obj.isClosed).Msg("path found")
					c.add(obj)
				}
			}
		}
	}

	// A second pass through the grid attempts to identify any text within the grid.
	for y := 0; y < c.size.Y; y++ {
		p.Y = y
		for x := 0; x < c.size.X; x++ {
			p.X = x
			if c.isVisited(p) {
				continue
			}
			if ch := c.at(p); ch.isTextStart() {
				obj, err := c.scanText(p)
				if err != nil {
					return err
				}
				if obj == nil {
					continue
				}
				for _, p := range obj.Points() {
					c.visit(p)
				}
				c.log.Trace().Stringer("object", obj).Msg("text found")
				c.add(obj)
			}
		}
	}

	c.log.Debug().Int("objects", len(c.objects)).Int("width", c.size.X).Int("height", c.size.Y).Msg("canvas parsed")
	return nil
}

func (c *canvas) at(p Point) char {
	return c.grid[p.Y*c.size.X+p.X]
}

func (c *canvas) isVisited(p Point) bool {
	return c.visited[p.Y*c.size.X+p.X]
}

func (c *canvas) visit(p Point) {
	c.visited[p.Y*c.size.X+p.X] = true
}

func (c *canvas) unvisit(p Point) {
	o := p.Y*c.size.X + p.X
	if !c.visited[o] {
		panic(fmt.Errorf("internal error: unvisiting %s, which was never visited", p))
	}
	c.visited[o] = false
}

func (c *canvas) canLeft(p Point) bool {
	return p.X > 0
}

func (c *canvas) canRight(p Point) bool {
	return p.X < c.size.X-1
}

func (c *canvas) canUp(p Point) bool {
	return p.Y > 0
}

func (c *canvas) canDown(p Point) bool {
	return p.Y < c.size.Y-1
}

// canDiagonal reports whether p has room for a diagonal step in some direction.
func (c *canvas) canDiagonal(p Point) bool {
	return (c.canLeft(p) || c.canRight(p)) && (c.canUp(p) || c.canDown(p))
}
