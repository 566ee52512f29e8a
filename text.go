// Copyright 2012 - 2018 The ASCIIToSVG Contributors
// All rights reserved.

package asciitosvg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/a2s-go/asciitosvg/internal/tagjson"
)

// TagError is returned when the options attached to a tag cannot be decoded.
type TagError struct {
	// Tag is the name of the tag being defined.
	Tag string
	// Definition is the raw text of the options.
	Definition string
	// Pos is the grid coordinate where the tag starts.
	Pos Point
	// Err is the decoding error.
	Err error
}

func (e *TagError) Error() string {
	return fmt.Sprintf("invalid options for tag [%s] at %s: %s: %v", e.Tag, e.Pos, e.Definition, e.Err)
}

func (e *TagError) Unwrap() error {
	return e.Err
}

// States of the tag recognizer in scanText.
const (
	tagNone   = iota // Plain text.
	tagName          // Inside '[', collecting the tag name.
	tagClosed        // Just saw ']'; a ':' may introduce options.
	tagRef           // A completed reference followed by plain text.
	tagBody          // Collecting the options object.
	tagDone          // Options object complete.
)

// tagScanner accumulates a tag while scanText walks a run of text.
type tagScanner struct {
	state  int
	inline bool // The options are inside the brackets, as in [name:{...}].
	name   []rune
	body   []rune
	brace  bool // The body has reached its opening '{'.
	depth  int
	quoted bool
	escape bool
}

// feedBody adds ch to the options object and reports whether it is still a candidate definition.
func (t *tagScanner) feedBody(ch char) bool {
	r := rune(ch)
	if !t.brace {
		switch {
		case ch.isSpace():
			t.body = append(t.body, r)
			return true
		case r != '{':
			return false
		}
		t.brace = true
	}
	t.body = append(t.body, r)
	switch {
	case t.escape:
		t.escape = false
	case t.quoted:
		switch r {
		case '\\':
			t.escape = true
		case '"':
			t.quoted = false
		}
	case r == '"':
		t.quoted = true
	case r == '{':
		t.depth++
	case r == '}':
		t.depth--
		if t.depth == 0 {
			t.state = tagDone
		}
	}
	return true
}

// scanText extracts a line of text starting at start. Text that opens with '[' may reference a
// tag, as in [name], or define its options, as in [name]: {...} or [name:{...}].
func (c *canvas) scanText(start Point) (*object, error) {
	obj := &object{points: []Point{start}, isText: true}
	whiteSpaceStreak := 0
	cur := start

	t := &tagScanner{}
	if c.at(start).isObjectStartTag() {
		t.state = tagName
	}

	for t.state != tagDone && c.canRight(cur) {
		cur.X++
		ch := c.at(cur)
		if c.isVisited(cur) && t.state != tagBody {
			// Hit a box or path.
			break
		}
		if !ch.isTextCont() {
			break
		}

		switch t.state {
		case tagName:
			switch {
			case ch.isObjectEndTag():
				t.state = tagClosed
			case ch.isTagDefinitionSeparator() && len(t.name) > 0 && c.canRight(cur) && c.at(Point{X: cur.X + 1, Y: cur.Y}) == '{':
				t.state = tagBody
				t.inline = true
			default:
				t.name = append(t.name, rune(ch))
			}
			obj.points = append(obj.points, cur)
			continue
		case tagClosed:
			if ch.isTagDefinitionSeparator() && len(t.name) > 0 {
				t.state = tagBody
				obj.points = append(obj.points, cur)
				continue
			}
			t.state = tagRef
		case tagBody:
			if t.feedBody(ch) {
				obj.points = append(obj.points, cur)
				continue
			}
			// Not an options object after all: keep the reference and carry on as text.
			t.state = tagRef
			t.body = nil
		}

		if t.state == tagRef && c.isVisited(cur) {
			break
		}
		if ch.isSpace() {
			whiteSpaceStreak++
			// Stop if hit 3 consecutive whitespace.
			if whiteSpaceStreak > 2 {
				break
			}
		} else {
			whiteSpaceStreak = 0
		}
		obj.points = append(obj.points, cur)
	}

	// An inline definition owns its closing bracket.
	if t.state == tagDone && t.inline && c.canRight(cur) {
		if n := (Point{X: cur.X + 1, Y: cur.Y}); c.at(n).isObjectEndTag() && !c.isVisited(n) {
			obj.points = append(obj.points, n)
		}
	}

	// Trim trailing space.
	for len(obj.points) > 1 && c.at(obj.points[len(obj.points)-1]).isSpace() {
		obj.points = obj.points[:len(obj.points)-1]
	}
	obj.sealText(c)

	name := string(t.name)
	switch {
	case t.state == tagDone || (t.state == tagBody && t.brace):
		if err := c.defineTag(name, string(t.body), start); err != nil {
			return nil, err
		}
		obj.isTagDef = true
	case t.state == tagClosed || t.state == tagRef || t.state == tagBody:
		if name == "" {
			break
		}
		c.referenceTag(name, start)
		obj.tag = name
	case t.state == tagName:
		c.log.Debug().Stringer("at", start).Msg("unmatched '[', treating as text")
	}
	return obj, nil
}

// referenceTag binds name to the innermost closed path containing p.
func (c *canvas) referenceTag(name string, p Point) {
	ids := c.enclosing(p)
	if len(ids) == 0 {
		c.log.Debug().Str("tag", name).Stringer("at", p).Msg("tag reference outside any closed path, ignored")
		return
	}
	c.retag(ids[0], name)
}

// defineTag registers the options of tag name. A name made of two integers, as in [12,3], also
// binds the tag to the path whose top-left corner sits at those coordinates.
func (c *canvas) defineTag(name, definition string, at Point) error {
	v, err := tagjson.Decode([]byte(definition))
	if err != nil {
		return &TagError{Tag: name, Definition: strings.TrimSpace(definition), Pos: at, Err: err}
	}
	c.options[name] = v
	c.log.Debug().Str("tag", name).Stringer("at", at).Msg("tag defined")

	p, ok := parseCoordinates(name)
	if !ok {
		return nil
	}
	for i, o := range c.objects {
		if !o.isText && o.topLeft().at(p) {
			c.retag(objectID(i), name)
			return nil
		}
	}
	return nil
}

// parseCoordinates parses "x,y".
func parseCoordinates(s string) (Point, bool) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Point{}, false
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return Point{}, false
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}
