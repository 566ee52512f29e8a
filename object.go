// Copyright 2012 - 2018 The ASCIIToSVG Contributors
// All rights reserved.

package asciitosvg

import "fmt"

// Object is an interface for working with open paths (lines), closed paths (polygons), or text.
type Object interface {
	fmt.Stringer
	// Points returns all the points occupied by this Object. Every object has at least one point,
	// and all points are both in-order and contiguous.
	Points() []Point
	// HasPoint returns true if the object contains the supplied Point coordinates.
	HasPoint(Point) bool
	// Corners returns all the corners (change of direction) along the path.
	Corners() []Point
	// IsClosed is true if the object is composed of a closed path.
	IsClosed() bool
	// IsDashed is true if this object is a path object, and lines should be drawn dashed.
	IsDashed() bool
	// IsText returns true if the object is textual and does not represent a path.
	IsText() bool
	// IsTagDefinition is true for text that registers options for a tag rather than being
	// displayed.
	IsTagDefinition() bool
	// Text returns the glyphs under the object's points.
	Text() []rune
	// Tag returns the tag of this object, if any.
	Tag() string
}

// object implements Object and represents one of an open path, a closed path, or text. Once
// sealed it is never modified; retagging produces a copy.
type object struct {
	// points always starts with the top most, then left most point, proceeding to the right.
	points   []Point
	isText   bool
	isTagDef bool
	text     []rune
	corners  []Point
	isClosed bool
	isDashed bool
	tag      string
}

func (o *object) Points() []Point       { return o.points }
func (o *object) Corners() []Point      { return o.corners }
func (o *object) IsClosed() bool        { return o.isClosed }
func (o *object) IsText() bool          { return o.isText }
func (o *object) IsTagDefinition() bool { return o.isTagDef }
func (o *object) IsDashed() bool        { return o.isDashed }
func (o *object) Text() []rune          { return o.text }
func (o *object) Tag() string           { return o.tag }

func (o *object) String() string {
	if o.IsText() {
		return fmt.Sprintf("Text{%s %q}", o.points[0], string(o.text))
	}
	return fmt.Sprintf("Path{%s}", o.points[0])
}

// topLeft is the first corner of a path, which is where the scan entered it.
func (o *object) topLeft() Point {
	if len(o.corners) == 0 {
		return o.points[0]
	}
	return o.corners[0]
}

// withTag returns a copy of o carrying tag. Geometry is shared since it is never mutated.
func (o *object) withTag(tag string) *object {
	c := *o
	c.tag = tag
	return &c
}

// HasPoint determines whether the supplied point lives inside the object. Since we support complex
// convex and concave polygons, we need to do a full point-in-polygon test. The algorithm implemented
// comes from the more efficient, less-clever version at http://alienryderflex.com/polygon/.
func (o *object) HasPoint(p Point) bool {
	hasPoint := false
	ncorners := len(o.corners)
	j := ncorners - 1
	x, y := float64(p.X), float64(p.Y)
	for i := 0; i < ncorners; i++ {
		ci, cj := o.corners[i], o.corners[j]
		if (ci.Y < p.Y && cj.Y >= p.Y || cj.Y < p.Y && ci.Y >= p.Y) && (ci.X <= p.X || cj.X <= p.X) {
			xi, yi := float64(ci.X), float64(ci.Y)
			if xi+(y-yi)/(float64(cj.Y)-yi)*(float64(cj.X)-xi) < x {
				hasPoint = !hasPoint
			}
		}
		j = i
	}
	return hasPoint
}

// seal finalizes a path object, setting its text, its corners, and its various rendering hints.
func (o *object) seal(c *canvas) {
	last := len(o.points) - 1
	if c.at(o.points[0]).isArrow() {
		o.points[0].Hint = StartMarker
	}
	if c.at(o.points[last]).isArrow() {
		o.points[last].Hint = EndMarker
	}

	corners, isClosed := pointsToCorners(o.points)
	o.isClosed = isClosed
	o.text = make([]rune, len(o.points))

	isCorner := make(map[Point]bool, len(corners))
	for _, corner := range corners {
		isCorner[Point{X: corner.X, Y: corner.Y}] = true
	}

	for i, p := range o.points {
		ch := c.at(p)
		switch {
		case ch.isTick():
			o.points[i].Hint = Tick
		case ch.isDot():
			o.points[i].Hint = Dot
		case ch.isRoundedCorner() && isCorner[Point{X: p.X, Y: p.Y}]:
			o.points[i].Hint = RoundedCorner
		}
		if ch.isDashed() {
			o.isDashed = true
		}
		o.text[i] = rune(ch)
	}

	// Corners carry the final hints so the renderer only needs the compressed path.
	o.corners = make([]Point, len(corners))
	for i, corner := range corners {
		o.corners[i] = o.pointAt(corner)
	}
}

// sealText finalizes a text object.
func (o *object) sealText(c *canvas) {
	o.corners, _ = pointsToCorners(o.points)
	o.text = make([]rune, len(o.points))
	for i, p := range o.points {
		o.text[i] = rune(c.at(p))
	}
}

// pointAt returns the point of o at the coordinates of q, hints included.
func (o *object) pointAt(q Point) Point {
	for _, p := range o.points {
		if p.at(q) {
			return p
		}
	}
	return q
}

// pointsToCorners returns all the corners (points at which there is a change of directionality) for
// a path. It additionally returns a truth value indicating whether the points supplied indicate a
// closed path.
func pointsToCorners(points []Point) ([]Point, bool) {
	l := len(points)
	// A path containing fewer than 3 points can neither be closed, nor change direction.
	if l < 3 {
		return points, false
	}
	out := []Point{points[0]}

	dir := stepDirection(points[0], points[1])
	if dir == dirNone {
		panic(fmt.Errorf("discontiguous points: %+v", points))
	}

	// Starting from the third point, check to see if the directionality between points P and
	// P-1 has changed.
	for i := 2; i < l; i++ {
		newDir := stepDirection(points[i-1], points[i])
		if newDir == dirNone {
			panic(fmt.Errorf("discontiguous points: %+v", points))
		}
		if newDir != dir {
			out = append(out, points[i-1])
			dir = newDir
		}
	}

	// Check if the points indicate a closed path. If not, append the last point.
	last := points[l-1]
	closing := stepDirection(points[0], last)
	if closing != dirH && closing != dirV {
		// We always find a closed polygon from its top-left-most point. If it is closed
		// diagonally, it must be closed in the north-easterly direction.
		closing = dirNone
		if stepDirection(last, points[0]) == dirNE {
			closing = dirNE
		}
	}
	if closing == dirNone || closing != dir {
		return append(out, last), false
	}
	return out, true
}
