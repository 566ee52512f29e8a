// Copyright 2012 - 2018 The ASCIIToSVG Contributors
// All rights reserved.

package asciitosvg

import "fmt"

// A RenderHint suggests ways the SVG renderer may appropriately represent this point.
type RenderHint int

const (
	// No hints are provided for this point.
	None RenderHint = iota
	// This point represents a corner that should be rounded.
	RoundedCorner
	// This point should have an SVG marker-start attribute associated with it.
	StartMarker
	// This point should have an SVG marker-end attribute associated with it.
	EndMarker
	// This is a path component that should have a strikethrough at this point.
	Tick
	// This is a path component that should have a dot at this point.
	Dot
)

var hintNames = [...]string{"None", "RoundedCorner", "StartMarker", "EndMarker", "Tick", "Dot"}

func (h RenderHint) String() string {
	if h < 0 || int(h) >= len(hintNames) {
		return fmt.Sprintf("RenderHint(%d)", int(h))
	}
	return hintNames[h]
}

// A Point is an X,Y coordinate in the diagram's grid. The grid represents (0, 0) as the top-left
// of the diagram. The Point also provides hints to the renderer as to how it should be interpreted.
type Point struct {
	// The X coordinate of this point.
	X int
	// The Y coordinate of this point.
	Y int
	// Hints for the renderer.
	Hint RenderHint
}

// String implements fmt.Stringer on Point.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// at reports whether p sits on the grid cell (x, y), ignoring hints.
func (p Point) at(q Point) bool {
	return p.X == q.X && p.Y == q.Y
}

// direction is the class of a unit step between two adjacent points.
type direction int

const (
	dirNone direction = iota // No directionality
	dirH                     // Horizontal
	dirV                     // Vertical
	dirSE                    // South-East
	dirSW                    // South-West
	dirNW                    // North-West
	dirNE                    // North-East
)

// stepDirection classifies the step from p1 to p2. Points that are not neighbours yield dirNone.
func stepDirection(p1, p2 Point) direction {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	switch {
	case dy == 0 && dx >= -1 && dx <= 1:
		return dirH
	case dx == 0 && dy >= -1 && dy <= 1:
		return dirV
	case dx == 1 && dy == 1:
		return dirSE
	case dx == -1 && dy == 1:
		return dirSW
	case dx == -1 && dy == -1:
		return dirNW
	case dx == 1 && dy == -1:
		return dirNE
	}
	return dirNone
}
