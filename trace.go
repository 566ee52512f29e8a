// Copyright 2012 - 2018 The ASCIIToSVG Contributors
// All rights reserved.

package asciitosvg

import "fmt"

// traceFrame is one level of the depth-first walk: a partial path and the neighbours of its last
// point that have not been tried yet.
type traceFrame struct {
	points []Point
	next   []Point
}

// scanPath completes one or multiple paths or boxes starting at start, which must already be
// visited. It walks depth-first with an explicit stack so arbitrarily long lines cannot exhaust the
// goroutine stack. Objects are returned in the order they were sealed.
func (c *canvas) scanPath(start Point) []*object {
	var (
		objs  []*object
		stack []*traceFrame
	)

	// enter handles a freshly extended path: it either seals it or pushes a frame to explore it.
	enter := func(points []Point) {
		for {
			cur := points[len(points)-1]
			next := c.next(cur)

			// If there are no points that can progress traversal of the path, finalize the one
			// we're working on. This is the terminal condition in the passive flow.
			if len(next) == 0 {
				if len(points) == 1 {
					// Discard 'path' of 1 point. Do not mark point as visited.
					c.unvisit(cur)
					return
				}
				o := &object{points: points}
				o.seal(c)
				objs = append(objs, o)
				return
			}

			// If we have looped back to the cell below the start, create an object and close
			// the path. Then continue from this point alone, in case e.g. an open path spawns
			// from it. Paths are always closed vertically. A two point path is just a vertical
			// run leaving its start.
			if len(points) > 2 && cur.X == points[0].X && cur.Y == points[0].Y+1 {
				o := &object{points: points}
				o.seal(c)
				objs = append(objs, o)
				points = []Point{cur}
				continue
			}

			// A single way forward extends the path in place.
			if len(next) == 1 {
				c.visit(next[0])
				points = append(points, next[0])
				continue
			}

			stack = append(stack, &traceFrame{points: points, next: next})
			return
		}
	}

	enter([]Point{start})
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if len(f.next) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		n := f.next[0]
		f.next = f.next[1:]
		// Branches explored earlier may have claimed this neighbour already.
		if c.isVisited(n) {
			continue
		}
		c.visit(n)
		p2 := make([]Point, len(f.points)+1)
		copy(p2, f.points)
		p2[len(p2)-1] = n
		enter(p2)
	}
	return objs
}

// next returns the points that can be used to make progress from pos, skipping visited ones. It
// looks left, right, up and down, then at the four diagonals.
func (c *canvas) next(pos Point) []Point {
	if !c.isVisited(pos) {
		panic(fmt.Errorf("internal error; revisiting %s", pos))
	}

	var out []Point

	ch := c.at(pos)
	try := func(n Point, ok func(char) bool) {
		if !c.isVisited(n) && ok(c.at(n)) {
			out = append(out, Point{X: n.X, Y: n.Y})
		}
	}

	if ch.canHorizontal() {
		if c.canLeft(pos) {
			try(Point{X: pos.X - 1, Y: pos.Y}, char.canHorizontal)
		}
		if c.canRight(pos) {
			try(Point{X: pos.X + 1, Y: pos.Y}, char.canHorizontal)
		}
	}
	if ch.canVertical() {
		if c.canUp(pos) {
			try(Point{X: pos.X, Y: pos.Y - 1}, char.canVertical)
		}
		if c.canDown(pos) {
			try(Point{X: pos.X, Y: pos.Y + 1}, char.canVertical)
		}
	}
	if c.canDiagonal(pos) {
		fromDiagonal := func(n char) bool { return n.canDiagonalFrom(ch) }
		if c.canUp(pos) {
			if c.canLeft(pos) {
				try(Point{X: pos.X - 1, Y: pos.Y - 1}, fromDiagonal)
			}
			if c.canRight(pos) {
				try(Point{X: pos.X + 1, Y: pos.Y - 1}, fromDiagonal)
			}
		}
		if c.canDown(pos) {
			if c.canLeft(pos) {
				try(Point{X: pos.X - 1, Y: pos.Y + 1}, fromDiagonal)
			}
			if c.canRight(pos) {
				try(Point{X: pos.X + 1, Y: pos.Y + 1}, fromDiagonal)
			}
		}
	}
	return out
}
