// Copyright 2012 - 2018 The ASCIIToSVG Contributors
// All rights reserved.

package asciitosvg

import "unicode"

// char is a single cell of the grid.
type char rune

// glyphClass is a set of structural roles a glyph may play in a diagram.
type glyphClass uint16

const (
	classCorner glyphClass = 1 << iota
	classRounded
	classHorizontal
	classVertical
	classDashed
	classArrowLeft
	classArrowRight
	classArrowUp
	classArrowDown
	classDiagonalNE
	classDiagonalSE
	classTick
	classDot
)

// glyphClasses maps every structural glyph to its roles. Anything not listed is
// either text or whitespace.
var glyphClasses = map[char]glyphClass{
	'+':  classCorner,
	'.':  classCorner | classRounded,
	'\'': classCorner | classRounded,
	'-':  classHorizontal,
	'=':  classHorizontal | classDashed,
	'|':  classVertical,
	':':  classVertical | classDashed,
	'x':  classHorizontal | classVertical | classTick,
	'o':  classHorizontal | classVertical | classDot,
	'<':  classArrowLeft,
	'>':  classArrowRight,
	'^':  classArrowUp,
	'v':  classArrowDown,
	'/':  classDiagonalNE,
	'\\': classDiagonalSE,
}

func (c char) class() glyphClass {
	return glyphClasses[c]
}

func (c char) is(g glyphClass) bool {
	return c.class()&g != 0
}

func (c char) isObjectStartTag() bool {
	return c == '['
}

func (c char) isObjectEndTag() bool {
	return c == ']'
}

func (c char) isTagDefinitionSeparator() bool {
	return c == ':'
}

func (c char) isTextStart() bool {
	r := rune(c)
	return c.isObjectStartTag() || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSymbol(r)
}

func (c char) isTextCont() bool {
	return unicode.IsPrint(rune(c))
}

func (c char) isSpace() bool {
	return unicode.IsSpace(rune(c))
}

// isPathStart returns true on any form of ascii art that can start a graph. Ticks and dots only
// ever continue a line.
func (c char) isPathStart() bool {
	return c.is(classCorner|classHorizontal|classVertical|classArrowLeft|classArrowUp|classDiagonalNE|classDiagonalSE) &&
		!c.isTick() && !c.isDot()
}

func (c char) isCorner() bool        { return c.is(classCorner) }
func (c char) isRoundedCorner() bool { return c.is(classRounded) }
func (c char) isHorizontal() bool    { return c.is(classHorizontal) }
func (c char) isVertical() bool      { return c.is(classVertical) }
func (c char) isTick() bool          { return c.is(classTick) }
func (c char) isDot() bool           { return c.is(classDot) }

func (c char) isDashedHorizontal() bool {
	return c.is(classHorizontal) && c.is(classDashed)
}

func (c char) isDashedVertical() bool {
	return c.is(classVertical) && c.is(classDashed)
}

func (c char) isDashed() bool {
	return c.isDashedHorizontal() || c.isDashedVertical()
}

func (c char) isArrowHorizontalLeft() bool {
	return c.is(classArrowLeft)
}

func (c char) isArrowHorizontal() bool {
	return c.is(classArrowLeft | classArrowRight)
}

func (c char) isArrowVerticalUp() bool {
	return c.is(classArrowUp)
}

func (c char) isArrowVertical() bool {
	return c.is(classArrowUp | classArrowDown)
}

func (c char) isArrow() bool {
	return c.isArrowHorizontal() || c.isArrowVertical()
}

func (c char) isDiagonalNorthEast() bool {
	return c.is(classDiagonalNE)
}

func (c char) isDiagonalSouthEast() bool {
	return c.is(classDiagonalSE)
}

func (c char) isDiagonal() bool {
	return c.is(classDiagonalNE | classDiagonalSE)
}

// canDiagonalFrom reports whether a diagonal step may arrive at c coming from the glyph from.
// Lines can move diagonally, and corners or edges can turn into diagonals, but two corners are
// never joined diagonally.
func (c char) canDiagonalFrom(from char) bool {
	switch {
	case from.isArrowVertical() || from.isCorner():
		return c.isDiagonal()
	case from.isDiagonal():
		return c.isDiagonal() || c.isCorner() || c.isArrowVertical() || c.isHorizontal() || c.isVertical()
	case from.isHorizontal() || from.isVertical():
		return c.isDiagonal()
	}
	return false
}

func (c char) canHorizontal() bool {
	return c.isHorizontal() || c.isCorner() || c.isArrowHorizontal()
}

func (c char) canVertical() bool {
	return c.isVertical() || c.isCorner() || c.isArrowVertical()
}
