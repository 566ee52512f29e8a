// Copyright 2012 - 2018 The ASCIIToSVG Contributors
// All rights reserved.

// Package tagjson decodes the small JSON payloads attached to diagram tags.
//
// Values decode to map[string]interface{}, []interface{}, string, Number, bool and nil. Numbers
// keep their literal text so no precision is lost. Errors report the offending character along
// with its line, column and byte offset in the payload.
package tagjson

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Number is a JSON number literal, kept verbatim.
type Number string

// String returns the literal text of the number.
func (n Number) String() string { return string(n) }

// Float64 returns the number as a float64.
func (n Number) Float64() (float64, error) { return strconv.ParseFloat(string(n), 64) }

// Int64 returns the number as an int64.
func (n Number) Int64() (int64, error) { return strconv.ParseInt(string(n), 10, 64) }

// Position locates a character in the decoded payload. Line and Column start at 1.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d (offset %d)", p.Line, p.Column, p.Offset)
}

// SyntaxError describes malformed input.
type SyntaxError struct {
	Msg  string
	Char rune // offending character, or -1 at end of input
	Pos  Position
}

func (e *SyntaxError) Error() string {
	if e.Char < 0 {
		return fmt.Sprintf("%s at end of input, %s", e.Msg, e.Pos)
	}
	return fmt.Sprintf("%s: unexpected %q at %s", e.Msg, e.Char, e.Pos)
}

// Decode parses exactly one JSON value from data. Leading and trailing whitespace is allowed;
// anything else after the value is an error.
func Decode(data []byte) (interface{}, error) {
	d := &decoder{data: data, line: 1, col: 1}
	d.skipSpace()
	v, err := d.value()
	if err != nil {
		return nil, err
	}
	d.skipSpace()
	if d.pos < len(d.data) {
		return nil, d.errorf("trailing data after value")
	}
	return v, nil
}

// decoder walks the input one character at a time, tracking its position.
type decoder struct {
	data []byte
	pos  int
	line int
	col  int
}

const eof = -1

func (d *decoder) peek() rune {
	if d.pos >= len(d.data) {
		return eof
	}
	r, _ := utf8.DecodeRune(d.data[d.pos:])
	return r
}

// badEncoding reports whether the next byte does not start a valid UTF-8 sequence. A literal
// U+FFFD decodes to the same rune but is three bytes wide.
func (d *decoder) badEncoding() bool {
	r, n := utf8.DecodeRune(d.data[d.pos:])
	return r == utf8.RuneError && n == 1
}

func (d *decoder) advance() rune {
	if d.pos >= len(d.data) {
		return eof
	}
	r, n := utf8.DecodeRune(d.data[d.pos:])
	d.pos += n
	if r == '\n' {
		d.line++
		d.col = 1
	} else {
		d.col++
	}
	return r
}

func (d *decoder) position() Position {
	return Position{Line: d.line, Column: d.col, Offset: d.pos}
}

// errorf reports an error at the current character.
func (d *decoder) errorf(format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Char: d.peek(), Pos: d.position()}
}

func (d *decoder) skipSpace() {
	for {
		switch d.peek() {
		case ' ', '\t', '\n', '\r':
			d.advance()
		default:
			return
		}
	}
}

func (d *decoder) value() (interface{}, error) {
	switch r := d.peek(); {
	case r == '{':
		return d.object()
	case r == '[':
		return d.array()
	case r == '"':
		return d.str()
	case r == '-' || (r >= '0' && r <= '9'):
		return d.number()
	case r == 't':
		return true, d.literal("true")
	case r == 'f':
		return false, d.literal("false")
	case r == 'n':
		return nil, d.literal("null")
	default:
		return nil, d.errorf("invalid character looking for beginning of value")
	}
}

func (d *decoder) literal(word string) error {
	for _, want := range word {
		if d.peek() != want {
			return d.errorf("invalid literal, expected %q", word)
		}
		d.advance()
	}
	return nil
}

func (d *decoder) object() (map[string]interface{}, error) {
	d.advance() // {
	out := map[string]interface{}{}
	d.skipSpace()
	if d.peek() == '}' {
		d.advance()
		return out, nil
	}
	for {
		d.skipSpace()
		if d.peek() != '"' {
			return nil, d.errorf("expected string key in object")
		}
		key, err := d.str()
		if err != nil {
			return nil, err
		}
		d.skipSpace()
		if d.peek() != ':' {
			return nil, d.errorf("expected ':' after object key")
		}
		d.advance()
		d.skipSpace()
		v, err := d.value()
		if err != nil {
			return nil, err
		}
		out[key] = v
		d.skipSpace()
		switch d.peek() {
		case ',':
			d.advance()
		case '}':
			d.advance()
			return out, nil
		default:
			return nil, d.errorf("expected ',' or '}' in object")
		}
	}
}

func (d *decoder) array() ([]interface{}, error) {
	d.advance() // [
	out := []interface{}{}
	d.skipSpace()
	if d.peek() == ']' {
		d.advance()
		return out, nil
	}
	for {
		d.skipSpace()
		v, err := d.value()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		d.skipSpace()
		switch d.peek() {
		case ',':
			d.advance()
		case ']':
			d.advance()
			return out, nil
		default:
			return nil, d.errorf("expected ',' or ']' in array")
		}
	}
}

func (d *decoder) str() (string, error) {
	d.advance() // "
	var b strings.Builder
	for {
		r := d.peek()
		switch {
		case r == eof:
			return "", d.errorf("unterminated string")
		case r == '"':
			d.advance()
			return b.String(), nil
		case r < 0x20:
			return "", d.errorf("invalid control character in string")
		case r == utf8.RuneError && d.badEncoding():
			return "", d.errorf("invalid UTF-8 in string")
		case r == '\\':
			d.advance()
			if err := d.escape(&b); err != nil {
				return "", err
			}
		default:
			b.WriteRune(d.advance())
		}
	}
}

func (d *decoder) escape(b *strings.Builder) error {
	switch r := d.peek(); r {
	case '"', '\\', '/':
		b.WriteRune(d.advance())
	case 'b':
		d.advance()
		b.WriteByte('\b')
	case 'f':
		d.advance()
		b.WriteByte('\f')
	case 'n':
		d.advance()
		b.WriteByte('\n')
	case 'r':
		d.advance()
		b.WriteByte('\r')
	case 't':
		d.advance()
		b.WriteByte('\t')
	case 'u':
		d.advance()
		r1, err := d.hex4()
		if err != nil {
			return err
		}
		if utf16.IsSurrogate(r1) && d.peek() == '\\' && d.pos+1 < len(d.data) && d.data[d.pos+1] == 'u' {
			d.advance()
			d.advance()
			r2, err := d.hex4()
			if err != nil {
				return err
			}
			if dec := utf16.DecodeRune(r1, r2); dec != utf8.RuneError {
				b.WriteRune(dec)
				return nil
			}
			b.WriteRune(utf8.RuneError)
			r1 = r2
		}
		if utf16.IsSurrogate(r1) {
			r1 = utf8.RuneError
		}
		b.WriteRune(r1)
	default:
		return d.errorf("invalid escape sequence")
	}
	return nil
}

func (d *decoder) hex4() (rune, error) {
	var r rune
	for i := 0; i < 4; i++ {
		c := d.peek()
		var v rune
		switch {
		case c >= '0' && c <= '9':
			v = c - '0'
		case c >= 'a' && c <= 'f':
			v = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			v = c - 'A' + 10
		default:
			return 0, d.errorf("invalid hex digit in \\u escape")
		}
		d.advance()
		r = r<<4 | v
	}
	return r, nil
}

func (d *decoder) number() (Number, error) {
	start := d.pos
	if d.peek() == '-' {
		d.advance()
	}
	switch r := d.peek(); {
	case r == '0':
		d.advance()
		if n := d.peek(); n >= '0' && n <= '9' {
			return "", d.errorf("leading zero in number")
		}
	case r >= '1' && r <= '9':
		d.digits()
	default:
		return "", d.errorf("expected digit in number")
	}
	if d.peek() == '.' {
		d.advance()
		if !isDigit(d.peek()) {
			return "", d.errorf("expected digit after decimal point")
		}
		d.digits()
	}
	if r := d.peek(); r == 'e' || r == 'E' {
		d.advance()
		if r := d.peek(); r == '+' || r == '-' {
			d.advance()
		}
		if !isDigit(d.peek()) {
			return "", d.errorf("expected digit in exponent")
		}
		d.digits()
	}
	return Number(d.data[start:d.pos]), nil
}

func (d *decoder) digits() {
	for isDigit(d.peek()) {
		d.advance()
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
