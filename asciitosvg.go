// Copyright 2012 - 2018 The ASCIIToSVG Contributors
// All rights reserved.

package asciitosvg

import (
	"github.com/rs/zerolog"
)

// Default rendering parameters.
const (
	DefaultTabWidth = 8
	DefaultScaleX   = 9
	DefaultScaleY   = 16
)

// Options controls Convert.
type Options struct {
	// TabWidth is the number of spaces replacing each tab. Zero selects DefaultTabWidth; a negative
	// value leaves tabs in place.
	TabWidth int
	// NoBlur disables the drop shadow on closed paths.
	NoBlur bool
	// Font is the font-family of the text layer. Empty selects a monospace stack.
	Font string
	// ScaleX and ScaleY are the size of a grid cell in pixels. Zero selects the defaults.
	ScaleX int
	ScaleY int
	// Normalize composes the input to Unicode NFC before parsing.
	Normalize bool
	// Logger receives diagnostics. The zero value discards them.
	Logger *zerolog.Logger
}

func (o *Options) withDefaults() Options {
	out := *o
	if out.TabWidth == 0 {
		out.TabWidth = DefaultTabWidth
	}
	if out.ScaleX <= 0 {
		out.ScaleX = DefaultScaleX
	}
	if out.ScaleY <= 0 {
		out.ScaleY = DefaultScaleY
	}
	if len(out.Font) == 0 {
		out.Font = DefaultFont
	}
	return out
}

// Convert parses an ASCII diagram and returns its SVG rendering.
func Convert(data []byte, opts Options) (string, error) {
	o := opts.withDefaults()
	var copts []CanvasOption
	if o.Logger != nil {
		copts = append(copts, WithLogger(*o.Logger))
	}
	if o.Normalize {
		copts = append(copts, WithNormalization())
	}
	c, err := NewCanvas(data, o.TabWidth, o.NoBlur, copts...)
	if err != nil {
		return "", err
	}
	return string(CanvasToSVG(c, o.NoBlur, o.Font, o.ScaleX, o.ScaleY)), nil
}
