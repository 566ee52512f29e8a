// Copyright 2012 - 2018 The ASCIIToSVG Contributors
// All rights reserved.

package asciitosvg

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// colorToRGB matches a color string and returns its RGB components. Only the #rgb and #rrggbb
// notations are understood.
func colorToRGB(c string) (r, g, b int, err error) {
	if !strings.HasPrefix(c, "#") || (len(c) != 4 && len(c) != 7) {
		return 0, 0, 0, fmt.Errorf("color '%s' can't be parsed", c)
	}
	if strings.Trim(c[1:], "0123456789abcdefABCDEF") != "" {
		return 0, 0, 0, fmt.Errorf("color '%s' not a valid hex color", c)
	}
	col, err := colorful.Hex(c)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("color '%s' can't be parsed: %w", c, err)
	}
	r8, g8, b8 := col.RGB255()
	return int(r8), int(g8), int(b8), nil
}

// textColor returns an accessible text color to use on top of a supplied background color. The
// formula used for calculating whether the contrast is accessible comes from a W3 working group
// paper on accessibility at http://www.w3.org/TR/AERT. The recommended contrast is a brightness
// difference of at least 125 and a color difference of at least 500. Folks can style their colors
// as they like, but our default text color is black, so the color difference for text is just the
// sum of the components.
func textColor(c string) (string, error) {
	r, g, b, err := colorToRGB(c)
	if err != nil {
		return "#000", err
	}

	brightness := (r*299 + g*587 + b*114) / 1000
	difference := r + g + b
	if brightness < 125 && difference < 500 {
		return "#fff", nil
	}

	return "#000", nil
}
