// Copyright 2012 - 2018 The ASCIIToSVG Contributors
// All rights reserved.

// Package asciitosvg provides functionality for parsing ASCII diagrams. It supports diagrams
// containing UTF-8 content, custom styling of polygons, line segments, and text.
//
// The simplest entry point is Convert, which returns the SVG rendering of a diagram:
//
//	svg, err := asciitosvg.Convert(diagram, asciitosvg.Options{})
//
// The lower level interface is the Canvas. A Canvas is parsed from a byte slice representing the
// diagram. The byte slice is interpreted as a newline-delimited file, each line representing a row
// of the diagram. Tabs within the diagram are expanded to spaces based on a specified tab width.
//
//	c, err := asciitosvg.NewCanvas(diagram, 8, false)
//	if err != nil {
//		return err
//	}
//	svg := asciitosvg.CanvasToSVG(c, false, "", 9, 16)
//
// Shapes are styled with tags. A reference such as [box] inside a closed path binds the tag to
// that path; a definition such as [box]: {"fill":"#88d"} or [box:{"fill":"#88d"}] gives the tag
// its SVG attributes. A tag named after the coordinates of a path's top-left corner, as in
// [4,2]: {...}, binds to that path directly. The a2s:label, a2s:delref and a2s:link options
// replace, remove or link the text of a reference.
//
// Lines are traced before text is read, so the ':' of definitions written on consecutive lines,
// one under the other, are drawn as a dashed line and the definitions are lost. Separate stacked
// definitions with a blank line or indent them differently.
package asciitosvg
