// Copyright 2012 - 2018 The ASCIIToSVG Contributors
// All rights reserved.

package asciitosvg

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/maruel/ut"
)

func TestNewCanvas(t *testing.T) {
	t.Parallel()
	data := []struct {
		input   []string
		strings []string
		texts   []string
		corners [][]Point
	}{
		// 0 Small box
		{
			[]string{
				"+-+",
				"| |",
				"+-+",
			},
			[]string{"Path{(0,0)}"},
			[]string{""},
			[][]Point{{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}},
		},

		// 1 Tight box
		{
			[]string{
				"++",
				"++",
			},
			[]string{"Path{(0,0)}"},
			[]string{""},
			[][]Point{
				{
					{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
				},
			},
		},

		// 2 Indented box
		{
			[]string{
				"",
				" +-+",
				" | |",
				" +-+",
			},
			[]string{"Path{(1,1)}"},
			[]string{""},
			[][]Point{{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 3}, {X: 1, Y: 3}}},
		},

		// 3 Free flow text
		{
			[]string{
				"",
				" foo bar ",
				"b  baz   bee",
			},
			[]string{"Text{(1,1) \"foo bar\"}", "Text{(0,2) \"b  baz\"}", "Text{(9,2) \"bee\"}"},
			[]string{"foo bar", "b  baz", "bee"},
			[][]Point{
				{{X: 1, Y: 1}, {X: 7, Y: 1}},
				{{X: 0, Y: 2}, {X: 5, Y: 2}},
				{{X: 9, Y: 2}, {X: 11, Y: 2}},
			},
		},

		// 4 Text in a box
		{
			[]string{
				"+--+",
				"|Hi|",
				"+--+",
			},
			[]string{"Path{(0,0)}", "Text{(1,1) \"Hi\"}"},
			[]string{"", "Hi"},
			[][]Point{
				{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 2}, {X: 0, Y: 2}},
				{{X: 1, Y: 1}, {X: 2, Y: 1}},
			},
		},

		// 5 Concave pieces
		{
			[]string{
				"    +----+",
				"    |    |",
				"+---+    +----+",
				"|             |",
				"+-------------+",
				"", // 5
				"+----+",
				"|    |",
				"|    +---+",
				"|        |",
				"|    +---+", // 10
				"|    |",
				"+----+",
				"",
				"    +----+",
				"    |    |", // 15
				"+---+    |",
				"|        |",
				"+---+    |",
				"    |    |",
				"    +----+", // 20
			},
			[]string{"Path{(4,0)}", "Path{(0,6)}", "Path{(4,14)}"},
			[]string{"", "", ""},
			[][]Point{
				{
					{X: 4, Y: 0}, {X: 9, Y: 0}, {X: 9, Y: 2}, {X: 14, Y: 2},
					{X: 14, Y: 4}, {X: 0, Y: 4}, {X: 0, Y: 2}, {X: 4, Y: 2},
				},
				{
					{X: 0, Y: 6}, {X: 5, Y: 6}, {X: 5, Y: 8}, {X: 9, Y: 8},
					{X: 9, Y: 10}, {X: 5, Y: 10}, {X: 5, Y: 12}, {X: 0, Y: 12},
				},
				{
					{X: 4, Y: 14}, {X: 9, Y: 14}, {X: 9, Y: 20}, {X: 4, Y: 20},
					{X: 4, Y: 18}, {X: 0, Y: 18}, {X: 0, Y: 16}, {X: 4, Y: 16},
				},
			},
		},

		// 6 Inner boxes
		{
			[]string{
				"+-----+",
				"|     |",
				"| +-+ |",
				"| | | |",
				"| +-+ |",
				"|     |",
				"+-----+",
			},
			[]string{"Path{(0,0)}", "Path{(2,2)}"},
			[]string{"", ""},
			[][]Point{
				{{X: 0, Y: 0}, {X: 6, Y: 0}, {X: 6, Y: 6}, {X: 0, Y: 6}},
				{{X: 2, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 4}, {X: 2, Y: 4}},
			},
		},

		// 7 Arrow between two labels
		{
			[]string{
				"A-->B",
			},
			[]string{"Path{(1,0)}", "Text{(0,0) \"A\"}", "Text{(4,0) \"B\"}"},
			[]string{"", "A", "B"},
			[][]Point{
				{{X: 1, Y: 0}, {X: 3, Y: 0, Hint: EndMarker}},
				{{X: 0, Y: 0}},
				{{X: 4, Y: 0}},
			},
		},

		// 8 Arrows on both ends of a vertical line
		{
			[]string{
				"^",
				"|",
				"v",
			},
			[]string{"Path{(0,0)}"},
			[]string{""},
			[][]Point{{{X: 0, Y: 0, Hint: StartMarker}, {X: 0, Y: 2, Hint: EndMarker}}},
		},

		// 9 Rounded box
		{
			[]string{
				".-.",
				"| |",
				"'-'",
			},
			[]string{"Path{(0,0)}"},
			[]string{""},
			[][]Point{
				{
					{X: 0, Y: 0, Hint: RoundedCorner}, {X: 2, Y: 0, Hint: RoundedCorner},
					{X: 2, Y: 2, Hint: RoundedCorner}, {X: 0, Y: 2, Hint: RoundedCorner},
				},
			},
		},

		// 10 URL
		{
			[]string{
				"github.com/foo/bar",
			},
			[]string{"Text{(0,0) \"github.com/foo/bar\"}"},
			[]string{"github.com/foo/bar"},
			[][]Point{{{X: 0, Y: 0}, {X: 17, Y: 0}}},
		},
	}
	for i, line := range data {
		c, err := NewCanvas([]byte(strings.Join(line.input, "\n")), 9, false)
		ut.AssertEqualIndex(t, i, nil, err)
		objs := c.Objects()
		if line.strings != nil {
			ut.AssertEqualIndex(t, i, line.strings, getStrings(objs))
		}
		if line.texts != nil {
			ut.AssertEqualIndex(t, i, line.texts, getTexts(objs))
		}
		if line.corners != nil {
			ut.AssertEqualIndex(t, i, line.corners, getCorners(objs))
		}
	}
}

func TestNewCanvasClosed(t *testing.T) {
	t.Parallel()
	data := []struct {
		input  []string
		closed []bool
	}{
		{[]string{"+-+", "| |", "+-+"}, []bool{true}},
		// A tight box cannot be told apart from a path that turns three times.
		{[]string{"++", "++"}, []bool{false}},
		{[]string{"+--", "|", "+--"}, []bool{false, false}},
		{[]string{"---"}, []bool{false}},
		{[]string{"+==+", ":  :", "+==+"}, []bool{true}},
		// A line leaving the cell below the top-left corner is split from its box.
		{[]string{" +--+", "-+  |", " +--+"}, []bool{true, false}},
		{[]string{"|", "|", "|"}, []bool{false}},
	}
	for i, line := range data {
		c, err := NewCanvas([]byte(strings.Join(line.input, "\n")), 9, false)
		ut.AssertEqualIndex(t, i, nil, err)
		var closed []bool
		for _, o := range c.Objects() {
			closed = append(closed, o.IsClosed())
		}
		ut.AssertEqualIndex(t, i, line.closed, closed)
	}
}

func TestNewCanvasSpurBelowCorner(t *testing.T) {
	t.Parallel()
	c, err := NewCanvas([]byte(" +--+\n-+  |\n +--+\n"), 9, false)
	ut.AssertEqual(t, nil, err)
	objs := c.Objects()
	ut.AssertEqual(t, []string{"Path{(1,0)}", "Path{(1,1)}"}, getStrings(objs))
	ut.AssertEqual(t, [][]Point{
		{{X: 1, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 1, Y: 2}},
		{{X: 1, Y: 1}, {X: 0, Y: 1}},
	}, getCorners(objs))
	ut.AssertEqual(t, true, objs[0].IsClosed())
	ut.AssertEqual(t, false, objs[1].IsClosed())
}

func TestNewCanvasVerticalRun(t *testing.T) {
	t.Parallel()
	c, err := NewCanvas([]byte("^\n|\n|\nv\n"), 9, false)
	ut.AssertEqual(t, nil, err)
	objs := c.Objects()
	ut.AssertEqual(t, 1, len(objs))
	ut.AssertEqual(t, []Point{{X: 0, Y: 0, Hint: StartMarker}, {X: 0, Y: 3, Hint: EndMarker}}, objs[0].Corners())
}

func TestNewCanvasDashed(t *testing.T) {
	t.Parallel()
	c, err := NewCanvas([]byte("+==+\n:  :\n+==+\n\n----"), 9, false)
	ut.AssertEqual(t, nil, err)
	objs := c.Objects()
	ut.AssertEqual(t, 2, len(objs))
	ut.AssertEqual(t, true, objs[0].IsDashed())
	ut.AssertEqual(t, false, objs[1].IsDashed())
}

func TestNewCanvasTicksAndDots(t *testing.T) {
	t.Parallel()
	c, err := NewCanvas([]byte("--x--o--"), 9, false)
	ut.AssertEqual(t, nil, err)
	objs := c.Objects()
	ut.AssertEqual(t, 1, len(objs))
	var hints []RenderHint
	for _, p := range objs[0].Points() {
		hints = append(hints, p.Hint)
	}
	ut.AssertEqual(t, []RenderHint{None, None, Tick, None, None, Dot, None, None}, hints)
	ut.AssertEqual(t, "--x--o--", string(objs[0].Text()))
}

func TestNewCanvasSize(t *testing.T) {
	t.Parallel()
	data := []struct {
		input    string
		tabWidth int
		size     image.Point
	}{
		{"", 8, image.Point{X: 0, Y: 1}},
		{"abc\nd", 8, image.Point{X: 3, Y: 2}},
		{"\tx", 4, image.Point{X: 5, Y: 1}},
		{"\t\tx", 2, image.Point{X: 5, Y: 1}},
		{"\tx", 0, image.Point{X: 2, Y: 1}},
		{"\u00e9+", 8, image.Point{X: 2, Y: 1}},
	}
	for i, line := range data {
		c, err := NewCanvas([]byte(line.input), line.tabWidth, false)
		ut.AssertEqualIndex(t, i, nil, err)
		ut.AssertEqualIndex(t, i, line.size, c.Size())
	}
}

func TestNewCanvasTabs(t *testing.T) {
	t.Parallel()
	c, err := NewCanvas([]byte("\n\t+-+\n\t| |\n\t+-+"), 1, false)
	ut.AssertEqual(t, nil, err)
	ut.AssertEqual(t, []string{"Path{(1,1)}"}, getStrings(c.Objects()))
	ut.AssertEqual(t, " +-+\n | |\n +-+\n", strings.SplitN(c.String(), "\n", 2)[1])
}

func TestNewCanvasNormalization(t *testing.T) {
	t.Parallel()
	// "e" followed by a combining acute accent.
	input := []byte("e\u0301+")
	c, err := NewCanvas(input, 8, false)
	ut.AssertEqual(t, nil, err)
	ut.AssertEqual(t, 3, c.Size().X)
	c, err = NewCanvas(input, 8, false, WithNormalization())
	ut.AssertEqual(t, nil, err)
	ut.AssertEqual(t, 2, c.Size().X)
}

func TestNewCanvasInvalidUTF8(t *testing.T) {
	t.Parallel()
	_, err := NewCanvas([]byte("+-+\n\xff\n"), 8, false)
	ut.AssertEqual(t, true, errors.Is(err, ErrInvalidUTF8))
	ut.AssertEqual(t, "invalid UTF-8 encoding on line 2", err.Error())
}

func TestNewCanvasTags(t *testing.T) {
	t.Parallel()
	input := []string{
		"+-----+",
		"|[a]  |",
		"+-----+",
		"",
		"[a]: {\"fill\":\"#000\"}",
	}
	c, err := NewCanvas([]byte(strings.Join(input, "\n")), 8, false)
	ut.AssertEqual(t, nil, err)
	objs := c.Objects()
	ut.AssertEqual(t, []string{"Path{(0,0)}", "Text{(1,1) \"[a]\"}", "Text{(0,4) \"[a]: {\\\"fill\\\":\\\"#000\\\"}\"}"}, getStrings(objs))
	ut.AssertEqual(t, "a", objs[0].Tag())
	ut.AssertEqual(t, "a", objs[1].Tag())
	ut.AssertEqual(t, false, objs[1].IsTagDefinition())
	ut.AssertEqual(t, true, objs[2].IsTagDefinition())
	ut.AssertEqual(t, map[string]interface{}{"fill": "#000"}, c.Options()["a"])
}

func TestNewCanvasStackedTagDefinitions(t *testing.T) {
	t.Parallel()
	// The ':' of definitions on consecutive lines line up and are traced as dashed lines.
	stacked := "[a]: {\"fill\":\"#f00\"}\n[b]: {\"fill\":\"#0f0\"}"
	c, err := NewCanvas([]byte(stacked), 8, false)
	ut.AssertEqual(t, nil, err)
	objs := c.Objects()
	ut.AssertEqual(t, true, len(objs) > 3)
	ut.AssertEqual(t, []string{"Path{(3,0)}", "Path{(12,0)}", "Text{(0,0) \"[a]\"}"}, getStrings(objs[:3]))
	ut.AssertEqual(t, true, objs[0].IsDashed())
	ut.AssertEqual(t, true, objs[1].IsDashed())
	for i, o := range objs {
		ut.AssertEqualIndex(t, i, false, o.IsTagDefinition())
	}
	_, ok := c.Options()["a"]
	ut.AssertEqual(t, false, ok)
	_, ok = c.Options()["b"]
	ut.AssertEqual(t, false, ok)

	// A blank line between them keeps both definitions.
	c, err = NewCanvas([]byte(strings.Replace(stacked, "\n", "\n\n", 1)), 8, false)
	ut.AssertEqual(t, nil, err)
	ut.AssertEqual(t, []string{"Text{(0,0) \"[a]: {\\\"fill\\\":\\\"#f00\\\"}\"}", "Text{(0,2) \"[b]: {\\\"fill\\\":\\\"#0f0\\\"}\"}"}, getStrings(c.Objects()))
	ut.AssertEqual(t, map[string]interface{}{"fill": "#f00"}, c.Options()["a"])
	ut.AssertEqual(t, map[string]interface{}{"fill": "#0f0"}, c.Options()["b"])
}

func TestNewCanvasTagReferenceFollowedByText(t *testing.T) {
	t.Parallel()
	c, err := NewCanvas([]byte("[a]: not options"), 8, false)
	ut.AssertEqual(t, nil, err)
	objs := c.Objects()
	ut.AssertEqual(t, []string{"Text{(0,0) \"[a]: not options\"}"}, getStrings(objs))
	ut.AssertEqual(t, false, objs[0].IsTagDefinition())
	_, ok := c.Options()["a"]
	ut.AssertEqual(t, false, ok)
}

func TestNewCanvasUnmatchedBracket(t *testing.T) {
	t.Parallel()
	c, err := NewCanvas([]byte("[abc"), 8, false)
	ut.AssertEqual(t, nil, err)
	objs := c.Objects()
	ut.AssertEqual(t, []string{"[abc"}, getTexts(objs))
	ut.AssertEqual(t, "", objs[0].Tag())
}

func TestNewCanvasCoordinateBinding(t *testing.T) {
	t.Parallel()
	input := []string{
		"",
		"  +--+",
		"  |  |",
		"  +--+",
		"",
		"[2,1:{\"fill\":\"#f00\"}]",
	}
	c, err := NewCanvas([]byte(strings.Join(input, "\n")), 8, false)
	ut.AssertEqual(t, nil, err)
	objs := c.Objects()
	ut.AssertEqual(t, 2, len(objs))
	ut.AssertEqual(t, "2,1", objs[0].Tag())
	ut.AssertEqual(t, true, objs[1].IsTagDefinition())
	ut.AssertEqual(t, "[2,1:{\"fill\":\"#f00\"}]", string(objs[1].Text()))
	fill, ok := c.Options().lookup("2,1", "fill")
	ut.AssertEqual(t, true, ok)
	ut.AssertEqual(t, "#f00", fill)
}

func TestNewCanvasBadTag(t *testing.T) {
	t.Parallel()
	_, err := NewCanvas([]byte("[x:{bad json}]"), 8, false)
	var tagErr *TagError
	ut.AssertEqual(t, true, errors.As(err, &tagErr))
	ut.AssertEqual(t, "x", tagErr.Tag)
	ut.AssertEqual(t, "{bad json}", tagErr.Definition)
	ut.AssertEqual(t, Point{X: 0, Y: 0}, tagErr.Pos)
}

func TestEnclosingObjects(t *testing.T) {
	t.Parallel()
	input := []string{
		"+-----+",
		"|     |",
		"| +-+ |",
		"| | | |",
		"| +-+ |",
		"|     |",
		"+-----+",
	}
	c, err := NewCanvas([]byte(strings.Join(input, "\n")), 8, false)
	ut.AssertEqual(t, nil, err)
	ut.AssertEqual(t, []string{"Path{(2,2)}", "Path{(0,0)}"}, getStrings(c.EnclosingObjects(Point{X: 3, Y: 3})))
	ut.AssertEqual(t, []string{"Path{(0,0)}"}, getStrings(c.EnclosingObjects(Point{X: 1, Y: 1})))
	ut.AssertEqual(t, []string{}, getStrings(c.EnclosingObjects(Point{X: 10, Y: 10})))
}

func TestHasPoint(t *testing.T) {
	t.Parallel()
	c, err := NewCanvas([]byte("+-+\n| |\n+-+"), 8, false)
	ut.AssertEqual(t, nil, err)
	o := c.Objects()[0]
	ut.AssertEqual(t, true, o.HasPoint(Point{X: 1, Y: 1}))
	ut.AssertEqual(t, false, o.HasPoint(Point{X: 5, Y: 1}))
	ut.AssertEqual(t, false, o.HasPoint(Point{X: 1, Y: 5}))
}

func TestNewCanvasLongLine(t *testing.T) {
	t.Parallel()
	line := strings.Repeat("-", 100000)
	c, err := NewCanvas([]byte(line), 8, false)
	ut.AssertEqual(t, nil, err)
	objs := c.Objects()
	ut.AssertEqual(t, 1, len(objs))
	ut.AssertEqual(t, []Point{{X: 0, Y: 0}, {X: 99999, Y: 0}}, objs[0].Corners())
}

func TestPointsToCorners(t *testing.T) {
	t.Parallel()
	data := []struct {
		in       []Point
		expected []Point
		closed   bool
	}{
		{
			[]Point{{X: 0, Y: 0}, {X: 1, Y: 0}},
			[]Point{{X: 0, Y: 0}, {X: 1, Y: 0}},
			false,
		},
		{
			[]Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
			[]Point{{X: 0, Y: 0}, {X: 2, Y: 0}},
			false,
		},
		{
			[]Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
			[]Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
			false,
		},
		{
			[]Point{
				{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2},
				{X: 1, Y: 2}, {X: 0, Y: 2}, {X: 0, Y: 1},
			},
			[]Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}},
			true,
		},
		{
			[]Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
			[]Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
			false,
		},
	}
	for i, line := range data {
		p, c := pointsToCorners(line.in)
		ut.AssertEqualIndex(t, i, line.expected, p)
		ut.AssertEqualIndex(t, i, line.closed, c)
	}
}

func TestPointsToCornersDiscontiguous(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	pointsToCorners([]Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 5, Y: 5}})
}

func BenchmarkT(b *testing.B) {
	data := []string{
		"             +-----+-------+",
		"             |     |       |",
		"             |     |       |",
		"        +----+-----+----   |",
		"--------+----+-----+-------+---+",
		"        |    |     |       |   |",
		"        |    |     |       |   |     |   |",
		"        |    |     |       |   |     |   |",
		"        |    |     |       |   |     |   |",
		"--------+----+-----+-------+---+-----+---+--+",
		"        |    |     |       |   |     |   |  |",
		"        |    |     |       |   |     |   |  |",
		"        |   -+-----+-------+---+-----+   |  |",
		"        |    |     |       |   |     |   |  |",
		"        |    |     |       |   +-----+---+--+",
		"             |     |       |         |   |",
		"             |     |       |         |   |",
		"     --------+-----+-------+---------+---+-----",
		"             |     |       |         |   |",
		"             +-----+-------+---------+---+",
		"",
		"",
	}
	chunk := []byte(strings.Join(data, "\n"))
	input := make([]byte, 0, len(chunk)*b.N)
	for i := 0; i < b.N; i++ {
		input = append(input, chunk...)
	}
	b.ResetTimer()
	if _, err := NewCanvas(input, 8, false); err != nil {
		b.Fatal(err)
	}
}

// Private details.

func getTexts(objs []Object) []string {
	out := []string{}
	for _, obj := range objs {
		t := obj.Text()
		if !obj.IsText() {
			out = append(out, "")
		} else if len(t) > 0 {
			out = append(out, string(t))
		} else {
			panic("failed")
		}
	}
	return out
}

func getStrings(objs []Object) []string {
	out := []string{}
	for _, obj := range objs {
		out = append(out, obj.String())
	}
	return out
}

func getCorners(objs []Object) [][]Point {
	out := make([][]Point, len(objs))
	for i, obj := range objs {
		out[i] = obj.Corners()
	}
	return out
}
