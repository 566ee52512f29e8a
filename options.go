// Copyright 2012 - 2018 The ASCIIToSVG Contributors
// All rights reserved.

package asciitosvg

import (
	"fmt"
	"sort"
	"strings"

	"github.com/a2s-go/asciitosvg/internal/tagjson"
)

// Reserved option keys and tags.
const (
	// LinkOption wraps the tagged element in an anchor pointing at its value.
	LinkOption = "a2s:link"
	// LabelOption replaces the text of a reference with its value.
	LabelOption = "a2s:label"
	// DelRefOption removes the text of a reference from the output.
	DelRefOption = "a2s:delref"

	// defaultClosedTag holds the options applied to closed paths without a tag.
	defaultClosedTag = "__a2s__closed__options__"

	reservedPrefix = "a2s:"
)

// TagOptions maps tag names to the values decoded from their definitions. Most values are objects
// mapping SVG attribute names to values.
type TagOptions map[string]interface{}

func newTagOptions(noBlur bool) TagOptions {
	closed := map[string]interface{}{"fill": "#fff"}
	if !noBlur {
		closed["filter"] = "url(#dsFilter)"
	}
	return TagOptions{defaultClosedTag: closed}
}

// Attributes returns the object options registered for tag, if any.
func (o TagOptions) Attributes(tag string) (map[string]interface{}, bool) {
	if tag == "" {
		return nil, false
	}
	m, ok := o[tag].(map[string]interface{})
	return m, ok
}

// lookup returns the string form of one option of tag.
func (o TagOptions) lookup(tag, key string) (string, bool) {
	m, ok := o.Attributes(tag)
	if !ok {
		return "", false
	}
	v, ok := m[key]
	if !ok {
		return "", false
	}
	return optionString(v), true
}

// optionString formats a decoded option value for use as an attribute value.
func optionString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case tagjson.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// svgAttributes renders the non-reserved options in m as attributes in a stable order. Every
// attribute is followed by a single space.
func svgAttributes(m map[string]interface{}) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		if strings.HasPrefix(k, reservedPrefix) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=\"%s\" ", escape(k), escape(optionString(m[k])))
	}
	return b.String()
}
