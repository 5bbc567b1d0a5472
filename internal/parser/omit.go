package parser

import (
	"reflect"
	"strings"

	options "github.com/cmmoran/buildgen/pkg/parser"
)

const omitTag = "buildgen"

// omitField reports whether a target field with the given raw struct tag is
// left out of builders. buildgen:"-" always omits.
func omitField(tag string, filters []options.TagFilter) bool {
	if tag == "" {
		return false
	}
	st := reflect.StructTag(tag)
	if containsTagPart(st.Get(omitTag), "-") {
		return true
	}
	for _, f := range filters {
		v, ok := st.Lookup(f.Key)
		if !ok {
			continue
		}
		if containsTagPart(v, f.Value) {
			return true
		}
	}
	return false
}

// containsTagPart splits a tag value on common delimiters and reports whether
// any fragment matches the expected value.
func containsTagPart(tagVal, expected string) bool {
	for _, part := range strings.FieldsFunc(tagVal, func(r rune) bool {
		return r == ';' || r == ','
	}) {
		if strings.TrimSpace(part) == expected {
			return true
		}
	}
	return false
}
