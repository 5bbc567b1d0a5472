// Package directive parses //buildgen: comment directives.
package directive

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/gorilla/schema"

	"github.com/cmmoran/buildgen/internal/config"
)

const (
	Tool   = "buildgen"
	Prefix = "//" + Tool + ":"
)

// Kind names what a directive configures.
type Kind string

const (
	KindBuilder  Kind = "builder"
	KindDefaults Kind = "defaults"
	KindMocking  Kind = "mocking"
	KindFixture  Kind = "fixture"
)

var (
	ErrUnknownKind = errors.New("unknown directive kind")
	ErrWrongKind   = errors.New("directive kind does not carry these options")
)

// Directive is one parsed comment line, e.g.
//
//	//buildgen:builder target=example.com/app/models.Entity prefix=With
type Directive struct {
	Tool    string    `parser:"'//' @Word ':'"`
	Kind    Kind      `parser:"@Word"`
	Options []*Option `parser:"@@*"`
}

// Option is key=value, key="quoted value" or a bare key meaning true.
type Option struct {
	Key   string `parser:"@Word"`
	Value *Value `parser:"( '=' @@ )?"`
}

type Value struct {
	String *string `parser:"  @String"`
	Word   *string `parser:"| @Word"`
}

func (v *Value) text() string {
	switch {
	case v == nil:
		return "true"
	case v.String != nil:
		return *v.String
	case v.Word != nil:
		return *v.Word
	}
	return ""
}

var (
	grammar = participle.MustBuild[Directive](
		participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
			{Name: "Comment", Pattern: `//`},
			{Name: "String", Pattern: `"(\\"|[^"])*"`},
			{Name: "Word", Pattern: `[^\s"=:]+`},
			{Name: "Punct", Pattern: `[:=]`},
			{Name: "Whitespace", Pattern: `\s+`},
		})),
		participle.Unquote("String"),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)

	decoder = schema.NewDecoder()
)

// Is reports whether a comment line is a buildgen directive.
func Is(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), Prefix)
}

// Parse parses a single comment line.
func Parse(line string) (*Directive, error) {
	d, err := grammar.ParseString("", strings.TrimSpace(line))
	if err != nil {
		return nil, fmt.Errorf("parse directive %q: %w", line, err)
	}
	if d.Tool != Tool {
		return nil, fmt.Errorf("parse directive %q: not a %s directive", line, Tool)
	}
	switch d.Kind {
	case KindBuilder, KindDefaults, KindMocking, KindFixture:
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, d.Kind)
	}
	return d, nil
}

// Values groups option values by key in declaration order.
func (d *Directive) Values() map[string][]string {
	out := make(map[string][]string, len(d.Options))
	for _, o := range d.Options {
		out[o.Key] = append(out[o.Key], o.Value.text())
	}
	return out
}

// Builder decodes a builder or defaults directive. An explicitly empty prefix
// is kept so resolution can reject it.
func (d *Directive) Builder() (config.BuilderOptions, error) {
	var o config.BuilderOptions
	if d.Kind != KindBuilder && d.Kind != KindDefaults {
		return o, fmt.Errorf("%w: %s", ErrWrongKind, d.Kind)
	}
	values := d.Values()
	if err := decoder.Decode(&o, values); err != nil {
		return o, fmt.Errorf("%s directive: %w", d.Kind, err)
	}
	if vs, ok := values["prefix"]; ok {
		o.Prefix = &vs[len(vs)-1]
	}
	if d.Kind == KindDefaults {
		for _, key := range []string{"target", "name", "factory"} {
			if _, ok := values[key]; ok {
				return o, fmt.Errorf("defaults directive: %q applies to a single builder", key)
			}
		}
	}
	return o, nil
}

func (d *Directive) Mocking() (config.MockingOptions, error) {
	var o config.MockingOptions
	if d.Kind != KindMocking {
		return o, fmt.Errorf("%w: %s", ErrWrongKind, d.Kind)
	}
	if err := decoder.Decode(&o, d.Values()); err != nil {
		return o, fmt.Errorf("mocking directive: %w", err)
	}
	return o, nil
}

func (d *Directive) Fixture() (config.FixtureOptions, error) {
	var o config.FixtureOptions
	if d.Kind != KindFixture {
		return o, fmt.Errorf("%w: %s", ErrWrongKind, d.Kind)
	}
	if err := decoder.Decode(&o, d.Values()); err != nil {
		return o, fmt.Errorf("fixture directive: %w", err)
	}
	return o, nil
}
