package parser

import (
	"path/filepath"
	"strings"

	"github.com/cmmoran/buildgen/internal/config"
)

// TagFilter drops a target field from its builder when the field's struct tag
// under Key contains Value.
type TagFilter struct {
	Key   string `json:"key" yaml:"key" mapstructure:"key"`
	Value string `json:"value" yaml:"value" mapstructure:"value"`
}

// Options control discovery and generation.
//
// Dir         – directory patterns are resolved against
// Patterns    – go/packages patterns holding builder directives
// Defaults    – compile-unit builder defaults, below package //buildgen:defaults
// Mocking     – mocking configuration used when no directive sets one
// Fixture     – fixture configuration used when no directive sets one
// NilChecking – force nil-safety suppression on or off; unset detects nilaway in go.mod
// ExcludeByTags – target fields to leave out, besides those tagged buildgen:"-"
// Manifest    – fingerprint cache file; empty disables skipping
// Force       – regenerate even when fingerprints match
// DryRun      – render without writing files
type Options struct {
	Dir           string                `json:"dir,omitempty" yaml:"dir,omitempty" mapstructure:"dir,omitempty"`
	Patterns      []string              `json:"patterns,omitempty" yaml:"patterns,omitempty" mapstructure:"patterns,omitempty"`
	Defaults      config.BuilderOptions `json:"defaults,omitempty" yaml:"defaults,omitempty" mapstructure:"defaults,omitempty"`
	Mocking       config.MockingOptions `json:"mocking,omitempty" yaml:"mocking,omitempty" mapstructure:"mocking,omitempty"`
	Fixture       config.FixtureOptions `json:"fixture,omitempty" yaml:"fixture,omitempty" mapstructure:"fixture,omitempty"`
	NilChecking   *bool                 `json:"nil-checking,omitempty" yaml:"nil-checking,omitempty" mapstructure:"nil-checking,omitempty"`
	ExcludeByTags []TagFilter           `json:"exclude-by-tags,omitempty" yaml:"exclude-by-tags,omitempty" mapstructure:"exclude-by-tags,omitempty"`
	Manifest      string                `json:"manifest,omitempty" yaml:"manifest,omitempty" mapstructure:"manifest,omitempty"`
	Force         bool                  `json:"force,omitempty" yaml:"force,omitempty" mapstructure:"force,omitempty"`
	DryRun        bool                  `json:"-" yaml:"-" mapstructure:"-"`
}

func NewOptions() *Options {
	return &Options{
		Dir:      ".",
		Patterns: []string{"./..."},
		Manifest: ".buildgen.yaml",
	}
}

func (o *Options) Normalize() {
	if o.Dir == "" {
		o.Dir = "."
	}
	if abs, err := filepath.Abs(o.Dir); err == nil {
		o.Dir = abs
	}
	var patterns []string
	for _, p := range o.Patterns {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	o.Patterns = patterns
	if o.Manifest != "" && !filepath.IsAbs(o.Manifest) {
		o.Manifest = filepath.Join(o.Dir, o.Manifest)
	}
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithDir(d string) Option                     { return func(o *Options) { o.Dir = d } }
func WithPatterns(p ...string) Option             { return func(o *Options) { o.Patterns = p } }
func WithManifest(path string) Option             { return func(o *Options) { o.Manifest = path } }
func WithoutManifest() Option                     { return func(o *Options) { o.Manifest = "" } }
func WithForce() Option                           { return func(o *Options) { o.Force = true } }
func WithDryRun() Option                          { return func(o *Options) { o.DryRun = true } }
func WithNilChecking(on bool) Option              { return func(o *Options) { o.NilChecking = &on } }
func WithDefaults(d config.BuilderOptions) Option { return func(o *Options) { o.Defaults = d } }
func WithMocking(m config.MockingOptions) Option  { return func(o *Options) { o.Mocking = m } }
func WithFixture(f config.FixtureOptions) Option  { return func(o *Options) { o.Fixture = f } }
func WithExcludeByTags(f ...TagFilter) Option     { return func(o *Options) { o.ExcludeByTags = f } }
