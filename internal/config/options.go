package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// BuilderOptions is the raw key/value form of a builder or defaults directive,
// shared by comment directives (schema tags) and the config file (mapstructure tags).
type BuilderOptions struct {
	Target         string  `schema:"target" mapstructure:"-" yaml:"-"`
	Name           string  `schema:"name" mapstructure:"-" yaml:"-" validate:"omitempty,excludes=."`
	Prefix         *string `schema:"prefix" mapstructure:"prefix" yaml:"prefix,omitempty"`
	DefaultBuild   *bool   `schema:"default-build" mapstructure:"default-build" yaml:"default-build,omitempty"`
	Nullable       string  `schema:"nullable" mapstructure:"nullable" yaml:"nullable,omitempty" validate:"omitempty,oneof=default disabled enabled"`
	Unreachable    *bool   `schema:"unreachable" mapstructure:"unreachable" yaml:"unreachable,omitempty"`
	ImplicitCast   *bool   `schema:"implicit-cast" mapstructure:"implicit-cast" yaml:"implicit-cast,omitempty"`
	Factory        string  `schema:"factory" mapstructure:"-" yaml:"-"`
	StaticProperty *bool   `schema:"static-property" mapstructure:"static-property" yaml:"static-property,omitempty"`
}

// Overrides validates o and converts it to its typed form.
func (o BuilderOptions) Overrides() (BuilderOverrides, error) {
	if err := validate.Struct(o); err != nil {
		return BuilderOverrides{}, fmt.Errorf("builder options: %w", err)
	}
	out := BuilderOverrides{
		BuildingMethodsPrefix:                    o.Prefix,
		GenerateDefaultBuildMethod:               o.DefaultBuild,
		GenerateMethodsForUnreachableProperties:  o.Unreachable,
		ImplicitCast:                             o.ImplicitCast,
		StaticFactoryMethodName:                  strings.TrimSpace(o.Factory),
		GenerateStaticPropertyForBuilderCreation: o.StaticProperty,
	}
	if o.Nullable != "" {
		s, err := ParseNullableStrategy(o.Nullable)
		if err != nil {
			return BuilderOverrides{}, err
		}
		out.NullableStrategy = &s
	}
	return out, nil
}

// MockingOptions is the raw form of a mocking directive or config section.
type MockingOptions struct {
	Strategy string   `schema:"strategy" mapstructure:"strategy" yaml:"strategy" validate:"required,oneof=none all without-generic-collection"`
	Type     string   `schema:"type" mapstructure:"type" yaml:"type" validate:"required"`
	Init     string   `schema:"init" mapstructure:"init" yaml:"init" validate:"required"`
	Object   string   `schema:"object" mapstructure:"object" yaml:"object" validate:"required"`
	Imports  []string `schema:"imports" mapstructure:"imports" yaml:"imports,omitempty"`
}

// IsZero reports whether nothing was configured.
func (o MockingOptions) IsZero() bool {
	return o.Strategy == "" && o.Type == "" && o.Init == "" && o.Object == "" && len(o.Imports) == 0
}

func (o MockingOptions) Properties() (*MockingProperties, error) {
	if o.IsZero() {
		return nil, nil
	}
	if err := validate.Struct(o); err != nil {
		return nil, fmt.Errorf("mocking options: %w", err)
	}
	s, err := ParseMockingStrategy(o.Strategy)
	if err != nil {
		return nil, err
	}
	return &MockingProperties{
		Strategy:                          s,
		TypeDeclarationFormat:             o.Type,
		FieldDefaultValueAssignmentFormat: o.Init,
		ReturnObjectFormat:                o.Object,
		AdditionalNamespaces:              splitList(o.Imports),
	}, nil
}

// FixtureOptions is the raw form of a fixture directive or config section.
type FixtureOptions struct {
	Name      string   `schema:"name" mapstructure:"name" yaml:"name" validate:"required"`
	Create    string   `schema:"create" mapstructure:"create" yaml:"create" validate:"required"`
	Args      string   `schema:"args" mapstructure:"args" yaml:"args,omitempty"`
	Configure string   `schema:"configure" mapstructure:"configure" yaml:"configure,omitempty"`
	Strategy  string   `schema:"strategy" mapstructure:"strategy" yaml:"strategy,omitempty" validate:"omitempty,oneof=none only-generic-collections all"`
	Imports   []string `schema:"imports" mapstructure:"imports" yaml:"imports,omitempty"`
}

func (o FixtureOptions) IsZero() bool {
	return o.Name == "" && o.Create == "" && o.Args == "" && o.Configure == "" && o.Strategy == "" && len(o.Imports) == 0
}

func (o FixtureOptions) Properties() (*FixtureProperties, error) {
	if o.IsZero() {
		return nil, nil
	}
	if err := validate.Struct(o); err != nil {
		return nil, fmt.Errorf("fixture options: %w", err)
	}
	s, err := ParseFixtureStrategy(o.Strategy)
	if err != nil {
		return nil, err
	}
	return &FixtureProperties{
		Name:                    o.Name,
		CreateSingleFormat:      o.Create,
		ConstructorParameters:   o.Args,
		AdditionalConfiguration: o.Configure,
		Strategy:                s,
		AdditionalNamespaces:    splitList(o.Imports),
	}, nil
}

// ValidationMessages flattens validator errors into "field: tag" strings.
func ValidationMessages(err error) []string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(ve))
	for _, fe := range ve {
		out = append(out, fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return out
}

func splitList(in []string) []string {
	var out []string
	for _, v := range in {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
