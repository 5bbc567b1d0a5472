package config

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"github.com/cmmoran/buildgen/internal/diag"
	"github.com/cmmoran/buildgen/internal/model"
)

const (
	DefaultBuildingMethodsPrefix = "With"
	BuildMethodName              = "Build"
	PostBuildMethodName          = "PostBuild"
)

var ErrEmptyPrefix = errors.New("building method prefix must not be empty")

// ConfigurationError aborts generation of a single builder.
type ConfigurationError struct {
	Builder string
	Pos     token.Position
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: builder %s: %v", e.Pos, e.Builder, e.Err)
	}
	return fmt.Sprintf("builder %s: %v", e.Builder, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// BuilderOverrides holds the optional settings of one configuration tier.
// A nil pointer means "not specified at this tier".
type BuilderOverrides struct {
	BuildingMethodsPrefix                    *string
	GenerateDefaultBuildMethod               *bool
	NullableStrategy                         *NullableStrategy
	GenerateMethodsForUnreachableProperties  *bool
	ImplicitCast                             *bool
	StaticFactoryMethodName                  string
	GenerateStaticPropertyForBuilderCreation *bool
}

// Over layers o on top of base; every value o specifies wins.
func (o BuilderOverrides) Over(base BuilderOverrides) BuilderOverrides {
	out := base
	if o.BuildingMethodsPrefix != nil {
		out.BuildingMethodsPrefix = o.BuildingMethodsPrefix
	}
	if o.GenerateDefaultBuildMethod != nil {
		out.GenerateDefaultBuildMethod = o.GenerateDefaultBuildMethod
	}
	if o.NullableStrategy != nil {
		out.NullableStrategy = o.NullableStrategy
	}
	if o.GenerateMethodsForUnreachableProperties != nil {
		out.GenerateMethodsForUnreachableProperties = o.GenerateMethodsForUnreachableProperties
	}
	if o.ImplicitCast != nil {
		out.ImplicitCast = o.ImplicitCast
	}
	if o.StaticFactoryMethodName != "" {
		out.StaticFactoryMethodName = o.StaticFactoryMethodName
	}
	if o.GenerateStaticPropertyForBuilderCreation != nil {
		out.GenerateStaticPropertyForBuilderCreation = o.GenerateStaticPropertyForBuilderCreation
	}
	return out
}

// BuilderProperties is the effective configuration of one builder.
type BuilderProperties struct {
	Builder model.BuilderDescriptor

	BuildingMethodsPrefix                         string
	NullableStrategy                              NullableStrategy
	GenerateDefaultBuildMethod                    bool
	ImplicitCast                                  bool
	ShouldGenerateMethodsForUnreachableProperties bool
	StaticFactoryMethodName                       string
	GenerateStaticPropertyForBuilderCreation      bool

	IsPostBuildMethodOverridden    bool
	IsBuildMethodOverridden        bool
	IsDefaultConstructorOverridden bool

	// BuildingMethods are hand-written methods starting with the prefix, by name.
	BuildingMethods map[string]model.MethodData
	// Fields are hand-declared builder fields, by name.
	Fields map[string]model.FieldData

	Diagnostics []diag.Diagnostic
}

func (p BuilderProperties) Name() string     { return p.Builder.Name }
func (p BuilderProperties) FullName() string { return p.Builder.FullName() }

// ConstructorName is the name of the builder's constructor function.
func (p BuilderProperties) ConstructorName() string { return "New" + p.Builder.Name }

// HasMethod reports whether any hand-written method is called name.
func (p BuilderProperties) HasMethod(name string) bool {
	_, ok := p.Builder.Method(name)
	return ok
}

// Resolve merges the per-type overrides over the compile-unit defaults over the
// library defaults, then scans the hand-written builder for overridden hooks.
func Resolve(builder model.BuilderDescriptor, perType BuilderOverrides, unit *BuilderOverrides, nullableCheckingActive bool) (BuilderProperties, error) {
	merged := perType
	if unit != nil {
		merged = perType.Over(*unit)
	}

	nullable := NullableDefault
	if merged.NullableStrategy != nil {
		nullable = *merged.NullableStrategy
	}
	if nullable == NullableDefault && nullableCheckingActive {
		nullable = NullableEnabled
	}

	p := BuilderProperties{
		Builder:                    builder,
		BuildingMethodsPrefix:      DefaultBuildingMethodsPrefix,
		NullableStrategy:           nullable,
		GenerateDefaultBuildMethod: boolOr(merged.GenerateDefaultBuildMethod, true),
		ImplicitCast:               boolOr(merged.ImplicitCast, false),
		ShouldGenerateMethodsForUnreachableProperties: boolOr(merged.GenerateMethodsForUnreachableProperties, false),
		StaticFactoryMethodName:                       perType.StaticFactoryMethodName,
		GenerateStaticPropertyForBuilderCreation:      boolOr(merged.GenerateStaticPropertyForBuilderCreation, false),
		BuildingMethods:                               make(map[string]model.MethodData),
		Fields:                                        make(map[string]model.FieldData, len(builder.Fields)),
	}
	if merged.BuildingMethodsPrefix != nil {
		p.BuildingMethodsPrefix = *merged.BuildingMethodsPrefix
	}
	if strings.TrimSpace(p.BuildingMethodsPrefix) == "" {
		return BuilderProperties{}, &ConfigurationError{Builder: builder.Name, Pos: builder.Position, Err: ErrEmptyPrefix}
	}

	for _, m := range builder.Methods {
		switch {
		case m.Kind == model.MethodOrdinary && m.Name != BuildMethodName && strings.HasPrefix(m.Name, p.BuildingMethodsPrefix):
			p.BuildingMethods[m.Name] = m
		case m.Kind == model.MethodOrdinary && m.Name == PostBuildMethodName:
			p.IsPostBuildMethodOverridden = true
		case m.Kind == model.MethodOrdinary && m.Name == BuildMethodName:
			// any Build collides with the generated one
			p.IsBuildMethodOverridden = true
			p.Diagnostics = append(p.Diagnostics, diag.New(diag.BuildMethodOverridden, builder.Position, builder.Name))
		case m.Kind == model.MethodConstructor && m.ParametersLength == 0:
			p.IsDefaultConstructorOverridden = true
			p.Diagnostics = append(p.Diagnostics, diag.New(diag.DefaultConstructorOverridden, builder.Position, builder.Name, m.Name))
		case m.Kind == model.MethodConstructor && m.Name == p.ConstructorName():
			p.Diagnostics = append(p.Diagnostics, diag.New(diag.ConstructorTakesParameters, builder.Position, builder.Name, m.Name, m.ParametersLength))
		}
	}
	for _, f := range builder.Fields {
		p.Fields[f.Name] = f
	}
	return p, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
