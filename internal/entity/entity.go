package entity

import (
	"slices"
	"strconv"

	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/buildgen/internal/config"
	"github.com/cmmoran/buildgen/internal/model"
	"github.com/cmmoran/buildgen/internal/naming"
)

const (
	// Receiver is the name of the builder receiver in generated methods.
	Receiver = "b"
	// DefaultsParam is the name of the BuildDefault parameter.
	DefaultsParam = "d"
	// FixtureField holds the lazily created fixture in the builder state.
	FixtureField = "buildgenFixture"
	// FixtureAccessor returns the builder's fixture, creating it on first use.
	FixtureAccessor = "fixtureInstance"

	resultVar = "result"
	nolint    = "//nolint:nilaway"
)

// Constructor is the selected construction path of an Entity.
type Constructor struct {
	model.ConstructorData
	// Parameters keep declaration order; names are unique by PascalName.
	Parameters []Symbol
}

// ContainsParameter reports whether a parameter maps to the member called pascalName.
func (c *Constructor) ContainsParameter(pascalName string) bool {
	return slices.ContainsFunc(c.Parameters, func(s Symbol) bool { return s.PascalName == pascalName })
}

func (c *Constructor) Equal(o *Constructor) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.Kind == o.Kind && c.Name == o.Name && slices.EqualFunc(c.Parameters, o.Parameters, Symbol.Equal)
}

func newConstructor(d model.TypeDescriptor, mocking *config.MockingProperties, fixture *config.FixtureProperties,
	nullable config.NullableStrategy, staticFactoryMethodName, local string) *Constructor {
	var candidates []model.ConstructorData
	if staticFactoryMethodName == "" {
		candidates = d.Constructors
	} else {
		for _, m := range d.StaticMethods {
			if m.Name == staticFactoryMethodName {
				m.Kind = model.ConstructorStatic
				candidates = append(candidates, m)
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	// greatest arity wins; ties go to the first declared
	selected := candidates[0]
	for _, c := range candidates[1:] {
		if len(c.Params) > len(selected.Params) {
			selected = c
		}
	}

	ctor := &Constructor{ConstructorData: selected}
	for i, p := range selected.Params {
		if p.Name == "" || p.Name == "_" {
			p.Name = "arg" + strconv.Itoa(i)
		}
		s := Classify(p, mocking, fixture, nullable, local)
		if ctor.ContainsParameter(s.PascalName) {
			continue
		}
		ctor.Parameters = append(ctor.Parameters, s)
	}
	return ctor
}

// Entity is the synthesis model of one target type.
type Entity struct {
	PkgPath                 string
	PkgName                 string
	Name                    string
	FullName                string
	FullNameWithConstraints string
	IsAbstract              bool
	TypeParams              []model.TypeParam
	AdditionalNamespaces    []string
	NullableStrategy        config.NullableStrategy
	ConstructorToBuild      *Constructor

	target *model.TypeRef
	// properties are settable members not covered by the constructor.
	properties []Symbol
	// uniqueSymbols are properties followed by constructor parameters.
	uniqueSymbols []Symbol
	// uniqueReadOnly are unsettable members not covered by the constructor.
	uniqueReadOnly []Symbol
}

// New builds the model. staticFactoryMethodName selects a factory instead of a
// constructor; local is the package the builder lives in.
func New(d model.TypeDescriptor, mocking *config.MockingProperties, fixture *config.FixtureProperties,
	nullable config.NullableStrategy, staticFactoryMethodName, local string) *Entity {
	e := &Entity{
		PkgPath:                 d.PkgPath,
		PkgName:                 d.PkgName,
		Name:                    d.Name,
		FullName:                d.FullName(),
		FullNameWithConstraints: d.FullNameWithConstraints(),
		IsAbstract:              d.IsAbstract,
		TypeParams:              d.TypeParams,
		AdditionalNamespaces:    d.AdditionalNamespaces,
		NullableStrategy:        nullable,
		target:                  d.Ref(),
	}
	if !d.IsAbstract {
		e.ConstructorToBuild = newConstructor(d, mocking, fixture, nullable, staticFactoryMethodName, local)
	}

	for _, p := range d.SettableProperties {
		e.properties = append(e.properties, Classify(p, mocking, fixture, nullable, local))
	}
	for _, p := range d.UnsettableProperties {
		e.uniqueReadOnly = append(e.uniqueReadOnly, Classify(p, mocking, fixture, nullable, local))
	}
	e.uniqueSymbols = e.properties
	if c := e.ConstructorToBuild; c != nil {
		notCovered := func(s Symbol) bool { return !c.ContainsParameter(s.PascalName) }
		e.properties = filter(e.properties, notCovered)
		e.uniqueSymbols = append(slices.Clone(e.properties), c.Parameters...)
		e.uniqueReadOnly = filter(e.uniqueReadOnly, notCovered)
	}
	return e
}

// AllUniqueSettablePropertiesAndParameters are the members a builder always exposes.
func (e *Entity) AllUniqueSettablePropertiesAndParameters() []Symbol { return e.uniqueSymbols }

// AllUniqueReadOnlyPropertiesWithoutConstructorsParametersMatch are the unreachable members.
func (e *Entity) AllUniqueReadOnlyPropertiesWithoutConstructorsParametersMatch() []Symbol {
	return e.uniqueReadOnly
}

// Properties are settable members assigned after construction.
func (e *Entity) Properties() []Symbol { return e.properties }

// Target is the target type expression, instantiated with its own type parameters.
func (e *Entity) Target() *model.TypeRef { return e.target }

// ResultType is what the construction path yields: T or *T.
func (e *Entity) ResultType() *jen.Statement {
	if e.ConstructorToBuild == nil || e.ConstructorToBuild.Pointer {
		return jen.Op("*").Add(TypeCode(e.target))
	}
	return TypeCode(e.target)
}

// FixtureExpr is the expression yielding the builder's fixture.
func FixtureExpr() string {
	return Receiver + "." + FixtureAccessor + "()"
}

// GenerateBuildsCode emits Build. builder is the receiver type; postBuild adds
// a call to the hand-written PostBuild hook. It returns nil when no
// construction path was resolved.
func (e *Entity) GenerateBuildsCode(builder jen.Code, postBuild, shouldGenerateMethodsForUnreachableProperties bool) jen.Code {
	c := e.ConstructorToBuild
	if c == nil {
		return nil
	}

	args := make([]jen.Code, 0, len(c.Parameters))
	for _, p := range c.Parameters {
		args = append(args, p.LazyValue(Receiver, FixtureExpr()))
	}
	body := []jen.Code{jen.Id(resultVar).Op(":=").Add(e.construct(args))}
	for _, p := range e.properties {
		body = append(body, jen.Id(resultVar).Dot(p.Name).Op("=").Add(p.LazyValue(Receiver, FixtureExpr())))
	}
	if shouldGenerateMethodsForUnreachableProperties {
		target := jen.Id(resultVar)
		if !c.Pointer {
			target = jen.Op("&").Id(resultVar)
		}
		for _, p := range e.uniqueReadOnly {
			body = append(body, buildkit("SetField").Call(target.Clone(), jen.Lit(p.Name), p.LazyValue(Receiver, FixtureExpr())))
		}
	}
	if postBuild {
		body = append(body, jen.Id(Receiver).Dot(config.PostBuildMethodName).Call(jen.Id(resultVar)))
	}
	body = append(body, jen.Return(jen.Id(resultVar)))

	s := jen.Null()
	if e.NullableStrategy == config.NullableEnabled {
		s = jen.Comment(nolint).Line()
	}
	return s.Func().Params(jen.Id(Receiver).Add(builder)).Id(config.BuildMethodName).Params().Add(e.ResultType()).Block(body...)
}

// DefaultsTypeName names the parameter struct of BuildDefault.
func (e *Entity) DefaultsTypeName() string { return e.Name + "Defaults" }

// DefaultBuildName names the explicit-default build function.
func (e *Entity) DefaultBuildName() string { return "BuildDefault" + e.Name }

// DefaultParameters are the constructor parameters followed by the settable properties.
func (e *Entity) DefaultParameters() []Symbol {
	if e.ConstructorToBuild == nil {
		return nil
	}
	return append(slices.Clone(e.ConstructorToBuild.Parameters), e.properties...)
}

// GenerateDefaultBuildsCode emits the <Target>Defaults struct and
// BuildDefault<Target>. The zero Defaults value leaves every member at its zero
// value except mockable ones, which receive their default mock. It returns nil
// when no construction path was resolved.
func (e *Entity) GenerateDefaultBuildsCode() jen.Code {
	c := e.ConstructorToBuild
	if c == nil {
		return nil
	}
	params := e.DefaultParameters()

	fields := make([]jen.Code, 0, len(params))
	for _, p := range params {
		fields = append(fields, jen.Id(p.PascalName).Add(p.FieldType()))
	}
	defaultsType := Instantiate(jen.Id(e.DefaultsTypeName()), e.TypeParams)

	var body []jen.Code
	for _, p := range params {
		if !p.IsMockable {
			continue
		}
		field := jen.Id(DefaultsParam).Dot(p.PascalName)
		body = append(body, jen.If(buildkit("IsZero").Call(field.Clone())).Block(
			field.Clone().Op("=").Add(p.DefaultMock()),
		))
	}
	args := make([]jen.Code, 0, len(c.Parameters))
	for _, p := range c.Parameters {
		args = append(args, p.ExplicitValue(DefaultsParam))
	}
	body = append(body, jen.Id(resultVar).Op(":=").Add(e.construct(args)))
	for _, p := range e.properties {
		body = append(body, jen.Id(resultVar).Dot(p.Name).Op("=").Add(p.ExplicitValue(DefaultsParam)))
	}
	body = append(body, jen.Return(jen.Id(resultVar)))

	code := Generic(jen.Type().Id(e.DefaultsTypeName()), e.TypeParams).Struct(fields...).Line().Line()
	if e.NullableStrategy == config.NullableEnabled {
		code = code.Comment(nolint).Line()
	}
	return code.Add(Generic(jen.Func().Id(e.DefaultBuildName()), e.TypeParams)).
		Params(jen.Id(DefaultsParam).Add(defaultsType)).
		Add(e.ResultType()).
		Block(body...)
}

// construct renders the call (or literal) producing the target from args.
func (e *Entity) construct(args []jen.Code) *jen.Statement {
	c := e.ConstructorToBuild
	if c.IsLiteral() {
		return jen.Op("&").Add(TypeCode(e.target)).Values()
	}
	fn := jen.Qual(e.PkgPath, c.Name)
	if c.Generic {
		fn = Instantiate(fn, e.TypeParams)
	}
	var call *jen.Statement
	if c.Variadic && len(args) > 0 {
		last := len(args) - 1
		call = fn.CallFunc(func(g *jen.Group) {
			for _, a := range args[:last] {
				g.Add(a)
			}
			g.Add(args[last]).Op("...")
		})
	} else {
		call = fn.Call(args...)
	}
	if c.ReturnsError {
		return buildkit("Must").Call(call)
	}
	return call
}

// Equal compares everything generation depends on.
func (e *Entity) Equal(o *Entity) bool {
	if e == nil || o == nil {
		return e == o
	}
	return e.FullNameWithConstraints == o.FullNameWithConstraints &&
		e.ConstructorToBuild.Equal(o.ConstructorToBuild) &&
		e.NullableStrategy == o.NullableStrategy &&
		slices.EqualFunc(e.properties, o.properties, Symbol.Equal) &&
		slices.Equal(e.AdditionalNamespaces, o.AdditionalNamespaces)
}

// PluralName is the name of the function building several targets at once.
func (e *Entity) PluralName() string {
	return naming.Plural(e.Name)
}

func filter(in []Symbol, keep func(Symbol) bool) []Symbol {
	var out []Symbol
	for _, s := range in {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
