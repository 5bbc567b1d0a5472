package entity

import (
	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/buildgen/internal/config"
	"github.com/cmmoran/buildgen/internal/model"
	"github.com/cmmoran/buildgen/internal/naming"
)

const (
	setupParam = "setup"
	valueParam = "value"
)

// Symbol is a classified member: a property or a constructor parameter.
type Symbol struct {
	// FieldName is the builder state field holding the member.
	FieldName string
	// PascalName names the setter and the BuildDefault parameter.
	PascalName string
	// Name is the member as declared.
	Name string

	Type         *model.TypeRef
	TypeFullName string
	TypeName     string

	IsMockable bool
	IsFakeable bool

	mocking  *config.MockingProperties
	fixture  *config.FixtureProperties
	nullable config.NullableStrategy
}

// Classify decides once whether member is mockable and fakeable. local is the
// package the generated code lives in; its types are spelled unqualified.
func Classify(member model.SymbolData, mocking *config.MockingProperties, fixture *config.FixtureProperties, nullable config.NullableStrategy, local string) Symbol {
	s := Symbol{
		FieldName:    naming.LowerCamel(member.Name),
		PascalName:   naming.Pascal(member.Name),
		Name:         member.Name,
		Type:         member.Type,
		TypeFullName: member.Type.Qualified(local),
		TypeName:     member.Type.Short(),
		mocking:      mocking,
		fixture:      fixture,
		nullable:     nullable,
	}
	isInterface := member.Type.Kind == model.KindNamed && member.Type.Interface
	notIterable := !member.Type.Iterable

	if mocking != nil {
		switch mocking.Strategy {
		case config.MockingAll:
			s.IsMockable = isInterface
		case config.MockingWithoutGenericCollection:
			s.IsMockable = isInterface && notIterable
		}
	}

	if fixture != nil {
		s.IsFakeable = true
		switch {
		case fixture.Strategy == config.FixtureNone && isInterface:
			s.IsFakeable = false
		case fixture.Strategy == config.FixtureOnlyGenericCollections && isInterface && notIterable:
			s.IsFakeable = false
		}
	}
	return s
}

func (s Symbol) NeedsFieldInit() bool { return s.IsMockable }

func (s Symbol) mockType() string {
	return s.mocking.FieldType(s.TypeFullName, s.TypeName)
}

// FieldType is the member's type as a BuildDefault parameter.
func (s Symbol) FieldType() *jen.Statement {
	if s.IsMockable {
		return jen.Id(s.mockType())
	}
	return TypeCode(s.Type)
}

// LazyFieldType is the member's type as builder state.
func (s Symbol) LazyFieldType() *jen.Statement {
	if s.IsMockable {
		return jen.Id(s.mockType())
	}
	return jen.Op("*").Add(buildkit("NullBox")).Types(TypeCode(s.Type))
}

// DefaultMock is the configured default mock construction, or nil when unmocked.
func (s Symbol) DefaultMock() *jen.Statement {
	if s.mocking == nil {
		return nil
	}
	return jen.Id(s.mocking.DefaultValue(s.TypeFullName, s.TypeName))
}

// FieldInitialization assigns the default mock to owner's state field.
func (s Symbol) FieldInitialization(owner string) jen.Code {
	init := s.DefaultMock()
	if init == nil {
		return jen.Null()
	}
	return jen.Id(owner).Dot(s.FieldName).Op("=").Add(init)
}

// MethodParameterDefinition is the single parameter of the fluent setter.
func (s Symbol) MethodParameterDefinition() *jen.Statement {
	if s.IsMockable {
		return jen.Id(setupParam).Func().Params(jen.Id(s.mockType()))
	}
	return jen.Id(valueParam).Add(TypeCode(s.Type))
}

// ParameterTypeName spells the setter parameter type the way a hand-written
// method declared in the builder package would.
func (s Symbol) ParameterTypeName() string {
	if s.IsMockable {
		return "func(" + s.mockType() + ")"
	}
	return s.TypeFullName
}

// ValueAssignment is the body statement of the fluent setter.
func (s Symbol) ValueAssignment(owner string) jen.Code {
	if s.IsMockable {
		return jen.Id(setupParam).Call(jen.Id(owner).Dot(s.FieldName))
	}
	return jen.Id(owner).Dot(s.FieldName).Op("=").Add(buildkit("NewNullBox")).Call(jen.Id(valueParam))
}

// LazyValue reads the member from owner's state: the mock's object, the boxed
// value if one was set, else a fixture value, else the zero value.
func (s Symbol) LazyValue(owner, fixtureExpr string) *jen.Statement {
	field := jen.Id(owner).Dot(s.FieldName)
	switch {
	case s.IsMockable:
		return jen.Id(s.mocking.ReturnObject(owner + "." + s.FieldName))
	case s.IsFakeable:
		create := s.fixture.CreateSingle(s.TypeFullName, s.Name, fixtureExpr)
		return buildkit("ValueOr").Call(
			field,
			jen.Func().Params().Add(TypeCode(s.Type)).Block(jen.Return(jen.Id(create))),
		)
	default:
		return buildkit("ValueOrZero").Call(field)
	}
}

// ExplicitValue reads the member from a BuildDefault parameter struct.
func (s Symbol) ExplicitValue(params string) *jen.Statement {
	if s.IsMockable {
		return jen.Id(s.mocking.ReturnObject(params + "." + s.PascalName))
	}
	return jen.Id(params).Dot(s.PascalName)
}

func (s Symbol) Equal(o Symbol) bool {
	return s.FieldName == o.FieldName && s.PascalName == o.PascalName && s.Name == o.Name &&
		s.Type.Equal(o.Type) && s.TypeFullName == o.TypeFullName && s.TypeName == o.TypeName &&
		s.IsMockable == o.IsMockable && s.IsFakeable == o.IsFakeable &&
		s.mocking.Equal(o.mocking) && s.fixture.Equal(o.fixture) && s.nullable == o.nullable
}
