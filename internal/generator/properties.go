package generator

import (
	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/buildgen/internal/config"
	"github.com/cmmoran/buildgen/internal/diag"
	"github.com/cmmoran/buildgen/internal/entity"
	"github.com/cmmoran/buildgen/internal/model"
	"github.com/cmmoran/buildgen/internal/naming"
)

// StateName names the generated struct holding the builder's fields.
func StateName(builder string) string {
	return naming.LowerCamel(builder) + "Fields"
}

// typeParams are the builder's own parameters, or the target's when the
// builder struct is generated.
func typeParams(p config.BuilderProperties, e *entity.Entity) []model.TypeParam {
	if p.Builder.Declared {
		return p.Builder.TypeParams
	}
	return e.TypeParams
}

func builderType(p config.BuilderProperties, e *entity.Entity) *jen.Statement {
	return entity.Instantiate(jen.Id(p.Name()), typeParams(p, e))
}

func builderPtr(p config.BuilderProperties, e *entity.Entity) *jen.Statement {
	return jen.Op("*").Add(builderType(p, e))
}

// members are the symbols that get builder state and setters. Unreachable
// members join when injection is on or when there is nothing to build.
func members(p config.BuilderProperties, e *entity.Entity) []entity.Symbol {
	all := e.AllUniqueSettablePropertiesAndParameters()
	if p.ShouldGenerateMethodsForUnreachableProperties || e.ConstructorToBuild == nil {
		all = append(all[:len(all):len(all)], e.AllUniqueReadOnlyPropertiesWithoutConstructorsParametersMatch()...)
	}
	seen := make(map[string]bool, len(all))
	out := make([]entity.Symbol, 0, len(all))
	for _, s := range all {
		if seen[s.FieldName] {
			continue
		}
		seen[s.FieldName] = true
		out = append(out, s)
	}
	return out
}

// GeneratePropertiesCode emits the state struct and one fluent setter per
// member. Fields the user already declared on the builder are not repeated,
// and a hand-written method of the setter's name replaces the setter; when its
// signature differs from the generated one a BuildingMethodConflict is reported.
func GeneratePropertiesCode(p config.BuilderProperties, e *entity.Entity, fixture *config.FixtureProperties) (jen.Code, []diag.Diagnostic) {
	var diags []diag.Diagnostic
	syms := members(p, e)
	params := typeParams(p, e)

	fields := make([]jen.Code, 0, len(syms)+1)
	for _, s := range syms {
		if _, ok := p.Fields[s.FieldName]; ok {
			continue
		}
		fields = append(fields, jen.Id(s.FieldName).Add(s.LazyFieldType()))
	}
	if _, ok := p.Fields[entity.FixtureField]; fixture != nil && !ok {
		fields = append(fields, jen.Id(entity.FixtureField).Id(fixture.TypeName()))
	}

	code := jen.Commentf("%s holds the state of %s.", StateName(p.Name()), p.Name()).Line().
		Add(entity.Generic(jen.Type().Id(StateName(p.Name())), params)).Struct(fields...).Line()

	for _, s := range syms {
		name := p.BuildingMethodsPrefix + s.PascalName
		if m, ok := p.BuildingMethods[name]; ok {
			if m.ParametersLength != 1 || m.FirstParameterTypeName != s.ParameterTypeName() {
				diags = append(diags, diag.New(diag.BuildingMethodConflict, p.Builder.Position, p.Name(), name, s.ParameterTypeName()))
			}
			continue
		}
		if p.HasMethod(name) {
			continue
		}
		code.Line().Func().Params(jen.Id(entity.Receiver).Add(builderPtr(p, e))).Id(name).
			Params(s.MethodParameterDefinition()).
			Add(builderPtr(p, e)).
			Block(
				s.ValueAssignment(entity.Receiver),
				jen.Return(jen.Id(entity.Receiver)),
			).Line()
	}
	return code, diags
}

// GenerateFixtureAccessor emits the method creating the builder's fixture on
// first use. It returns nil when no fixture is configured.
func GenerateFixtureAccessor(p config.BuilderProperties, e *entity.Entity, fixture *config.FixtureProperties) jen.Code {
	if fixture == nil || p.HasMethod(entity.FixtureAccessor) {
		return nil
	}
	field := jen.Id(entity.Receiver).Dot(entity.FixtureField)
	return jen.Func().Params(jen.Id(entity.Receiver).Add(builderPtr(p, e))).Id(entity.FixtureAccessor).Params().
		Id(fixture.TypeName()).
		Block(
			jen.If(field.Clone().Op("==").Nil()).Block(
				field.Clone().Op("=").Id(fixture.GenerateNew()),
			),
			jen.Return(field.Clone()),
		)
}
