package generator

import (
	"slices"

	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/buildgen/internal/config"
	"github.com/cmmoran/buildgen/internal/entity"
	"github.com/cmmoran/buildgen/internal/model"
)

// hasConstructorFunc reports whether New<Builder> is hand-written, whatever its parameters.
func hasConstructorFunc(p config.BuilderProperties) bool {
	return slices.ContainsFunc(p.Builder.Methods, func(m model.MethodData) bool {
		return m.Kind == model.MethodConstructor && m.Name == p.ConstructorName()
	})
}

// GenerateConstructor emits New<Builder>, which installs the default mocks and
// runs the fixture's additional configuration. It returns nil when there is
// nothing to initialize or when the function is hand-written.
func GenerateConstructor(p config.BuilderProperties, e *entity.Entity, fixture *config.FixtureProperties) jen.Code {
	if p.IsDefaultConstructorOverridden || hasConstructorFunc(p) {
		return nil
	}
	body := initBody(p, e, fixture)
	if body == nil {
		return nil
	}
	params := typeParams(p, e)
	return jen.Commentf("%s returns a %s with its default mocks installed.", p.ConstructorName(), p.Name()).Line().
		Add(entity.Generic(jen.Func().Id(p.ConstructorName()), params)).Params().
		Add(builderPtr(p, e)).
		Block(body...)
}

// initBody allocates a builder, installs its default mocks, runs the fixture's
// additional configuration and returns it. It is nil when there is nothing to
// initialize.
func initBody(p config.BuilderProperties, e *entity.Entity, fixture *config.FixtureProperties) []jen.Code {
	var inits []jen.Code
	for _, s := range members(p, e) {
		if s.NeedsFieldInit() {
			inits = append(inits, s.FieldInitialization(entity.Receiver))
		}
	}
	if fixture.NeedsAdditionalConfiguration() {
		inits = append(inits, jen.Id(fixture.GenerateAdditionalConfiguration(entity.FixtureExpr())))
	}
	if len(inits) == 0 {
		return nil
	}
	body := []jen.Code{jen.Id(entity.Receiver).Op(":=").Op("&").Add(builderType(p, e)).Values()}
	body = append(body, inits...)
	return append(body, jen.Return(jen.Id(entity.Receiver)))
}

// newBuilderBody is the body of a static creation func. A hand-written
// New<Builder> that takes parameters cannot be called, so the initialization
// is inlined instead.
func newBuilderBody(p config.BuilderProperties, e *entity.Entity, fixture *config.FixtureProperties, constructorEmitted bool) []jen.Code {
	if constructorEmitted || p.IsDefaultConstructorOverridden {
		return []jen.Code{jen.Return(entity.Instantiate(jen.Id(p.ConstructorName()), typeParams(p, e)).Call())}
	}
	if body := initBody(p, e, fixture); body != nil {
		return body
	}
	return []jen.Code{jen.Return(jen.Op("&").Add(builderType(p, e)).Values())}
}

// GenerateBuilderStruct emits the builder type embedding its state when the
// user did not declare one.
func GenerateBuilderStruct(p config.BuilderProperties, e *entity.Entity) jen.Code {
	if p.Builder.Declared {
		return nil
	}
	params := typeParams(p, e)
	return jen.Commentf("%s builds %s values.", p.Name(), e.FullName).Line().
		Add(entity.Generic(jen.Type().Id(p.Name()), params)).
		Struct(entity.Instantiate(jen.Id(StateName(p.Name())), params))
}

// GenerateStaticCode emits the package funcs <Target>() returning a fresh
// builder and <Targets>(count) building several targets. Both live next to the
// builder, so they are skipped when the builder shares the target's package.
func GenerateStaticCode(p config.BuilderProperties, e *entity.Entity, fixture *config.FixtureProperties, constructorEmitted, buildEmitted bool) jen.Code {
	if !p.GenerateStaticPropertyForBuilderCreation || p.Builder.PkgPath == e.PkgPath {
		return nil
	}
	params := typeParams(p, e)
	code := jen.Commentf("%s returns a new %s.", e.Name, p.Name()).Line().
		Add(entity.Generic(jen.Func().Id(e.Name), params)).Params().Add(builderPtr(p, e)).
		Block(newBuilderBody(p, e, fixture, constructorEmitted)...)

	plural := e.PluralName()
	if buildEmitted && plural != e.Name {
		code.Line().Line().Commentf("%s builds count %s values with a fresh builder.", plural, e.FullName).Line().
			Add(entity.Generic(jen.Func().Id(plural), params)).Params(jen.Id("count").Int()).
			Index().Add(e.ResultType()).
			Block(jen.Return(entity.Instantiate(jen.Id(e.Name), params).Call().Dot(buildManyName).Call(jen.Id("count"))))
	}
	return code
}

const buildManyName = "BuildMany"

// GenerateBuildMany emits BuildMany, calling Build count times.
func GenerateBuildMany(p config.BuilderProperties, e *entity.Entity) jen.Code {
	if p.HasMethod(buildManyName) {
		return nil
	}
	out := jen.Id("out")
	return jen.Func().Params(jen.Id(entity.Receiver).Add(builderPtr(p, e))).Id(buildManyName).
		Params(jen.Id("count").Int()).
		Index().Add(e.ResultType()).
		Block(
			out.Clone().Op(":=").Make(jen.Index().Add(e.ResultType()), jen.Lit(0), jen.Id("count")),
			jen.For(jen.Range().Id("count")).Block(
				out.Clone().Op("=").Append(out.Clone(), jen.Id(entity.Receiver).Dot(config.BuildMethodName).Call()),
			),
			jen.Return(out.Clone()),
		)
}

// GenerateCast emits the conversion method <Target>() on the builder.
func GenerateCast(p config.BuilderProperties, e *entity.Entity) jen.Code {
	if !p.ImplicitCast || p.HasMethod(e.Name) {
		return nil
	}
	return jen.Func().Params(jen.Id(entity.Receiver).Add(builderPtr(p, e))).Id(e.Name).Params().
		Add(e.ResultType()).
		Block(jen.Return(jen.Id(entity.Receiver).Dot(config.BuildMethodName).Call()))
}
