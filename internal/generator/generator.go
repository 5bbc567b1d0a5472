package generator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/buildgen/internal/config"
	"github.com/cmmoran/buildgen/internal/diag"
	"github.com/cmmoran/buildgen/internal/entity"
)

const Header = "Code generated by buildgen. DO NOT EDIT."

// Input is everything needed to render one builder file.
type Input struct {
	Properties config.BuilderProperties
	Entity     *entity.Entity
	Mocking    *config.MockingProperties
	Fixture    *config.FixtureProperties
	// PackageNames maps import paths to their declared package names.
	PackageNames map[string]string
}

// FileName is the name of the file holding the generated half of builder.
func FileName(builder string) string {
	return strings.ToLower(builder) + "_gen.go"
}

// Generate renders the builder file. Diagnostics are advisory; an error means
// the rendered source could not be assembled.
func Generate(in Input) ([]byte, []diag.Diagnostic, error) {
	p, e := in.Properties, in.Entity
	diags := append([]diag.Diagnostic(nil), p.Diagnostics...)

	f := jen.NewFilePathName(p.Builder.PkgPath, p.Builder.PkgName)
	f.HeaderComment(Header)
	names := packageNames(p, e, in.PackageNames)
	f.ImportNames(names)

	add := func(c jen.Code) {
		if c != nil {
			f.Add(c)
			f.Line()
		}
	}

	if p.Builder.Declared && !p.Builder.HasField(StateName(p.Name())) {
		diags = append(diags, diag.New(diag.StateNotEmbedded, p.Builder.Position, p.Name(), StateName(p.Name())))
	}
	add(GenerateBuilderStruct(p, e))

	props, propDiags := GeneratePropertiesCode(p, e, in.Fixture)
	diags = append(diags, propDiags...)
	add(props)

	ctor := GenerateConstructor(p, e, in.Fixture)
	add(ctor)

	buildEmitted := !p.IsBuildMethodOverridden && e.ConstructorToBuild != nil
	add(GenerateStaticCode(p, e, in.Fixture, ctor != nil, buildEmitted))
	add(GenerateFixtureAccessor(p, e, in.Fixture))

	if buildEmitted {
		add(e.GenerateBuildsCode(builderPtr(p, e), p.IsPostBuildMethodOverridden, p.ShouldGenerateMethodsForUnreachableProperties))
		add(GenerateBuildMany(p, e))
		add(GenerateCast(p, e))
	}
	if p.GenerateDefaultBuildMethod {
		add(e.GenerateDefaultBuildsCode())
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, diags, fmt.Errorf("render %s: %w", p.Name(), err)
	}
	src, err := fixImports(buf.Bytes(), GenerateNamespaces(p, e, in.Mocking, in.Fixture), names)
	if err != nil {
		return nil, diags, fmt.Errorf("render %s: %w", p.Name(), err)
	}
	return src, diags, nil
}
