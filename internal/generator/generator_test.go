package generator

import (
	"go/ast"
	"go/parser"
	"go/token"
	"sort"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/buildgen/internal/config"
	"github.com/cmmoran/buildgen/internal/diag"
	"github.com/cmmoran/buildgen/internal/entity"
	"github.com/cmmoran/buildgen/internal/model"
)

const (
	modelsPath   = "example.com/app/models"
	buildersPath = "example.com/app/builders"
	mocksPath    = "example.com/app/mocks"
	fixturePath  = "github.com/cmmoran/buildgen/pkg/fixture"
)

var repoType = model.InterfaceOf(modelsPath, "models", "Repo", false)

func mockingProps() *config.MockingProperties {
	return &config.MockingProperties{
		Strategy:                          config.MockingAll,
		TypeDeclarationFormat:             "*mocks.Mock%[2]s",
		FieldDefaultValueAssignmentFormat: "mocks.NewMock%[2]s()",
		ReturnObjectFormat:                "%[1]s",
		AdditionalNamespaces:              []string{mocksPath},
	}
}

func fixtureProps() *config.FixtureProperties {
	return &config.FixtureProperties{
		Name:                 "fixture.Fixture",
		CreateSingleFormat:   "fixture.Create[%[1]s](%[3]s)",
		Strategy:             config.FixtureAll,
		AdditionalNamespaces: []string{fixturePath},
	}
}

func descriptor() model.TypeDescriptor {
	ctor := model.ConstructorData{Kind: model.ConstructorObject, Name: "NewEntity", Pointer: true, Params: []model.SymbolData{
		{Name: "name", Type: model.Basic("string")},
		{Name: "repo", Type: repoType},
	}}
	return model.TypeDescriptor{
		PkgPath:       modelsPath,
		PkgName:       "models",
		Name:          "Entity",
		Constructors:  []model.ConstructorData{ctor},
		StaticMethods: []model.ConstructorData{ctor},
		SettableProperties: []model.SymbolData{
			{Name: "Name", Type: model.Basic("string")},
			{Name: "Repo", Type: repoType},
			{Name: "Age", Type: model.Basic("int")},
			{Name: "Created", Type: model.Named("time", "time", "Time")},
		},
		UnsettableProperties: []model.SymbolData{
			{Name: "secret", Type: model.Basic("string")},
		},
	}
}

func builder(methods ...model.MethodData) model.BuilderDescriptor {
	return model.BuilderDescriptor{
		PkgPath:  buildersPath,
		PkgName:  "builders",
		Name:     "EntityBuilder",
		Declared: true,
		Position: token.Position{Filename: "entity_builder.go", Line: 7, Column: 1},
		Fields:   []model.FieldData{{Name: "entityBuilderFields", Type: "entityBuilderFields", Embedded: true}},
		Methods:  methods,
	}
}

func input(t *testing.T, b model.BuilderDescriptor, perType config.BuilderOverrides, mocking *config.MockingProperties, fixture *config.FixtureProperties) Input {
	t.Helper()
	props, err := config.Resolve(b, perType, nil, false)
	require.NoError(t, err)
	return Input{
		Properties: props,
		Entity:     entity.New(descriptor(), mocking, fixture, props.NullableStrategy, props.StaticFactoryMethodName, b.PkgPath),
		Mocking:    mocking,
		Fixture:    fixture,
	}
}

// declared lists the top-level names of src: funcs, Receiver.Methods and types.
func declared(t *testing.T, src []byte) (*ast.File, []string) {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, parser.ParseComments)
	require.NoError(t, err, string(src))
	var names []string
	for _, d := range f.Decls {
		switch d := d.(type) {
		case *ast.FuncDecl:
			name := d.Name.Name
			if d.Recv != nil {
				recv := d.Recv.List[0].Type
				if star, ok := recv.(*ast.StarExpr); ok {
					recv = star.X
				}
				if idx, ok := recv.(*ast.IndexExpr); ok {
					recv = idx.X
				}
				name = recv.(*ast.Ident).Name + "." + name
			}
			names = append(names, name)
		case *ast.GenDecl:
			for _, s := range d.Specs {
				if ts, ok := s.(*ast.TypeSpec); ok {
					names = append(names, ts.Name.Name)
				}
			}
		}
	}
	sort.Strings(names)
	return f, names
}

func imports(f *ast.File) []string {
	var out []string
	for _, s := range f.Imports {
		p, _ := strconv.Unquote(s.Path.Value)
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func TestGenerateFullBuilder(t *testing.T) {
	src, diags, err := Generate(input(t, builder(), config.BuilderOverrides{}, mockingProps(), fixtureProps()))
	require.NoError(t, err)
	assert.Empty(t, diags)

	f, names := declared(t, src)
	want := []string{
		"BuildDefaultEntity",
		"EntityBuilder.Build",
		"EntityBuilder.BuildMany",
		"EntityBuilder.WithAge",
		"EntityBuilder.WithCreated",
		"EntityBuilder.WithName",
		"EntityBuilder.WithRepo",
		"EntityBuilder.fixtureInstance",
		"EntityDefaults",
		"NewEntityBuilder",
		"entityBuilderFields",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("declarations mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{
		"example.com/app/mocks",
		"example.com/app/models",
		entity.BuildkitPath,
		fixturePath,
		"time",
	}, imports(f))
	assert.True(t, ast.IsGenerated(f))

	out := string(src)
	assert.Contains(t, out, "b.repo = mocks.NewMockRepo()")
	assert.Contains(t, out, "b.buildgenFixture = fixture.NewFixture()")
	assert.Contains(t, out, "func (b *EntityBuilder) WithRepo(setup func(*mocks.MockRepo)) *EntityBuilder {")
	assert.Contains(t, out, "func (b *EntityBuilder) WithAge(value int) *EntityBuilder {")
	assert.Contains(t, out, "b.age = buildkit.NewNullBox(value)")
	assert.Regexp(t, `created\s+\*buildkit\.NullBox\[time\.Time\]`, out)
	assert.NotContains(t, out, "secret")
}

func TestGenerateIsDeterministic(t *testing.T) {
	in := input(t, builder(), config.BuilderOverrides{}, mockingProps(), fixtureProps())
	first, _, err := Generate(in)
	require.NoError(t, err)
	for range 5 {
		again, _, err := Generate(input(t, builder(), config.BuilderOverrides{}, mockingProps(), fixtureProps()))
		require.NoError(t, err)
		require.Equal(t, string(first), string(again))
	}
}

func TestGenerateRespectsHandWrittenMembers(t *testing.T) {
	b := builder(
		model.MethodData{Kind: model.MethodOrdinary, Name: "WithName", ParametersLength: 1, FirstParameterTypeName: "string"},
		model.MethodData{Kind: model.MethodOrdinary, Name: "WithAge", ParametersLength: 1, FirstParameterTypeName: "int64"},
		model.MethodData{Kind: model.MethodOrdinary, Name: "PostBuild", ParametersLength: 1, FirstParameterTypeName: "*models.Entity"},
		model.MethodData{Kind: model.MethodConstructor, Name: "NewEntityBuilder"},
	)
	b.Fields = append(b.Fields, model.FieldData{Name: "created", Type: "*buildkit.NullBox[time.Time]"})

	src, diags, err := Generate(input(t, b, config.BuilderOverrides{}, mockingProps(), nil))
	require.NoError(t, err)

	ids := make([]string, 0, len(diags))
	for _, d := range diags {
		ids = append(ids, d.Descriptor.ID)
	}
	assert.ElementsMatch(t, []string{diag.DefaultConstructorOverridden.ID, diag.BuildingMethodConflict.ID}, ids)

	_, names := declared(t, src)
	assert.NotContains(t, names, "EntityBuilder.WithName")
	assert.NotContains(t, names, "EntityBuilder.WithAge")
	assert.NotContains(t, names, "NewEntityBuilder")
	assert.NotContains(t, names, "EntityBuilder.fixtureInstance")
	assert.Contains(t, names, "EntityBuilder.WithCreated")

	out := string(src)
	assert.Contains(t, out, "b.PostBuild(result)")
	assert.NotRegexp(t, `created\s+\*buildkit\.NullBox`, out)
	assert.NotContains(t, out, "fixture")
}

func TestGenerateConstructorWithParameters(t *testing.T) {
	yes := true
	b := builder(model.MethodData{Kind: model.MethodConstructor, Name: "NewEntityBuilder", ParametersLength: 1, FirstParameterTypeName: "string"})
	src, diags, err := Generate(input(t, b, config.BuilderOverrides{GenerateStaticPropertyForBuilderCreation: &yes}, mockingProps(), nil))
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.ConstructorTakesParameters, diags[0].Descriptor)

	_, names := declared(t, src)
	assert.NotContains(t, names, "NewEntityBuilder")
	assert.Contains(t, names, "Entity")
	// the static func installs the mocks itself
	assert.Regexp(t, `func Entity\(\) \*EntityBuilder \{\s+b := &EntityBuilder\{\}\s+b\.repo = mocks\.NewMockRepo\(\)\s+return b\s+\}`, string(src))
}

func TestGenerateBuildOverridden(t *testing.T) {
	b := builder(model.MethodData{Kind: model.MethodOrdinary, Name: "Build"})
	src, diags, err := Generate(input(t, b, config.BuilderOverrides{}, nil, nil))
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.BuildMethodOverridden, diags[0].Descriptor)

	_, names := declared(t, src)
	assert.NotContains(t, names, "EntityBuilder.Build")
	assert.NotContains(t, names, "EntityBuilder.BuildMany")
	assert.Contains(t, names, "BuildDefaultEntity")
}

func TestGenerateOptionalExtras(t *testing.T) {
	yes, no := true, false
	prefix := "Set"
	perType := config.BuilderOverrides{
		BuildingMethodsPrefix:                    &prefix,
		ImplicitCast:                             &yes,
		GenerateStaticPropertyForBuilderCreation: &yes,
		GenerateMethodsForUnreachableProperties:  &yes,
		GenerateDefaultBuildMethod:               &no,
	}
	src, _, err := Generate(input(t, builder(), perType, nil, nil))
	require.NoError(t, err)

	_, names := declared(t, src)
	want := []string{
		"Entities",
		"Entity",
		"EntityBuilder.Build",
		"EntityBuilder.BuildMany",
		"EntityBuilder.Entity",
		"EntityBuilder.SetAge",
		"EntityBuilder.SetCreated",
		"EntityBuilder.SetName",
		"EntityBuilder.SetRepo",
		"EntityBuilder.SetSecret",
		"entityBuilderFields",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("declarations mismatch (-want +got):\n%s", diff)
	}
	out := string(src)
	assert.Contains(t, out, "return &EntityBuilder{}")
	assert.Contains(t, out, "return Entity().BuildMany(count)")
	assert.Contains(t, out, `buildkit.SetField(result, "secret", buildkit.ValueOrZero(b.secret))`)
}

func TestGenerateUndeclaredBuilder(t *testing.T) {
	b := builder()
	b.Declared = false
	b.Fields = nil
	src, diags, err := Generate(input(t, b, config.BuilderOverrides{}, nil, nil))
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Contains(t, string(src), "type EntityBuilder struct {\n\tentityBuilderFields\n}")

	b.Declared = true
	_, diags, err = Generate(input(t, b, config.BuilderOverrides{}, nil, nil))
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.StateNotEmbedded, diags[0].Descriptor)
}

func TestGenerateNamespaces(t *testing.T) {
	in := input(t, builder(), config.BuilderOverrides{}, mockingProps(), fixtureProps())
	got := GenerateNamespaces(in.Properties, in.Entity, in.Mocking, in.Fixture)
	assert.Equal(t, []string{mocksPath, modelsPath, entity.BuildkitPath, fixturePath, "time"}, got)

	// no member is mockable under the none strategy
	m := mockingProps()
	m.Strategy = config.MockingNone
	in = input(t, builder(), config.BuilderOverrides{}, m, nil)
	got = GenerateNamespaces(in.Properties, in.Entity, in.Mocking, in.Fixture)
	assert.Equal(t, []string{modelsPath, entity.BuildkitPath, "time"}, got)
}

func TestFixImportsPrunesAndAdds(t *testing.T) {
	src := []byte(`package builders

import (
	"fmt"
	"strings"
)

func f() string { return yaml.Marshal + fmt.Sprint(1) }
`)
	out, err := fixImports(src, []string{"gopkg.in/yaml.v3", "os"}, map[string]string{})
	require.NoError(t, err)
	f, err := parser.ParseFile(token.NewFileSet(), "", out, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"fmt", "gopkg.in/yaml.v3"}, imports(f))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "entitybuilder_gen.go", FileName("EntityBuilder"))
	assert.Equal(t, "entityBuilderFields", StateName("EntityBuilder"))
}
