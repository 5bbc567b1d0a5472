package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cmmoran/buildgen/internal/naming"
)

// MockingProperties configures how interface-typed members are mocked.
//
// TypeDeclarationFormat and FieldDefaultValueAssignmentFormat receive the
// qualified member type as %[1]s and its short name as %[2]s.
// ReturnObjectFormat receives the expression holding the mock as %[1]s.
type MockingProperties struct {
	Strategy                          MockingStrategy
	TypeDeclarationFormat             string
	FieldDefaultValueAssignmentFormat string
	ReturnObjectFormat                string
	AdditionalNamespaces              []string
}

// ResolveMocking picks the per-type record when present, else the compile-unit one.
func ResolveMocking(global, local *MockingProperties) *MockingProperties {
	if local != nil {
		return local
	}
	return global
}

func (m *MockingProperties) FieldType(typeFullName, typeName string) string {
	return fmt.Sprintf(m.TypeDeclarationFormat, typeFullName, typeName)
}

func (m *MockingProperties) DefaultValue(typeFullName, typeName string) string {
	return fmt.Sprintf(m.FieldDefaultValueAssignmentFormat, typeFullName, typeName)
}

func (m *MockingProperties) ReturnObject(expr string) string {
	return fmt.Sprintf(m.ReturnObjectFormat, expr)
}

func (m *MockingProperties) Namespaces() []string {
	if m == nil {
		return nil
	}
	return m.AdditionalNamespaces
}

func (m *MockingProperties) Equal(o *MockingProperties) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.Strategy == o.Strategy &&
		m.TypeDeclarationFormat == o.TypeDeclarationFormat &&
		m.FieldDefaultValueAssignmentFormat == o.FieldDefaultValueAssignmentFormat &&
		m.ReturnObjectFormat == o.ReturnObjectFormat &&
		slices.Equal(m.AdditionalNamespaces, o.AdditionalNamespaces)
}

// FixtureProperties configures randomized value generation.
//
// Name is the fixture type, e.g. fixture.Fixture; the builder creates one with
// New<Name>(ConstructorParameters). CreateSingleFormat receives the qualified
// member type as %[1]s, the member name as %[2]s and the fixture expression as %[3]s.
// AdditionalConfiguration receives the fixture expression as %[1]s and Name as %[2]s.
type FixtureProperties struct {
	Name                    string
	CreateSingleFormat      string
	ConstructorParameters   string
	AdditionalConfiguration string
	Strategy                FixtureStrategy
	AdditionalNamespaces    []string
}

// ResolveFixture picks the per-type record when present, else the compile-unit one.
func ResolveFixture(global, local *FixtureProperties) *FixtureProperties {
	if local != nil {
		return local
	}
	return global
}

func (f *FixtureProperties) NeedsAdditionalConfiguration() bool {
	return f != nil && strings.TrimSpace(f.AdditionalConfiguration) != ""
}

func (f *FixtureProperties) GenerateAdditionalConfiguration(fixtureExpr string) string {
	if !f.NeedsAdditionalConfiguration() {
		return ""
	}
	return fmt.Sprintf(f.AdditionalConfiguration, fixtureExpr, f.Name)
}

func (f *FixtureProperties) CreateSingle(typeFullName, memberName, fixtureExpr string) string {
	return fmt.Sprintf(f.CreateSingleFormat, typeFullName, memberName, fixtureExpr)
}

// TypeName is the pointer type the builder stores its fixture in.
func (f *FixtureProperties) TypeName() string {
	return "*" + f.Name
}

// GenerateNew renders the expression creating a fresh fixture.
func (f *FixtureProperties) GenerateNew() string {
	qual, short := "", f.Name
	if i := strings.LastIndex(f.Name, "."); i >= 0 {
		qual, short = f.Name[:i+1], f.Name[i+1:]
	}
	return qual + "New" + naming.Pascal(short) + "(" + f.ConstructorParameters + ")"
}

func (f *FixtureProperties) Namespaces() []string {
	if f == nil {
		return nil
	}
	return f.AdditionalNamespaces
}

func (f *FixtureProperties) Equal(o *FixtureProperties) bool {
	if f == nil || o == nil {
		return f == o
	}
	return f.Name == o.Name &&
		f.CreateSingleFormat == o.CreateSingleFormat &&
		f.ConstructorParameters == o.ConstructorParameters &&
		f.AdditionalConfiguration == o.AdditionalConfiguration &&
		f.Strategy == o.Strategy &&
		slices.Equal(f.AdditionalNamespaces, o.AdditionalNamespaces)
}
