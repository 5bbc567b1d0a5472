package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"go/token"
	"slices"
	"strings"
)

// SymbolData is a named, typed member: a struct field or a function parameter.
type SymbolData struct {
	Name string   `json:"name"`
	Type *TypeRef `json:"type"`
}

func (s SymbolData) Equal(o SymbolData) bool {
	return s.Name == o.Name && s.Type.Equal(o.Type)
}

// ConstructorKind tags a construction path.
type ConstructorKind uint8

const (
	// ConstructorObject is a New<Type> function or, when Name is empty, a composite literal.
	ConstructorObject ConstructorKind = iota
	// ConstructorStatic is a named factory function selected by configuration.
	ConstructorStatic
)

func (k ConstructorKind) String() string {
	if k == ConstructorStatic {
		return "static"
	}
	return "object"
}

// ConstructorData describes a function (or literal) that produces the target type.
type ConstructorData struct {
	Kind         ConstructorKind `json:"kind"`
	Name         string          `json:"name,omitempty"`
	Params       []SymbolData    `json:"params,omitempty"`
	Pointer      bool            `json:"pointer,omitempty"`       // returns *T
	ReturnsError bool            `json:"returns_error,omitempty"` // second result is error
	Variadic     bool            `json:"variadic,omitempty"`
	Generic      bool            `json:"generic,omitempty"` // shares the target's type parameters
}

// IsLiteral reports whether construction is the implicit composite literal.
func (c ConstructorData) IsLiteral() bool {
	return c.Kind == ConstructorObject && c.Name == ""
}

func (c ConstructorData) Equal(o ConstructorData) bool {
	return c.Kind == o.Kind && c.Name == o.Name && c.Pointer == o.Pointer &&
		c.ReturnsError == o.ReturnsError && c.Variadic == o.Variadic && c.Generic == o.Generic &&
		slices.EqualFunc(c.Params, o.Params, SymbolData.Equal)
}

// TypeParam is a declared type parameter and its constraint.
type TypeParam struct {
	Name       string   `json:"name"`
	Constraint *TypeRef `json:"constraint"`
}

func (p TypeParam) Equal(o TypeParam) bool {
	return p.Name == o.Name && p.Constraint.Equal(o.Constraint)
}

// TypeDescriptor is an immutable snapshot of a target type's shape.
type TypeDescriptor struct {
	PkgPath              string            `json:"pkg_path"`
	PkgName              string            `json:"pkg_name"`
	Name                 string            `json:"name"`
	IsAbstract           bool              `json:"is_abstract,omitempty"`
	TypeParams           []TypeParam       `json:"type_params,omitempty"`
	Constructors         []ConstructorData `json:"constructors,omitempty"`
	StaticMethods        []ConstructorData `json:"static_methods,omitempty"`
	SettableProperties   []SymbolData      `json:"settable_properties,omitempty"`
	UnsettableProperties []SymbolData      `json:"unsettable_properties,omitempty"`
	AdditionalNamespaces []string          `json:"additional_namespaces,omitempty"`
}

// Ref returns the type expression naming the descriptor, instantiated with its own type parameters.
func (d TypeDescriptor) Ref() *TypeRef {
	args := make([]*TypeRef, 0, len(d.TypeParams))
	for _, p := range d.TypeParams {
		args = append(args, TypeParamRef(p.Name))
	}
	return Named(d.PkgPath, d.PkgName, d.Name, args...)
}

// FullName is the package-qualified name, e.g. models.Box[T].
func (d TypeDescriptor) FullName() string {
	return d.Ref().String()
}

// FullNameWithConstraints spells the type parameters with their constraints, e.g. models.Box[T any].
func (d TypeDescriptor) FullNameWithConstraints() string {
	var b strings.Builder
	b.WriteString(d.PkgName)
	b.WriteByte('.')
	b.WriteString(d.Name)
	if len(d.TypeParams) > 0 {
		b.WriteByte('[')
		for i, p := range d.TypeParams {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Name)
			b.WriteByte(' ')
			b.WriteString(p.Constraint.String())
		}
		b.WriteByte(']')
	}
	return b.String()
}

// Members returns the settable and unsettable properties in that order.
func (d TypeDescriptor) Members() []SymbolData {
	return append(slices.Clone(d.SettableProperties), d.UnsettableProperties...)
}

func (d TypeDescriptor) Equal(o TypeDescriptor) bool {
	return d.PkgPath == o.PkgPath && d.PkgName == o.PkgName && d.Name == o.Name &&
		d.IsAbstract == o.IsAbstract &&
		slices.EqualFunc(d.TypeParams, o.TypeParams, TypeParam.Equal) &&
		slices.EqualFunc(d.Constructors, o.Constructors, ConstructorData.Equal) &&
		slices.EqualFunc(d.StaticMethods, o.StaticMethods, ConstructorData.Equal) &&
		slices.EqualFunc(d.SettableProperties, o.SettableProperties, SymbolData.Equal) &&
		slices.EqualFunc(d.UnsettableProperties, o.UnsettableProperties, SymbolData.Equal) &&
		slices.Equal(d.AdditionalNamespaces, o.AdditionalNamespaces)
}

// Fingerprint hashes the canonical JSON encoding of d together with any extra inputs.
func (d TypeDescriptor) Fingerprint(extra ...any) (string, error) {
	h := sha256.New()
	enc := json.NewEncoder(h)
	if err := enc.Encode(d); err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", d.Name, err)
	}
	for i, e := range extra {
		if err := enc.Encode(e); err != nil {
			return "", fmt.Errorf("fingerprint %s input %d: %w", d.Name, i, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// MethodKind tags methods declared on a builder.
type MethodKind uint8

const (
	MethodOrdinary MethodKind = iota
	MethodConstructor
)

// MethodData describes a hand-written builder method or constructor function.
type MethodData struct {
	Kind                   MethodKind `json:"kind"`
	Name                   string     `json:"name"`
	ParametersLength       int        `json:"parameters_length"`
	FirstParameterTypeName string     `json:"first_parameter_type_name,omitempty"`
}

// FieldData describes a field declared on the builder struct.
type FieldData struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Embedded bool   `json:"embedded,omitempty"`
}

// BuilderDescriptor is a read-only snapshot of the hand-written half of a builder.
type BuilderDescriptor struct {
	PkgPath    string         `json:"pkg_path"`
	PkgName    string         `json:"pkg_name"`
	Name       string         `json:"name"`
	Dir        string         `json:"-"`
	TypeParams []TypeParam    `json:"type_params,omitempty"`
	Declared   bool           `json:"declared"`
	Position   token.Position `json:"-"`
	Fields     []FieldData    `json:"fields,omitempty"`
	Methods    []MethodData   `json:"methods,omitempty"`
}

// FullName is the package-qualified builder name.
func (b BuilderDescriptor) FullName() string {
	return b.PkgName + "." + b.Name
}

// HasField reports whether the builder declares a field (or embeds a type) named name.
func (b BuilderDescriptor) HasField(name string) bool {
	return slices.ContainsFunc(b.Fields, func(f FieldData) bool { return f.Name == name })
}

// Method finds a hand-written method by name.
func (b BuilderDescriptor) Method(name string) (MethodData, bool) {
	for _, m := range b.Methods {
		if m.Kind == MethodOrdinary && m.Name == name {
			return m, true
		}
	}
	return MethodData{}, false
}
