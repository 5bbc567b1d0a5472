package model

import (
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Kind classifies the shape of a TypeRef.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBasic
	KindNamed
	KindPointer
	KindSlice
	KindArray
	KindMap
	KindTypeParam
	KindRaw
)

// TypeRef is a structural, comparable description of a Go type expression.
type TypeRef struct {
	Kind    Kind       `json:"kind"`
	PkgPath string     `json:"pkg_path,omitempty"` // "" for builtins and type parameters
	PkgName string     `json:"pkg_name,omitempty"`
	Name    string     `json:"name,omitempty"`
	Args    []*TypeRef `json:"args,omitempty"` // type arguments of an instantiated named type
	Elem    *TypeRef   `json:"elem,omitempty"` // pointer, slice, array, map value
	Key     *TypeRef   `json:"key,omitempty"`
	Len     int64      `json:"len,omitempty"`

	// Interface is set for named types whose underlying type is an interface.
	Interface bool `json:"interface,omitempty"`
	// Iterable is set for interfaces exposing a method that returns iter.Seq or iter.Seq2.
	Iterable bool `json:"iterable,omitempty"`

	// Raw holds the source spelling of types without a structural form (funcs, chans, literals).
	Raw     string   `json:"raw,omitempty"`
	Imports []string `json:"imports,omitempty"`
}

func Basic(name string) *TypeRef { return &TypeRef{Kind: KindBasic, Name: name} }

func Named(pkgPath, pkgName, name string, args ...*TypeRef) *TypeRef {
	return &TypeRef{Kind: KindNamed, PkgPath: pkgPath, PkgName: pkgName, Name: name, Args: args}
}

func InterfaceOf(pkgPath, pkgName, name string, iterable bool, args ...*TypeRef) *TypeRef {
	t := Named(pkgPath, pkgName, name, args...)
	t.Interface = true
	t.Iterable = iterable
	return t
}

func PointerTo(elem *TypeRef) *TypeRef { return &TypeRef{Kind: KindPointer, Elem: elem} }
func SliceOf(elem *TypeRef) *TypeRef   { return &TypeRef{Kind: KindSlice, Elem: elem} }
func ArrayOf(n int64, elem *TypeRef) *TypeRef {
	return &TypeRef{Kind: KindArray, Len: n, Elem: elem}
}
func MapOf(key, elem *TypeRef) *TypeRef { return &TypeRef{Kind: KindMap, Key: key, Elem: elem} }
func TypeParamRef(name string) *TypeRef { return &TypeRef{Kind: KindTypeParam, Name: name} }

// RawType wraps a type spelled verbatim. imports lists the package paths the spelling refers to.
func RawType(expr string, imports ...string) *TypeRef {
	imps := slices.Clone(imports)
	sort.Strings(imps)
	return &TypeRef{Kind: KindRaw, Raw: expr, Imports: slices.Compact(imps)}
}

// String renders t with package-name qualifiers.
func (t *TypeRef) String() string {
	return t.Qualified("")
}

// Qualified renders t, leaving types that live in local unqualified.
func (t *TypeRef) Qualified(local string) string {
	if t == nil {
		return ""
	}
	var b strings.Builder
	t.write(&b, local)
	return b.String()
}

func (t *TypeRef) write(b *strings.Builder, local string) {
	switch t.Kind {
	case KindBasic, KindTypeParam:
		b.WriteString(t.Name)
	case KindNamed:
		if t.PkgPath != "" && t.PkgPath != local {
			b.WriteString(t.PkgName)
			b.WriteByte('.')
		}
		b.WriteString(t.Name)
		if len(t.Args) > 0 {
			b.WriteByte('[')
			for i, a := range t.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				a.write(b, local)
			}
			b.WriteByte(']')
		}
	case KindPointer:
		b.WriteByte('*')
		t.Elem.write(b, local)
	case KindSlice:
		b.WriteString("[]")
		t.Elem.write(b, local)
	case KindArray:
		b.WriteByte('[')
		b.WriteString(strconv.FormatInt(t.Len, 10))
		b.WriteByte(']')
		t.Elem.write(b, local)
	case KindMap:
		b.WriteString("map[")
		t.Key.write(b, local)
		b.WriteByte(']')
		t.Elem.write(b, local)
	case KindRaw:
		b.WriteString(t.Raw)
	}
}

// Short returns the unqualified name of the innermost named type.
func (t *TypeRef) Short() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case KindBasic, KindNamed, KindTypeParam:
		return t.Name
	case KindPointer, KindSlice, KindArray, KindMap:
		return t.Elem.Short()
	default:
		return t.Raw
	}
}

// Packages returns every package path referenced by t, sorted and distinct.
func (t *TypeRef) Packages() []string {
	seen := make(map[string]struct{})
	t.collect(seen)
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (t *TypeRef) collect(seen map[string]struct{}) {
	if t == nil {
		return
	}
	if t.PkgPath != "" {
		seen[t.PkgPath] = struct{}{}
	}
	for _, p := range t.Imports {
		seen[p] = struct{}{}
	}
	for _, a := range t.Args {
		a.collect(seen)
	}
	t.Key.collect(seen)
	t.Elem.collect(seen)
}

// PackageNames maps every package path referenced by t to its declared name.
func (t *TypeRef) PackageNames(into map[string]string) {
	if t == nil {
		return
	}
	if t.PkgPath != "" && t.PkgName != "" {
		into[t.PkgPath] = t.PkgName
	}
	for _, a := range t.Args {
		a.PackageNames(into)
	}
	t.Key.PackageNames(into)
	t.Elem.PackageNames(into)
}

// Equal reports structural equality.
func (t *TypeRef) Equal(o *TypeRef) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind != o.Kind || t.PkgPath != o.PkgPath || t.PkgName != o.PkgName || t.Name != o.Name ||
		t.Len != o.Len || t.Interface != o.Interface || t.Iterable != o.Iterable || t.Raw != o.Raw {
		return false
	}
	if !slices.Equal(t.Imports, o.Imports) || len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return t.Key.Equal(o.Key) && t.Elem.Equal(o.Elem)
}
