package entity

import (
	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/buildgen/internal/model"
)

const BuildkitPath = "github.com/cmmoran/buildgen/pkg/buildkit"

// TypeCode renders a TypeRef as jennifer code. Named types are qualified by
// package path so the enclosing file manages their imports.
func TypeCode(t *model.TypeRef) *jen.Statement {
	if t == nil {
		return jen.Null()
	}
	switch t.Kind {
	case model.KindBasic, model.KindTypeParam:
		return jen.Id(t.Name)
	case model.KindNamed:
		var s *jen.Statement
		if t.PkgPath == "" {
			s = jen.Id(t.Name)
		} else {
			s = jen.Qual(t.PkgPath, t.Name)
		}
		if len(t.Args) > 0 {
			args := make([]jen.Code, 0, len(t.Args))
			for _, a := range t.Args {
				args = append(args, TypeCode(a))
			}
			s = s.Types(args...)
		}
		return s
	case model.KindPointer:
		return jen.Op("*").Add(TypeCode(t.Elem))
	case model.KindSlice:
		return jen.Index().Add(TypeCode(t.Elem))
	case model.KindArray:
		return jen.Index(jen.Lit(int(t.Len))).Add(TypeCode(t.Elem))
	case model.KindMap:
		return jen.Map(TypeCode(t.Key)).Add(TypeCode(t.Elem))
	default:
		return jen.Id(t.Raw)
	}
}

// TypeParamsCode renders a type parameter list with constraints, e.g. [T any].
func TypeParamsCode(params []model.TypeParam) []jen.Code {
	out := make([]jen.Code, 0, len(params))
	for _, p := range params {
		out = append(out, jen.Id(p.Name).Add(TypeCode(p.Constraint)))
	}
	return out
}

// TypeArgsCode renders the names of params as type arguments, e.g. [T].
func TypeArgsCode(params []model.TypeParam) []jen.Code {
	out := make([]jen.Code, 0, len(params))
	for _, p := range params {
		out = append(out, jen.Id(p.Name))
	}
	return out
}

// Instantiate appends [T, U] to s when params is non-empty.
func Instantiate(s *jen.Statement, params []model.TypeParam) *jen.Statement {
	if len(params) == 0 {
		return s
	}
	return s.Types(TypeArgsCode(params)...)
}

// Generic appends [T any, U comparable] to s when params is non-empty.
func Generic(s *jen.Statement, params []model.TypeParam) *jen.Statement {
	if len(params) == 0 {
		return s
	}
	return s.Types(TypeParamsCode(params)...)
}

func buildkit(name string) *jen.Statement {
	return jen.Qual(BuildkitPath, name)
}
