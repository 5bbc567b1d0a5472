package parser

import (
	"go/types"

	"github.com/cmmoran/buildgen/internal/model"
)

// typeMapper converts go/types types into model.TypeRef values. local is the
// builder's package; raw spellings leave its types unqualified.
type typeMapper struct {
	local string
}

func (m typeMapper) typeRef(t types.Type) *model.TypeRef {
	switch t := types.Unalias(t).(type) {
	case *types.Basic:
		if t.Kind() == types.UnsafePointer {
			return model.RawType("unsafe.Pointer", "unsafe")
		}
		return model.Basic(t.Name())

	case *types.Named:
		obj := t.Obj()
		args := make([]*model.TypeRef, 0, t.TypeArgs().Len())
		for i := range t.TypeArgs().Len() {
			args = append(args, m.typeRef(t.TypeArgs().At(i)))
		}
		if obj.Pkg() == nil {
			// error, comparable
			return model.Named("", "", obj.Name(), args...)
		}
		if iface, ok := t.Underlying().(*types.Interface); ok {
			return model.InterfaceOf(obj.Pkg().Path(), obj.Pkg().Name(), obj.Name(), iterable(iface), args...)
		}
		return model.Named(obj.Pkg().Path(), obj.Pkg().Name(), obj.Name(), args...)

	case *types.Pointer:
		return model.PointerTo(m.typeRef(t.Elem()))
	case *types.Slice:
		return model.SliceOf(m.typeRef(t.Elem()))
	case *types.Array:
		return model.ArrayOf(t.Len(), m.typeRef(t.Elem()))
	case *types.Map:
		return model.MapOf(m.typeRef(t.Key()), m.typeRef(t.Elem()))
	case *types.TypeParam:
		return model.TypeParamRef(t.Obj().Name())
	case *types.Interface:
		if t.Empty() {
			return model.Basic("any")
		}
	}

	// chans, funcs, struct and interface literals
	var imports []string
	expr := types.TypeString(t, func(p *types.Package) string {
		if p.Path() == m.local {
			return ""
		}
		imports = append(imports, p.Path())
		return p.Name()
	})
	return model.RawType(expr, imports...)
}

// iterable reports whether iface has a method returning iter.Seq or iter.Seq2.
func iterable(iface *types.Interface) bool {
	for i := range iface.NumMethods() {
		sig, ok := iface.Method(i).Type().(*types.Signature)
		if !ok {
			continue
		}
		for j := range sig.Results().Len() {
			named, ok := types.Unalias(sig.Results().At(j).Type()).(*types.Named)
			if !ok || named.Obj().Pkg() == nil || named.Obj().Pkg().Path() != "iter" {
				continue
			}
			if name := named.Obj().Name(); name == "Seq" || name == "Seq2" {
				return true
			}
		}
	}
	return false
}

func (m typeMapper) typeParams(list *types.TypeParamList) []model.TypeParam {
	out := make([]model.TypeParam, 0, list.Len())
	for i := range list.Len() {
		tp := list.At(i)
		out = append(out, model.TypeParam{Name: tp.Obj().Name(), Constraint: m.typeRef(tp.Constraint())})
	}
	return out
}
