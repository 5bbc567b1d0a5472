package parser

import (
	"go/types"
	"slices"
	"strings"

	"github.com/cmmoran/buildgen/internal/extract"
	"github.com/cmmoran/buildgen/internal/model"
	options "github.com/cmmoran/buildgen/pkg/parser"
)

type typeHandle struct {
	named *types.Named
}

func (h typeHandle) Key() string {
	obj := h.named.Obj()
	return obj.Pkg().Path() + "." + obj.Name()
}

// typesProvider implements extract.Provider over go/types. Accessibility is
// judged from the builder's package.
type typesProvider struct {
	mapper   typeMapper
	excludes []options.TagFilter
}

func newTypesProvider(builderPkg string, excludes []options.TagFilter) *typesProvider {
	return &typesProvider{mapper: typeMapper{local: builderPkg}, excludes: excludes}
}

func handleOf(named *types.Named) extract.Handle {
	return typeHandle{named: named.Origin()}
}

func (p *typesProvider) named(h extract.Handle) *types.Named {
	return h.(typeHandle).named
}

func (p *typesProvider) Describe(h extract.Handle) (extract.Identity, error) {
	n := p.named(h)
	obj := n.Obj()
	_, isIface := n.Underlying().(*types.Interface)
	_, isStruct := n.Underlying().(*types.Struct)
	return extract.Identity{
		PkgPath:    obj.Pkg().Path(),
		PkgName:    obj.Pkg().Name(),
		Name:       obj.Name(),
		IsAbstract: isIface,
		IsStruct:   isStruct,
		TypeParams: p.mapper.typeParams(n.TypeParams()),
	}, nil
}

func (p *typesProvider) accessible(obj types.Object) bool {
	return obj.Exported() || (obj.Pkg() != nil && obj.Pkg().Path() == p.mapper.local)
}

func (p *typesProvider) Members(h extract.Handle) ([]extract.Member, error) {
	n := p.named(h)
	var out []extract.Member
	if st, ok := n.Underlying().(*types.Struct); ok {
		for i := range st.NumFields() {
			f := st.Field(i)
			if omitField(st.Tag(i), p.excludes) {
				continue
			}
			out = append(out, extract.Member{
				Kind:     extract.MemberField,
				Symbol:   model.SymbolData{Name: f.Name(), Type: p.mapper.typeRef(f.Type())},
				Settable: p.accessible(f),
				Base:     f.Embedded() && embeddedStruct(f.Type()) != nil,
			})
		}
	}
	return append(out, p.funcs(n)...), nil
}

func (p *typesProvider) Bases(h extract.Handle) ([]extract.Handle, error) {
	st, ok := p.named(h).Underlying().(*types.Struct)
	if !ok {
		return nil, nil
	}
	var out []extract.Handle
	for i := range st.NumFields() {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}
		if base := embeddedStruct(f.Type()); base != nil {
			out = append(out, handleOf(base))
		}
	}
	return out, nil
}

// embeddedStruct returns the named struct a field embeds by value.
func embeddedStruct(t types.Type) *types.Named {
	n, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return nil
	}
	if _, ok := n.Underlying().(*types.Struct); !ok {
		return nil
	}
	return n
}

// funcs lists the package funcs whose first result is T or *T, optionally
// followed by an error, in source order.
func (p *typesProvider) funcs(n *types.Named) []extract.Member {
	obj := n.Obj()
	scope := obj.Pkg().Scope()
	var fns []*types.Func
	for _, name := range scope.Names() {
		fn, ok := scope.Lookup(name).(*types.Func)
		if !ok || !p.accessible(fn) {
			continue
		}
		fns = append(fns, fn)
	}
	slices.SortFunc(fns, func(a, b *types.Func) int { return int(a.Pos() - b.Pos()) })

	var out []extract.Member
	for _, fn := range fns {
		data, ok := p.constructorData(fn, n)
		if !ok {
			continue
		}
		kind := extract.MemberFactory
		if fn.Name() == "New" || strings.HasPrefix(fn.Name(), "New"+obj.Name()) {
			kind = extract.MemberConstructor
		}
		out = append(out, extract.Member{Kind: kind, Func: data})
	}
	return out
}

func (p *typesProvider) constructorData(fn *types.Func, target *types.Named) (model.ConstructorData, bool) {
	sig := fn.Type().(*types.Signature)
	res := sig.Results()
	if res.Len() == 0 || res.Len() > 2 {
		return model.ConstructorData{}, false
	}
	if res.Len() == 2 && !isError(res.At(1).Type()) {
		return model.ConstructorData{}, false
	}

	first := types.Unalias(res.At(0).Type())
	pointer := false
	if ptr, ok := first.(*types.Pointer); ok {
		first, pointer = types.Unalias(ptr.Elem()), true
	}
	named, ok := first.(*types.Named)
	if !ok || named.Origin() != target.Origin() {
		return model.ConstructorData{}, false
	}
	// generic funcs must share the target's parameters to be instantiated with them
	if sig.TypeParams().Len() != target.TypeParams().Len() {
		return model.ConstructorData{}, false
	}

	data := model.ConstructorData{
		Kind:         model.ConstructorObject,
		Name:         fn.Name(),
		Pointer:      pointer,
		ReturnsError: res.Len() == 2,
		Variadic:     sig.Variadic(),
		Generic:      sig.TypeParams().Len() > 0,
	}
	for i := range sig.Params().Len() {
		v := sig.Params().At(i)
		data.Params = append(data.Params, model.SymbolData{Name: v.Name(), Type: p.mapper.typeRef(v.Type())})
	}
	return data, true
}

func isError(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}
