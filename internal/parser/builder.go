package parser

import (
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/cmmoran/buildgen/internal/model"
)

// describeBuilder snapshots the hand-written half of builder name in pkg.
// Generated files are skipped so a stale <builder>_gen.go never counts as
// hand-written code. Declared is false when no type spec exists yet.
func describeBuilder(pkg *packages.Package, name string) model.BuilderDescriptor {
	b := model.BuilderDescriptor{
		PkgPath: pkg.PkgPath,
		PkgName: pkg.Name,
		Name:    name,
		Dir:     packageDir(pkg),
	}
	mapper := typeMapper{local: pkg.PkgPath}
	for _, file := range pkg.Syntax {
		if ast.IsGenerated(file) {
			continue
		}
		for _, decl := range file.Decls {
			switch decl := decl.(type) {
			case *ast.GenDecl:
				if decl.Tok != token.TYPE {
					continue
				}
				for _, spec := range decl.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok || ts.Name.Name != name {
						continue
					}
					b.Declared = true
					b.Position = pkg.Fset.Position(ts.Name.Pos())
					if st, ok := ts.Type.(*ast.StructType); ok {
						b.Fields = fieldData(st)
					}
					if tn, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName); ok {
						if named, ok := tn.Type().(*types.Named); ok {
							b.TypeParams = mapper.typeParams(named.TypeParams())
						}
					}
				}
			case *ast.FuncDecl:
				if m, ok := methodData(decl, name); ok {
					b.Methods = append(b.Methods, m)
				}
			}
		}
	}
	return b
}

func fieldData(st *ast.StructType) []model.FieldData {
	var out []model.FieldData
	for _, f := range st.Fields.List {
		typ := types.ExprString(f.Type)
		if len(f.Names) == 0 {
			out = append(out, model.FieldData{Name: embeddedName(f.Type), Type: typ, Embedded: true})
			continue
		}
		for _, id := range f.Names {
			out = append(out, model.FieldData{Name: id.Name, Type: typ})
		}
	}
	return out
}

// embeddedName is the implicit field name of an embedded type expression.
func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.IndexExpr:
		return embeddedName(t.X)
	case *ast.IndexListExpr:
		return embeddedName(t.X)
	}
	return ""
}

// methodData reports methods on builder (value or pointer receiver) and
// package funcs named New<builder>.
func methodData(fn *ast.FuncDecl, builder string) (model.MethodData, bool) {
	m := model.MethodData{Name: fn.Name.Name}
	switch {
	case fn.Recv != nil && len(fn.Recv.List) == 1:
		if receiverName(fn.Recv.List[0].Type) != builder {
			return m, false
		}
		m.Kind = model.MethodOrdinary
	case fn.Recv == nil && strings.HasPrefix(fn.Name.Name, "New"+builder):
		m.Kind = model.MethodConstructor
	default:
		return m, false
	}
	for _, p := range fn.Type.Params.List {
		n := max(len(p.Names), 1)
		if m.ParametersLength == 0 {
			m.FirstParameterTypeName = types.ExprString(p.Type)
		}
		m.ParametersLength += n
	}
	return m, true
}

func receiverName(expr ast.Expr) string {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	}
	return ""
}

func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) > 0 {
		return filepath.Dir(pkg.GoFiles[0])
	}
	return pkg.Dir
}
