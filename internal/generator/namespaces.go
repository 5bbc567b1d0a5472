package generator

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"path"
	"slices"
	"strconv"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/cmmoran/buildgen/internal/config"
	"github.com/cmmoran/buildgen/internal/entity"
	"github.com/cmmoran/buildgen/internal/naming"
)

// GenerateNamespaces lists every package the generated file may reference:
// the runtime helpers, the target package, member type packages, constraint
// packages, mocking packages when any member is mocked and fixture packages
// when a fixture is configured. The builder's own package is left out.
func GenerateNamespaces(p config.BuilderProperties, e *entity.Entity, mocking *config.MockingProperties, fixture *config.FixtureProperties) []string {
	seen := map[string]struct{}{entity.BuildkitPath: {}}
	add := func(paths ...string) {
		for _, p := range paths {
			if p != "" {
				seen[p] = struct{}{}
			}
		}
	}
	add(e.PkgPath)

	mocked := false
	for _, s := range members(p, e) {
		add(s.Type.Packages()...)
		mocked = mocked || s.IsMockable
	}
	add(e.AdditionalNamespaces...)
	if mocked {
		add(mocking.Namespaces()...)
	}
	if fixture != nil {
		add(fixture.Namespaces()...)
	}
	delete(seen, p.Builder.PkgPath)

	out := make([]string, 0, len(seen))
	for ns := range seen {
		out = append(out, ns)
	}
	slices.Sort(out)
	return out
}

// packageNames maps import paths to the package names generated code spells
// them with. Unknown paths fall back to naming.PackageName.
func packageNames(p config.BuilderProperties, e *entity.Entity, known map[string]string) map[string]string {
	names := map[string]string{entity.BuildkitPath: "buildkit"}
	if e.PkgPath != "" {
		names[e.PkgPath] = e.PkgName
	}
	for _, s := range members(p, e) {
		s.Type.PackageNames(names)
	}
	for _, tp := range e.TypeParams {
		tp.Constraint.PackageNames(names)
	}
	for k, v := range known {
		names[k] = v
	}
	delete(names, p.Builder.PkgPath)
	return names
}

func nameOf(importPath string, names map[string]string) string {
	if n, ok := names[importPath]; ok && n != "" {
		return n
	}
	return naming.PackageName(importPath)
}

// fixImports adds an import for every namespace the rendered source does not
// import yet, then drops the imports nothing references. Format snippets from
// mocking and fixture configuration refer to packages by name only, so the
// renderer cannot track them.
func fixImports(src []byte, namespaces []string, names map[string]string) ([]byte, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "", src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse rendered source: %w", err)
	}

	imported := make(map[string]bool, len(f.Imports))
	for _, spec := range f.Imports {
		p, _ := strconv.Unquote(spec.Path.Value)
		imported[p] = true
	}
	for _, ns := range namespaces {
		if imported[ns] {
			continue
		}
		if name := nameOf(ns, names); name != path.Base(ns) {
			astutil.AddNamedImport(fset, f, name, ns)
		} else {
			astutil.AddImport(fset, f, ns)
		}
	}

	for _, spec := range slices.Clone(f.Imports) {
		p, _ := strconv.Unquote(spec.Path.Value)
		specName, name := "", nameOf(p, names)
		if spec.Name != nil {
			specName, name = spec.Name.Name, spec.Name.Name
		}
		if name == "_" || name == "." || referencesPackage(f, name) {
			continue
		}
		astutil.DeleteNamedImport(fset, f, specName, p)
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, f); err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return buf.Bytes(), nil
}

func referencesPackage(f *ast.File, name string) bool {
	used := false
	ast.Inspect(f, func(n ast.Node) bool {
		if used {
			return false
		}
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if id, ok := sel.X.(*ast.Ident); ok && id.Name == name && id.Obj == nil {
				used = true
			}
		}
		return true
	})
	return used
}
