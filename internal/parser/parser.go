// Package parser loads Go packages, discovers //buildgen: directives and turns
// each builder directive into a Job ready for generation.
package parser

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"log/slog"
	"path"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/cmmoran/buildgen/internal/config"
	"github.com/cmmoran/buildgen/internal/directive"
	"github.com/cmmoran/buildgen/internal/extract"
	"github.com/cmmoran/buildgen/internal/model"
	options "github.com/cmmoran/buildgen/pkg/parser"
)

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
	packages.NeedTypes | packages.NeedTypesInfo | packages.NeedImports

var (
	ErrNoTarget       = errors.New("builder directive needs target=")
	ErrNoBuilderName  = errors.New("builder directive must sit on a type or carry name=")
	ErrTargetNotFound = errors.New("target type not found")
	ErrNotNamed       = errors.New("target is not a named type")
)

// Job is everything needed to generate one builder. Err carries a
// *config.ConfigurationError when the builder cannot be generated.
type Job struct {
	Builder   model.BuilderDescriptor
	Target    model.TypeDescriptor
	Overrides config.BuilderOverrides
	// Defaults is the compile-unit tier: package directive over config file.
	Defaults     *config.BuilderOverrides
	Mocking      *config.MockingProperties
	Fixture      *config.FixtureProperties
	NilChecking  bool
	PackageNames map[string]string
	Err          error
}

// Parser holds state/results of a parse run.
type Parser struct {
	Opts options.Options

	logger *slog.Logger
	fset   *token.FileSet
	// index maps import path to every package the type checker has seen.
	index map[string]*types.Package
}

// New builds a Parser from functional options.
func New(opts ...options.Option) (*Parser, error) {
	o := options.NewOptions()
	for _, fn := range opts {
		fn(o)
	}
	return NewWithOpts(o)
}

func NewWithOpts(opts *options.Options) (*Parser, error) {
	opts.Normalize()
	return &Parser{
		Opts:   *opts,
		logger: slog.Default().With("component", "parser"),
		fset:   token.NewFileSet(),
		index:  make(map[string]*types.Package),
	}, nil
}

// request is a builder directive waiting for its target to be loaded.
type request struct {
	pkg       *packages.Package
	name      string
	target    string
	targetPkg string
	pos       token.Position
	overrides config.BuilderOverrides
	mocking   *config.MockingProperties
	fixture   *config.FixtureProperties
	err       error
}

// unit is the package-level configuration of one builder package.
type unit struct {
	defaults *config.BuilderOverrides
	mocking  *config.MockingProperties
	fixture  *config.FixtureProperties
	err      error
}

// Parse loads the configured patterns and returns one Job per builder
// directive, ordered by package path and builder name.
func (p *Parser) Parse(ctx context.Context) ([]Job, error) {
	pkgs, err := p.load(ctx, p.Opts.Patterns...)
	if err != nil {
		return nil, err
	}

	nilChecking := false
	if p.Opts.NilChecking != nil {
		nilChecking = *p.Opts.NilChecking
	} else if nilChecking, err = nilCheckingActive(p.Opts.Dir); err != nil {
		p.logger.Warn("unable to detect nil checking", "error", err)
	}

	fileDefaults, err := p.Opts.Defaults.Overrides()
	if err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	globalMocking, err := p.Opts.Mocking.Properties()
	if err != nil {
		return nil, fmt.Errorf("config mocking: %w", err)
	}
	globalFixture, err := p.Opts.Fixture.Properties()
	if err != nil {
		return nil, fmt.Errorf("config fixture: %w", err)
	}

	var (
		requests []request
		units    = make(map[string]unit)
	)
	for _, pkg := range pkgs {
		reqs, u := p.discover(pkg)
		if len(reqs) == 0 {
			continue
		}
		u.defaults = layer(u.defaults, fileDefaults)
		u.mocking = config.ResolveMocking(globalMocking, u.mocking)
		u.fixture = config.ResolveFixture(globalFixture, u.fixture)
		units[pkg.PkgPath] = u
		requests = append(requests, reqs...)
	}

	if err = p.loadMissing(ctx, requests); err != nil {
		return nil, err
	}

	jobs := make([]Job, 0, len(requests))
	for _, r := range requests {
		u := units[r.pkg.PkgPath]
		job := Job{
			Builder:      describeBuilder(r.pkg, r.name),
			Overrides:    r.overrides,
			Defaults:     u.defaults,
			Mocking:      config.ResolveMocking(u.mocking, r.mocking),
			Fixture:      config.ResolveFixture(u.fixture, r.fixture),
			NilChecking:  nilChecking,
			PackageNames: p.packageNames(),
		}
		if job.Builder.Position.Filename == "" {
			job.Builder.Position = r.pos
		}
		switch {
		case r.err != nil:
			job.Err = configError(r, r.err)
		case u.err != nil:
			job.Err = configError(r, u.err)
		default:
			job.Target, err = p.describeTarget(r)
			if err != nil {
				job.Err = configError(r, err)
			}
		}
		jobs = append(jobs, job)
	}
	slices.SortStableFunc(jobs, func(a, b Job) int {
		if c := strings.Compare(a.Builder.PkgPath, b.Builder.PkgPath); c != 0 {
			return c
		}
		return strings.Compare(a.Builder.Name, b.Builder.Name)
	})
	p.logger.Debug("parsed", "packages", len(pkgs), "builders", len(jobs))
	return jobs, nil
}

func configError(r request, err error) error {
	var cfgErr *config.ConfigurationError
	if errors.As(err, &cfgErr) {
		return err
	}
	return &config.ConfigurationError{Builder: r.name, Pos: r.pos, Err: err}
}

func layer(top *config.BuilderOverrides, base config.BuilderOverrides) *config.BuilderOverrides {
	if top == nil {
		return &base
	}
	merged := top.Over(base)
	return &merged
}

func (p *Parser) load(ctx context.Context, patterns ...string) ([]*packages.Package, error) {
	pkgs, err := packages.Load(&packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     p.Opts.Dir,
		Fset:    p.fset,
		Tests:   false,
	}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", strings.Join(patterns, " "), err)
	}
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			// stale generated files commonly fail to type check
			p.logger.Debug("package error", "package", pkg.PkgPath, "error", e.Msg)
		}
		if pkg.Types != nil {
			p.register(pkg.Types)
		}
	}
	return pkgs, nil
}

func (p *Parser) register(pkg *types.Package) {
	if _, ok := p.index[pkg.Path()]; ok {
		return
	}
	p.index[pkg.Path()] = pkg
	for _, imp := range pkg.Imports() {
		p.register(imp)
	}
}

// loadMissing loads target packages the builder packages do not import.
func (p *Parser) loadMissing(ctx context.Context, requests []request) error {
	var missing []string
	for _, r := range requests {
		if r.err != nil || r.targetPkg == "" {
			continue
		}
		if _, ok := p.index[r.targetPkg]; !ok && !slices.Contains(missing, r.targetPkg) {
			missing = append(missing, r.targetPkg)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	_, err := p.load(ctx, missing...)
	return err
}

func (p *Parser) packageNames() map[string]string {
	out := make(map[string]string, len(p.index))
	for path, pkg := range p.index {
		out[path] = pkg.Name()
	}
	return out
}

func (p *Parser) describeTarget(r request) (model.TypeDescriptor, error) {
	pkg, ok := p.index[r.targetPkg]
	if !ok {
		return model.TypeDescriptor{}, fmt.Errorf("%w: %s", ErrTargetNotFound, r.target)
	}
	tn, ok := pkg.Scope().Lookup(r.target).(*types.TypeName)
	if !ok {
		return model.TypeDescriptor{}, fmt.Errorf("%w: %s.%s", ErrTargetNotFound, r.targetPkg, r.target)
	}
	named, ok := types.Unalias(tn.Type()).(*types.Named)
	if !ok {
		return model.TypeDescriptor{}, fmt.Errorf("%w: %s.%s", ErrNotNamed, r.targetPkg, r.target)
	}
	return extract.Extract(newTypesProvider(r.pkg.PkgPath, p.Opts.ExcludeByTags), handleOf(named))
}

// discover scans the hand-written files of pkg for directives. A mocking or
// fixture directive sharing a comment group with a builder directive applies
// to that builder only; elsewhere it applies to the whole package.
func (p *Parser) discover(pkg *packages.Package) ([]request, unit) {
	var (
		reqs []request
		u    unit
	)
	for _, file := range pkg.Syntax {
		if ast.IsGenerated(file) {
			continue
		}
		docs := typeDocs(file)
		for _, cg := range file.Comments {
			var (
				builders []*request
				mocking  *config.MockingProperties
				fixture  *config.FixtureProperties
				localErr error
			)
			for _, c := range cg.List {
				if !directive.Is(c.Text) {
					continue
				}
				pos := p.fset.Position(c.Pos())
				d, err := directive.Parse(c.Text)
				if err != nil {
					if errors.Is(err, directive.ErrUnknownKind) {
						p.logger.Warn("ignoring directive", "pos", pos.String(), "error", err)
					} else {
						localErr = errors.Join(localErr, fmt.Errorf("%s: %w", pos, err))
					}
					continue
				}
				switch d.Kind {
				case directive.KindBuilder:
					r := p.builderRequest(pkg, file, d, docs[cg], pos)
					builders = append(builders, &r)
				case directive.KindDefaults:
					o, err := d.Builder()
					if err == nil {
						var ov config.BuilderOverrides
						if ov, err = o.Overrides(); err == nil {
							u.defaults = layer(&ov, derefOr(u.defaults))
						}
					}
					u.err = errors.Join(u.err, err)
				case directive.KindMocking:
					o, err := d.Mocking()
					if err == nil {
						mocking, err = o.Properties()
					}
					localErr = errors.Join(localErr, err)
				case directive.KindFixture:
					o, err := d.Fixture()
					if err == nil {
						fixture, err = o.Properties()
					}
					localErr = errors.Join(localErr, err)
				}
			}
			if len(builders) == 0 {
				if mocking != nil {
					u.mocking = mocking
				}
				if fixture != nil {
					u.fixture = fixture
				}
				u.err = errors.Join(u.err, localErr)
				continue
			}
			for _, r := range builders {
				r.mocking, r.fixture = mocking, fixture
				r.err = errors.Join(r.err, localErr)
				reqs = append(reqs, *r)
			}
		}
	}
	return reqs, u
}

func derefOr(o *config.BuilderOverrides) config.BuilderOverrides {
	if o == nil {
		return config.BuilderOverrides{}
	}
	return *o
}

func (p *Parser) builderRequest(pkg *packages.Package, file *ast.File, d *directive.Directive, docType string, pos token.Position) request {
	r := request{pkg: pkg, name: docType, pos: pos}
	o, err := d.Builder()
	if err != nil {
		r.err = err
		return r
	}
	if o.Name != "" {
		r.name = o.Name
	}
	if r.name == "" {
		r.err = ErrNoBuilderName
		return r
	}
	if r.overrides, err = o.Overrides(); err != nil {
		r.err = err
		return r
	}
	target := strings.TrimSpace(o.Target)
	if target == "" {
		r.err = ErrNoTarget
		return r
	}
	r.targetPkg, r.target = splitTarget(target, pkg.PkgPath, file)
	return r
}

// splitTarget resolves "Entity", "models.Entity" (an import of file) or
// "example.com/app/models.Entity" into a package path and type name.
func splitTarget(target, local string, file *ast.File) (string, string) {
	i := strings.LastIndex(target, ".")
	if i < 0 {
		return local, target
	}
	qual, name := target[:i], target[i+1:]
	if strings.Contains(qual, "/") {
		return qual, name
	}
	for _, imp := range file.Imports {
		ipath, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		if (imp.Name != nil && imp.Name.Name == qual) || (imp.Name == nil && path.Base(ipath) == qual) {
			return ipath, name
		}
	}
	return qual, name
}

// typeDocs maps doc comment groups to the single type they document.
func typeDocs(file *ast.File) map[*ast.CommentGroup]string {
	out := make(map[*ast.CommentGroup]string)
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			if ts.Doc != nil {
				out[ts.Doc] = ts.Name.Name
			}
		}
		if gen.Doc != nil && len(gen.Specs) == 1 {
			out[gen.Doc] = gen.Specs[0].(*ast.TypeSpec).Name.Name
		}
	}
	return out
}
