// Package generate runs the whole pipeline: load, resolve, render, write.
package generate

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cmmoran/buildgen/internal/config"
	"github.com/cmmoran/buildgen/internal/diag"
	"github.com/cmmoran/buildgen/internal/entity"
	"github.com/cmmoran/buildgen/internal/generator"
	"github.com/cmmoran/buildgen/internal/parser"
	"github.com/cmmoran/buildgen/pkg/manifest"
	options "github.com/cmmoran/buildgen/pkg/parser"
)

// ErrFailed is returned when at least one builder could not be generated.
var ErrFailed = errors.New("some builders were not generated")

// Result is the outcome for one builder.
type Result struct {
	Builder     string
	Target      string
	File        string
	Fingerprint string
	Source      []byte
	// Skipped builders matched their manifest fingerprint and were not rendered.
	Skipped bool
	Written bool
	Err     error
}

// Render loads opts and renders every builder in memory. Configuration errors
// are reported as diagnostics and recorded on the result; the remaining
// builders still render.
func Render(ctx context.Context, opts *options.Options, r diag.Reporter) ([]Result, error) {
	return run(ctx, opts, r, nil)
}

// Generate renders every builder and writes the files that changed. Unless
// opts.Force is set, builders whose fingerprint matches the manifest are skipped.
func Generate(ctx context.Context, opts *options.Options, r diag.Reporter) ([]Result, error) {
	opts.Normalize()
	m := &manifest.Manifest{}
	if opts.Manifest != "" {
		var err error
		if m, err = manifest.Load(opts.Manifest); err != nil {
			return nil, err
		}
	}

	results, err := run(ctx, opts, r, m)
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("component", "generate")
	failed := 0
	for i := range results {
		res := &results[i]
		switch {
		case res.Err != nil:
			failed++
			continue
		case res.Skipped:
			logger.Debug("unchanged", "builder", res.Builder)
			continue
		case opts.DryRun:
			logger.Info("would write", "builder", res.Builder, "file", res.File)
			continue
		}
		if err = os.WriteFile(res.File, res.Source, 0o644); err != nil {
			return results, fmt.Errorf("write %s: %w", res.File, err)
		}
		res.Written = true
		m.Record(manifest.Entry{Builder: res.Builder, Target: res.Target, File: res.File, Fingerprint: res.Fingerprint})
		logger.Info("generated", "builder", res.Builder, "file", res.File)
	}

	if opts.Manifest != "" && !opts.DryRun {
		if err = m.Save(opts.Manifest); err != nil {
			return results, err
		}
	}
	if failed > 0 {
		return results, fmt.Errorf("%w: %d of %d", ErrFailed, failed, len(results))
	}
	return results, nil
}

// run renders each parsed job. A nil manifest disables skipping.
func run(ctx context.Context, opts *options.Options, r diag.Reporter, m *manifest.Manifest) ([]Result, error) {
	p, err := parser.NewWithOpts(opts)
	if err != nil {
		return nil, err
	}
	jobs, err := p.Parse(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(jobs))
	for _, job := range jobs {
		if err = ctx.Err(); err != nil {
			return results, err
		}
		res := Result{
			Builder: job.Builder.PkgPath + "." + job.Builder.Name,
			Target:  job.Target.FullName(),
			File:    filepath.Join(job.Builder.Dir, generator.FileName(job.Builder.Name)),
		}
		res.Fingerprint, err = job.Target.Fingerprint(job.Builder, job.Overrides, job.Defaults, job.Mocking, job.Fixture, job.NilChecking, generator.Header)
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}
		if m != nil && !opts.Force && job.Err == nil && m.Fresh(res.Builder, res.Fingerprint) {
			res.Skipped = true
			results = append(results, res)
			continue
		}
		res.Source, res.Err = render(job, r)
		results = append(results, res)
	}
	return results, nil
}

func render(job parser.Job, r diag.Reporter) ([]byte, error) {
	err := job.Err
	var props config.BuilderProperties
	if err == nil {
		props, err = config.Resolve(job.Builder, job.Overrides, job.Defaults, job.NilChecking)
	}
	if err != nil {
		r.Report(diag.New(diag.InvalidConfiguration, positionOf(err, job), job.Builder.Name, unwrapConfig(err)))
		return nil, err
	}

	e := entity.New(job.Target, job.Mocking, job.Fixture, props.NullableStrategy, props.StaticFactoryMethodName, job.Builder.PkgPath)
	src, diags, err := generator.Generate(generator.Input{
		Properties:   props,
		Entity:       e,
		Mocking:      job.Mocking,
		Fixture:      job.Fixture,
		PackageNames: job.PackageNames,
	})
	for _, d := range diags {
		r.Report(d)
	}
	return src, err
}

func positionOf(err error, job parser.Job) token.Position {
	var cfgErr *config.ConfigurationError
	if errors.As(err, &cfgErr) && cfgErr.Pos.IsValid() {
		return cfgErr.Pos
	}
	return job.Builder.Position
}

func unwrapConfig(err error) error {
	var cfgErr *config.ConfigurationError
	if errors.As(err, &cfgErr) {
		return cfgErr.Err
	}
	return err
}
