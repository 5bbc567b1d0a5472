// Package diff compares generated builder files on disk with what the current
// sources would render.
package diff

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/go-cmp/cmp"

	"github.com/cmmoran/buildgen/internal/diag"
	"github.com/cmmoran/buildgen/pkg/action/generate"
	options "github.com/cmmoran/buildgen/pkg/parser"
)

// FileDiff is one out-of-date builder file.
type FileDiff struct {
	Builder string
	File    string
	Missing bool
	// Diff is cmp.Diff output, on-disk (-) against rendered (+).
	Diff string
}

// Diff renders every builder and returns the files whose content would change.
// Builders that fail to render are reported through r and left out.
func Diff(ctx context.Context, opts *options.Options, r diag.Reporter) ([]FileDiff, error) {
	results, err := generate.Render(ctx, opts, r)
	if err != nil {
		return nil, err
	}

	var out []FileDiff
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		current, err := os.ReadFile(res.File)
		missing := errors.Is(err, os.ErrNotExist)
		if err != nil && !missing {
			return out, fmt.Errorf("read %s: %w", res.File, err)
		}
		if d := cmp.Diff(string(current), string(res.Source)); d != "" {
			out = append(out, FileDiff{Builder: res.Builder, File: res.File, Missing: missing, Diff: d})
		}
	}
	return out, nil
}
