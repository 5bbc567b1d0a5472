package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

const nilaway = "go.uber.org/nilaway"

var ErrNoModule = errors.New("no go.mod found")

// findGoModDir walks up from dir until it finds go.mod.
func findGoModDir(dir string) (string, error) {
	from, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err = os.Stat(filepath.Join(from, "go.mod")); err == nil {
			return from, nil
		}
		parent := filepath.Dir(from)
		if parent == from {
			return "", fmt.Errorf("%s: %w", dir, ErrNoModule)
		}
		from = parent
	}
}

func readModFile(modDir string) (*modfile.File, error) {
	path := filepath.Join(modDir, "go.mod")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	mf, err := modfile.Parse(path, data, nil)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return mf, nil
}

// nilCheckingActive reports whether the module enclosing dir opts into
// nilaway, either as a tool directive or a requirement.
func nilCheckingActive(dir string) (bool, error) {
	modDir, err := findGoModDir(dir)
	if err != nil {
		return false, err
	}
	mf, err := readModFile(modDir)
	if err != nil {
		return false, err
	}
	for _, t := range mf.Tool {
		if t.Path == nilaway || strings.HasPrefix(t.Path, nilaway+"/") {
			return true, nil
		}
	}
	for _, r := range mf.Require {
		if r.Mod.Path == nilaway {
			return true, nil
		}
	}
	return false, nil
}
