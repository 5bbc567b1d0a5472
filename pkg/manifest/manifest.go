// Package manifest records the fingerprint of every generated builder so
// unchanged builders can be skipped on the next run.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const Version = 1

// Entry is one generated builder file.
type Entry struct {
	Builder     string `yaml:"builder" json:"builder"`
	Target      string `yaml:"target" json:"target"`
	File        string `yaml:"file" json:"file"`
	Fingerprint string `yaml:"fingerprint" json:"fingerprint"`
}

// Manifest is the on-disk fingerprint cache.
type Manifest struct {
	Version int     `yaml:"version" json:"version"`
	Entries []Entry `yaml:"entries" json:"entries"`
}

// Load reads a manifest from the provided path. If the file does not exist,
// or was written by another version, an empty manifest is returned.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{Version: Version}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	if m.Version != Version {
		return &Manifest{Version: Version}, nil
	}
	return &m, nil
}

// Save writes the manifest with entries sorted by builder.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}
	m.Version = Version
	slices.SortFunc(m.Entries, func(a, b Entry) int { return strings.Compare(a.Builder, b.Builder) })

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func (m *Manifest) Lookup(builder string) (Entry, bool) {
	for _, e := range m.Entries {
		if e.Builder == builder {
			return e, true
		}
	}
	return Entry{}, false
}

// Record adds e, replacing any entry for the same builder.
func (m *Manifest) Record(e Entry) {
	for i := range m.Entries {
		if m.Entries[i].Builder == e.Builder {
			m.Entries[i] = e
			return
		}
	}
	m.Entries = append(m.Entries, e)
}

// Fresh reports whether builder was last generated with fingerprint and its
// file is still on disk.
func (m *Manifest) Fresh(builder, fingerprint string) bool {
	e, ok := m.Lookup(builder)
	if !ok || e.Fingerprint != fingerprint {
		return false
	}
	_, err := os.Stat(e.File)
	return err == nil
}
