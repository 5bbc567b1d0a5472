package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissing(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Version, m.Version)
	assert.Empty(t, m.Entries)
}

func TestRoundTripAndFresh(t *testing.T) {
	dir := t.TempDir()
	gen := filepath.Join(dir, "entitybuilder_gen.go")
	require.NoError(t, os.WriteFile(gen, []byte("package builders\n"), 0o644))

	m := &Manifest{}
	m.Record(Entry{Builder: "example.com/app/builders.ZooBuilder", Target: "models.Zoo", File: filepath.Join(dir, "gone.go"), Fingerprint: "aa"})
	m.Record(Entry{Builder: "example.com/app/builders.EntityBuilder", Target: "models.Entity", File: gen, Fingerprint: "old"})
	m.Record(Entry{Builder: "example.com/app/builders.EntityBuilder", Target: "models.Entity", File: gen, Fingerprint: "new"})
	require.Len(t, m.Entries, 2)

	path := filepath.Join(dir, "nested", ".buildgen.yaml")
	require.NoError(t, m.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded.Entries, 2)
	assert.Equal(t, "example.com/app/builders.EntityBuilder", loaded.Entries[0].Builder)

	assert.True(t, loaded.Fresh("example.com/app/builders.EntityBuilder", "new"))
	assert.False(t, loaded.Fresh("example.com/app/builders.EntityBuilder", "old"))
	// recorded, but the file was removed
	assert.False(t, loaded.Fresh("example.com/app/builders.ZooBuilder", "aa"))
	assert.False(t, loaded.Fresh("example.com/app/builders.Missing", "aa"))
}

func TestLoadOtherVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 99\nentries:\n  - builder: x\n"), 0o644))
	m, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, m.Entries)

	require.NoError(t, os.WriteFile(path, []byte(":\n\t- nope"), 0o644))
	_, err = Load(path)
	require.Error(t, err)
}
