package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte("hello"))
	b := Fingerprint([]byte("hello"))
	c := Fingerprint([]byte("hello!"))

	assert.Equal(t, a, b, "identical content must fingerprint identically")
	assert.NotEqual(t, a, c, "a single-byte change must change the fingerprint")
	assert.True(t, strings.HasPrefix(a, "sha256:"))
	assert.Len(t, strings.TrimPrefix(a, "sha256:"), 64)
}

func TestRecordAndLookup(t *testing.T) {
	m := New(t.TempDir(), "myapp", "0.3.0")

	rec := m.Record("internal/models/post.go", []byte("package models\n"),
		CategoryEntity, "Post", "model.go.tmpl", "0.3.0")

	assert.Equal(t, Fingerprint([]byte("package models\n")), rec.Fingerprint)
	assert.Equal(t, "Post", rec.Entity)
	assert.Equal(t, "0.3.0", rec.GeneratedBy)

	got, ok := m.Lookup("internal/models/post.go")
	require.True(t, ok)
	assert.Equal(t, rec, got)

	_, ok = m.Lookup("internal/models/user.go")
	assert.False(t, ok)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	m := New(root, "myapp", "0.3.0")
	m.Record("Dockerfile", []byte("FROM golang:1.25\n"), CategoryScaffold, "", "Dockerfile.tmpl", "0.3.0")

	require.NoError(t, m.Save())

	loaded, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "myapp", loaded.ProjectName)
	rec, ok := loaded.Lookup("Dockerfile")
	require.True(t, ok)
	assert.Equal(t, Fingerprint([]byte("FROM golang:1.25\n")), rec.Fingerprint)
	assert.Equal(t, CategoryScaffold, rec.Category)
}

func TestLoadMissingManifest(t *testing.T) {
	m, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, m.Files)
}

func TestInitBaseline(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Dockerfile"), []byte("FROM scratch\n"), 0644))

	m := New(root, "legacy", "0.3.0")
	count, err := m.InitBaseline([]string{"Dockerfile", "missing.yml"}, CategoryScaffold, "0.3.0")
	require.NoError(t, err)

	assert.Equal(t, 1, count, "missing files are skipped, not recorded")
	rec, ok := m.Lookup("Dockerfile")
	require.True(t, ok)
	assert.Equal(t, Fingerprint([]byte("FROM scratch\n")), rec.Fingerprint)
	_, ok = m.Lookup("missing.yml")
	assert.False(t, ok)

	// Baselining never modifies the files themselves
	content, err := os.ReadFile(filepath.Join(root, "Dockerfile"))
	require.NoError(t, err)
	assert.Equal(t, "FROM scratch\n", string(content))
}

func TestUserModified(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "Dockerfile")
	require.NoError(t, os.WriteFile(path, []byte("FROM golang:1.25\n"), 0644))

	m := New(root, "myapp", "0.3.0")
	m.Record("Dockerfile", []byte("FROM golang:1.25\n"), CategoryScaffold, "", "", "0.3.0")

	modified, exists := m.UserModified("Dockerfile")
	assert.True(t, exists)
	assert.False(t, modified)

	require.NoError(t, os.WriteFile(path, []byte("FROM golang:1.25\nRUN true\n"), 0644))
	modified, exists = m.UserModified("Dockerfile")
	assert.True(t, exists)
	assert.True(t, modified)

	require.NoError(t, os.Remove(path))
	_, exists = m.UserModified("Dockerfile")
	assert.False(t, exists)
}

func TestForget(t *testing.T) {
	m := New(t.TempDir(), "myapp", "0.3.0")
	m.Record("README.md", []byte("# myapp\n"), CategoryScaffold, "", "", "0.3.0")

	m.Forget("README.md")
	_, ok := m.Lookup("README.md")
	assert.False(t, ok)
}
