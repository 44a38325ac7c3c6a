// Package testutil drives a real wren project in a temp directory for
// end-to-end tests, calling the engine in-process the same way the CLI does:
// a fresh engine per command, manifest loaded and saved around each call.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wrenframe/wren"
	"github.com/wrenframe/wren/internal/engine"
	"github.com/wrenframe/wren/internal/project"
	"github.com/wrenframe/wren/internal/schema"
)

// TestProject is a scaffolded wren project under a temp dir.
type TestProject struct {
	Root string
	Name string
	t    *testing.T
}

// NewTestProject scaffolds a fresh project and returns a handle on it.
func NewTestProject(t *testing.T, name string) *TestProject {
	t.Helper()

	root := filepath.Join(t.TempDir(), name)
	_, err := engine.ScaffoldProject(root, name, "github.com/acme/"+name, "/api", wren.Version, false)
	require.NoError(t, err, "scaffolding test project")

	return &TestProject{Root: root, Name: name, t: t}
}

// Engine opens a fresh engine on the project, like each CLI invocation does.
func (p *TestProject) Engine() *engine.Engine {
	p.t.Helper()

	cfg, err := project.LoadConfig(p.Root)
	require.NoError(p.t, err)
	eng, err := engine.New(p.Root, cfg, wren.Version)
	require.NoError(p.t, err)
	return eng
}

// Generate parses field specs and generates the entity.
func (p *TestProject) Generate(name string, specs ...string) *engine.Report {
	p.t.Helper()

	def, err := schema.ParseEntity(name, specs)
	require.NoError(p.t, err)
	rep, err := p.Engine().GenerateEntity(def)
	require.NoError(p.t, err)
	return rep
}

// FileExists reports whether a project-relative path is on disk.
func (p *TestProject) FileExists(rel string) bool {
	p.t.Helper()
	_, err := os.Stat(filepath.Join(p.Root, rel))
	return err == nil
}

// ReadFile returns a project-relative file's content.
func (p *TestProject) ReadFile(rel string) string {
	p.t.Helper()
	content, err := os.ReadFile(filepath.Join(p.Root, rel))
	require.NoError(p.t, err)
	return string(content)
}

// WriteFile overwrites a project-relative file, simulating a user edit.
func (p *TestProject) WriteFile(rel, content string) {
	p.t.Helper()
	path := filepath.Join(p.Root, rel)
	require.NoError(p.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(p.t, os.WriteFile(path, []byte(content), 0644))
}

// Migrations lists migration filenames matching a suffix, e.g.
// "create_posts" matches 20260101000000_create_posts.sql.
func (p *TestProject) Migrations(suffix string) []string {
	p.t.Helper()

	entries, err := os.ReadDir(filepath.Join(p.Root, "migrations"))
	require.NoError(p.t, err)
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), "_"+suffix+".sql") {
			names = append(names, e.Name())
		}
	}
	return names
}
