// Package scaffold renders the project skeleton `wren new` lays down. The
// same templates feed `wren update`: every mapping flagged updatable is
// re-rendered and classified against the manifest, while marker-managed and
// user-owned files are written once and never touched again.
package scaffold

import (
	"embed"
	"fmt"

	"github.com/wrenframe/wren/generator"
	"github.com/wrenframe/wren/internal/manifest"
	"github.com/wrenframe/wren/internal/update"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Mapping ties one template to its output path and manifest category.
type Mapping struct {
	Template  string
	Path      string
	Category  string
	Updatable bool
}

// Mappings lists the full scaffold set in write order. Marker-managed files
// (the routes aggregator and the seeder registry) and user-owned files
// (wren.yml, go.mod) are not updatable: regenerating them would wipe
// accumulated injections or user configuration.
func Mappings() []Mapping {
	return []Mapping{
		{"go.mod.tmpl", "go.mod", manifest.CategoryScaffold, false},
		{"wren.yml.tmpl", "wren.yml", manifest.CategoryScaffold, false},
		{"README.md.tmpl", "README.md", manifest.CategoryScaffold, true},
		{"env.example.tmpl", ".env.example", manifest.CategoryScaffold, true},
		{"Dockerfile.tmpl", "Dockerfile", manifest.CategoryScaffold, true},
		{"docker-compose.yml.tmpl", "docker-compose.yml", manifest.CategoryScaffold, true},
		{"dockerignore.tmpl", ".dockerignore", manifest.CategoryScaffold, true},
		{"ci.yml.tmpl", ".github/workflows/ci.yml", manifest.CategoryScaffold, true},
		{"main.go.tmpl", "cmd/server/main.go", manifest.CategoryScaffold, true},
		{"app.go.tmpl", "internal/app/app.go", manifest.CategoryScaffold, true},
		{"config.go.tmpl", "internal/app/config.go", manifest.CategoryScaffold, true},
		{"db.go.tmpl", "internal/app/db.go", manifest.CategoryScaffold, true},
		{"respond.go.tmpl", "internal/app/respond.go", manifest.CategoryScaffold, true},
		{"resource.go.tmpl", "internal/app/resource.go", manifest.CategoryScaffold, true},
		{"related.go.tmpl", "internal/app/related.go", manifest.CategoryScaffold, true},
		{"validate.go.tmpl", "internal/app/validate.go", manifest.CategoryScaffold, true},
		{"seed.go.tmpl", "internal/app/seed.go", manifest.CategoryMarker, false},
		{"routes.go.tmpl", "internal/routes/routes.go", manifest.CategoryMarker, false},
		{"relation.go.tmpl", "internal/models/relation.go", manifest.CategoryScaffold, true},
		{"migrations_readme.md.tmpl", "migrations/README.md", manifest.CategoryScaffold, true},
	}
}

// File is one rendered scaffold output.
type File struct {
	Path     string
	Template string
	Category string
	Content  []byte
}

// Generator renders the scaffold for one project.
type Generator struct {
	renderer *generator.Renderer
	data     templateData
}

type templateData struct {
	Name   string
	Module string
	Prefix string
}

// New creates a scaffold generator for a project.
func New(name, module, prefix string) *Generator {
	return &Generator{
		renderer: generator.NewRenderer(),
		data:     templateData{Name: name, Module: module, Prefix: prefix},
	}
}

// RenderAll renders the complete scaffold set for a fresh project.
func (g *Generator) RenderAll() ([]File, error) {
	var files []File
	for _, m := range Mappings() {
		content, err := g.render(m)
		if err != nil {
			return nil, err
		}
		files = append(files, File{
			Path:     m.Path,
			Template: m.Template,
			Category: m.Category,
			Content:  content,
		})
	}
	return files, nil
}

// RenderUpdatable re-renders only the updatable subset, in the form the
// update planner consumes.
func (g *Generator) RenderUpdatable() ([]update.RenderedFile, error) {
	var files []update.RenderedFile
	for _, m := range Mappings() {
		if !m.Updatable {
			continue
		}
		content, err := g.render(m)
		if err != nil {
			return nil, err
		}
		files = append(files, update.RenderedFile{
			Template: m.Template,
			Path:     m.Path,
			Content:  content,
		})
	}
	return files, nil
}

func (g *Generator) render(m Mapping) ([]byte, error) {
	content, err := g.renderer.RenderFS(templatesFS, "templates/"+m.Template, g.data)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", m.Template, err)
	}
	return content, nil
}
