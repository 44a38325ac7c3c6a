// Package project knows the shape of a wren-managed application: where
// generated files live, which anchor lines they carry, and how project
// configuration is loaded.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Layout resolves generated-file paths inside a project root. All returned
// paths are relative to the root so they can double as manifest keys.
type Layout struct {
	Root string
}

// NewLayout returns a layout rooted at root.
func NewLayout(root string) *Layout {
	return &Layout{Root: root}
}

// ModelPath is the model file for a snake-case entity name.
func (l *Layout) ModelPath(snake string) string {
	return filepath.Join("internal", "models", snake+".go")
}

// HandlerPath is the HTTP handler file for an entity.
func (l *Layout) HandlerPath(snake string) string {
	return filepath.Join("internal", "handlers", snake+".go")
}

// RoutePath is the per-entity route registration file.
func (l *Layout) RoutePath(snake string) string {
	return filepath.Join("internal", "routes", snake+".go")
}

// RoutesAggregatorPath is the shared routes file mutated through markers.
func (l *Layout) RoutesAggregatorPath() string {
	return filepath.Join("internal", "routes", "routes.go")
}

// SeedRegistryPath is the seeder registry mutated through markers.
func (l *Layout) SeedRegistryPath() string {
	return filepath.Join("internal", "app", "seed.go")
}

// FormTemplatePath is the web form template for an entity.
func (l *Layout) FormTemplatePath(snake string) string {
	return filepath.Join("web", "templates", snake+"_form.gohtml")
}

// MigrationsDir is the SQL migrations directory.
func (l *Layout) MigrationsDir() string {
	return "migrations"
}

// MigrationPath is a timestamped SQL migration file, e.g.
// migrations/20260825120000_create_posts.sql.
func (l *Layout) MigrationPath(ts, name string) string {
	return filepath.Join(l.MigrationsDir(), ts+"_"+name+".sql")
}

// MigrationExists reports whether any migration for the given name is
// already on disk, regardless of its timestamp prefix. Regenerating an
// entity must not stack duplicate migrations.
func (l *Layout) MigrationExists(name string) bool {
	entries, err := os.ReadDir(l.Abs(l.MigrationsDir()))
	if err != nil {
		return false
	}
	suffix := "_" + name + ".sql"
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), suffix) {
			return true
		}
	}
	return false
}

// Abs joins a layout-relative path onto the project root.
func (l *Layout) Abs(rel string) string {
	return filepath.Join(l.Root, rel)
}

// EntityExists reports whether an entity's files are already on disk, judged
// by the presence of its model file.
func (l *Layout) EntityExists(snake string) bool {
	_, err := os.Stat(l.Abs(l.ModelPath(snake)))
	return err == nil
}

// EntityFiles returns the per-entity file set in generation order, keyed for
// marker pre-validation: model, handler, route.
func (l *Layout) EntityFiles(snake string) []string {
	return []string{
		l.ModelPath(snake),
		l.HandlerPath(snake),
		l.RoutePath(snake),
	}
}

// EntityMarkers maps an existing entity's files to the anchors each must
// carry, for pre-validation before cross-entity injection.
func (l *Layout) EntityMarkers(snake string) map[string][]string {
	return map[string][]string{
		l.Abs(l.ModelPath(snake)):   {MarkerRelations},
		l.Abs(l.HandlerPath(snake)): {MarkerRelationHandlers},
		l.Abs(l.RoutePath(snake)):   {MarkerRelationRoutes},
	}
}

// DiscoverEntities lists snake-case entity names that have model files on
// disk, sorted. The routes aggregator is not an entity.
func (l *Layout) DiscoverEntities() ([]string, error) {
	dir := l.Abs(filepath.Join("internal", "models"))
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading models directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".go"))
	}
	sort.Strings(names)
	return names, nil
}
