// Package entity renders the per-entity file set: model, handler, routes,
// migration, and form template, plus junction files for many-to-many links.
// Rendering is pure; writing files and splicing markers is the engine's job.
package entity

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/wrenframe/wren/generator"
	"github.com/wrenframe/wren/internal/manifest"
	"github.com/wrenframe/wren/internal/project"
	"github.com/wrenframe/wren/internal/relations"
	"github.com/wrenframe/wren/internal/schema"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// File is one rendered output, addressed relative to the project root so the
// path can double as a manifest key.
type File struct {
	Path     string
	Template string
	Category string
	Entity   string
	Content  []byte
}

// Generator renders entity files for one project.
type Generator struct {
	renderer *generator.Renderer
	layout   *project.Layout
	module   string
	prefix   string
}

// New creates an entity generator for the project described by cfg.
func New(layout *project.Layout, cfg *project.Config) *Generator {
	r := generator.NewRenderer()
	// Form templates emit text/template actions themselves; curly wraps a
	// string in literal braces so the output stays renderable.
	r.Funcs(map[string]any{
		"curly": func(s string) string { return "{{" + s + "}}" },
	})
	return &Generator{
		renderer: r,
		layout:   layout,
		module:   cfg.Module,
		prefix:   cfg.APIPrefix,
	}
}

// Render produces the full file set for one entity. migrationTS is the
// timestamp prefix for the migration filename; the caller owns the clock so
// a run generating several entities gets strictly increasing prefixes.
func (g *Generator) Render(def *schema.EntityDefinition, migrationTS string) ([]File, error) {
	snake := def.SnakeName()

	type spec struct {
		template string
		path     string
		category string
		data     any
	}
	specs := []spec{
		{"model.go.tmpl", g.layout.ModelPath(snake), manifest.CategoryEntity, g.modelData(def)},
		{"handler.go.tmpl", g.layout.HandlerPath(snake), manifest.CategoryEntity, g.handlerData(def)},
		{"routes.go.tmpl", g.layout.RoutePath(snake), manifest.CategoryEntity, g.routesData(def)},
		{"migration.sql.tmpl", g.layout.MigrationPath(migrationTS, "create_"+def.TableName()), manifest.CategoryEntity, g.migrationData(def)},
		{"form.gohtml.tmpl", g.layout.FormTemplatePath(snake), manifest.CategoryEntity, g.formData(def)},
	}

	var files []File
	for _, s := range specs {
		content, err := g.renderer.RenderFS(templatesFS, "templates/"+s.template, s.data)
		if err != nil {
			return nil, fmt.Errorf("rendering %s for %s: %w", s.template, def.Name, err)
		}
		files = append(files, File{
			Path:     s.path,
			Template: s.template,
			Category: s.category,
			Entity:   snake,
			Content:  content,
		})
	}
	return files, nil
}

// RenderJunction produces the junction model and migration for a
// many-to-many pair. Argument order does not matter; the junction is named
// from the alphabetically ordered snake-case pair.
func (g *Generator) RenderJunction(a, b, migrationTS string) ([]File, error) {
	name := relations.JunctionName(a, b)
	table := relations.JunctionTableName(a, b)
	first, second := orderedPair(a, b)

	data := junctionData{
		Type:        generator.PascalCase(name),
		Table:       table,
		A:           generator.PascalCase(first),
		B:           generator.PascalCase(second),
		ACol:        generator.SnakeCase(first) + "_id",
		BCol:        generator.SnakeCase(second) + "_id",
		ATable:      generator.Pluralize(generator.SnakeCase(first)),
		BTable:      generator.Pluralize(generator.SnakeCase(second)),
		SourceSnake: generator.SnakeCase(first),
		TargetSnake: generator.SnakeCase(second),
	}

	model, err := g.renderer.RenderFS(templatesFS, "templates/junction_model.go.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("rendering junction model %s: %w", name, err)
	}
	migration, err := g.renderer.RenderFS(templatesFS, "templates/junction_migration.sql.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("rendering junction migration %s: %w", name, err)
	}

	return []File{
		{
			Path:     g.layout.ModelPath(name),
			Template: "junction_model.go.tmpl",
			Category: manifest.CategoryEntity,
			Entity:   name,
			Content:  model,
		},
		{
			Path:     g.layout.MigrationPath(migrationTS, "create_"+table),
			Template: "junction_migration.sql.tmpl",
			Category: manifest.CategoryEntity,
			Entity:   name,
			Content:  migration,
		},
	}, nil
}

func orderedPair(a, b string) (string, string) {
	if generator.SnakeCase(a) <= generator.SnakeCase(b) {
		return a, b
	}
	return b, a
}

// --- template view data ---

type modelData struct {
	Entity  string
	Table   string
	StdImps []string
	ExtImps []string
	Fields  []modelField
}

type modelField struct {
	Name string
	Type string
	Col  string
}

func (g *Generator) modelData(def *schema.EntityDefinition) modelData {
	std := map[string]bool{"time": true}
	ext := map[string]bool{"github.com/google/uuid": true}

	var fields []modelField
	for _, f := range def.Fields {
		goType := f.Type.GoType()
		switch f.Type.Kind {
		case schema.KindDecimal:
			ext["github.com/shopspring/decimal"] = true
		case schema.KindJSON:
			std["encoding/json"] = true
		}
		if f.Optional && f.Type.Kind != schema.KindJSON {
			goType = "*" + goType
		}
		fields = append(fields, modelField{
			Name: generator.PascalCase(f.Name),
			Type: goType,
			Col:  generator.SnakeCase(f.Name),
		})
	}

	return modelData{
		Entity:  def.PascalName(),
		Table:   def.TableName(),
		StdImps: sortedKeys(std),
		ExtImps: sortedKeys(ext),
		Fields:  fields,
	}
}

type handlerData struct {
	Module string
	Entity string
	Camel  string
	Snake  string
	Table  string
	Plural string

	Columns []string
	Search  []searchColumn
	Rules   []fieldRules
	Access  []fieldAccess
}

type searchColumn struct {
	Column string
	Op     string
}

type fieldRules struct {
	Column string
	Rules  []string
}

type fieldAccess struct {
	Column string
	Level  string
}

func (g *Generator) handlerData(def *schema.EntityDefinition) handlerData {
	d := handlerData{
		Module: g.module,
		Entity: def.PascalName(),
		Camel:  def.CamelName(),
		Snake:  def.SnakeName(),
		Table:  def.TableName(),
		Plural: generator.Pluralize(def.SnakeName()),
	}

	for _, f := range def.Fields {
		col := generator.SnakeCase(f.Name)
		d.Columns = append(d.Columns, col)

		if f.Searchable {
			if op := f.Type.FilterMethod(); op != "" {
				d.Search = append(d.Search, searchColumn{Column: col, Op: op})
			}
		}
		if rules := encodeRules(f.Rules); len(rules) > 0 {
			d.Rules = append(d.Rules, fieldRules{Column: col, Rules: rules})
		}
		if level := encodeAccess(f.Visibility); level != "" {
			d.Access = append(d.Access, fieldAccess{Column: col, Level: level})
		}
	}
	return d
}

// encodeRules flattens parsed validation rules into the string form the
// generated app's validator understands.
func encodeRules(rules []schema.ValidationRule) []string {
	var out []string
	for _, r := range rules {
		switch r.Kind {
		case schema.RuleMin:
			out = append(out, fmt.Sprintf("min=%d", r.Limit))
		case schema.RuleMax:
			out = append(out, fmt.Sprintf("max=%d", r.Limit))
		case schema.RuleEmail:
			out = append(out, "email")
		case schema.RuleURL:
			out = append(out, "url")
		case schema.RuleRegex:
			out = append(out, "regex="+r.Pattern)
		case schema.RuleRequired:
			out = append(out, "required")
		case schema.RuleUnique:
			out = append(out, "unique")
		}
	}
	return out
}

func encodeAccess(v schema.Visibility) string {
	switch v.Kind {
	case schema.Authenticated:
		return "authenticated"
	case schema.AdminOnly:
		return "admin_only"
	case schema.RoleSet:
		return "roles:" + strings.Join(v.Roles, ",")
	}
	return ""
}

type routesData struct {
	Module string
	Entity string
	Snake  string
	Plural string
	Prefix string
}

func (g *Generator) routesData(def *schema.EntityDefinition) routesData {
	return routesData{
		Module: g.module,
		Entity: def.PascalName(),
		Snake:  def.SnakeName(),
		Plural: generator.Pluralize(def.SnakeName()),
		Prefix: g.prefix,
	}
}

type migrationData struct {
	Table   string
	Columns []string
	Indexes []string
}

func (g *Generator) migrationData(def *schema.EntityDefinition) migrationData {
	d := migrationData{Table: def.TableName()}

	for _, f := range def.Fields {
		col := generator.SnakeCase(f.Name)
		def_ := col + " " + f.Type.SQLType()
		if !f.Optional {
			def_ += " NOT NULL"
		}
		if hasRule(f.Rules, schema.RuleUnique) {
			def_ += " UNIQUE"
		}
		if f.Relation != "" {
			target := generator.Pluralize(generator.SnakeCase(f.Relation))
			def_ += fmt.Sprintf(" REFERENCES %s(id) ON DELETE CASCADE", target)
			d.Indexes = append(d.Indexes, indexStmt(d.Table, col))
		}
		d.Columns = append(d.Columns, def_)

		if f.Searchable && f.Relation == "" {
			d.Indexes = append(d.Indexes, indexStmt(d.Table, col))
		}
	}
	return d
}

func indexStmt(table, col string) string {
	return fmt.Sprintf("CREATE INDEX idx_%s_%s ON %s (%s);", table, col, table, col)
}

func hasRule(rules []schema.ValidationRule, kind schema.RuleKind) bool {
	for _, r := range rules {
		if r.Kind == kind {
			return true
		}
	}
	return false
}

type formData struct {
	Entity string
	Snake  string
	Plural string
	Prefix string
	Fields []formField
}

type formField struct {
	Name     string
	Label    string
	Control  string
	Input    string
	Required bool
	Variants []string
}

func (g *Generator) formData(def *schema.EntityDefinition) formData {
	d := formData{
		Entity: def.PascalName(),
		Snake:  def.SnakeName(),
		Plural: generator.Pluralize(def.SnakeName()),
		Prefix: g.prefix,
	}
	for _, f := range def.Fields {
		col := generator.SnakeCase(f.Name)
		d.Fields = append(d.Fields, formField{
			Name:     col,
			Label:    generator.Title(strings.ReplaceAll(col, "_", " ")),
			Control:  f.Type.ControlKind(),
			Input:    f.Type.InputType(),
			Required: !f.Optional,
			Variants: f.Type.Variants,
		})
	}
	return d
}

type junctionData struct {
	Type        string
	Table       string
	A, B        string
	ACol, BCol  string
	ATable      string
	BTable      string
	SourceSnake string
	TargetSnake string
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
