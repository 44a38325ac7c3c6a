package entity

import (
	"fmt"
	"strings"

	"github.com/wrenframe/wren/generator"
	"github.com/wrenframe/wren/internal/project"
	"github.com/wrenframe/wren/internal/relations"
)

// Injection is one block destined for a marker in an existing file. Guard,
// when set, is a substring whose presence means the block (possibly an older
// rendering of it) is already there and the splice must be skipped.
type Injection struct {
	Path   string // project-relative target file
	Marker string
	Block  string
	Guard  string
	Desc   string
}

// RouteRegistration hooks an entity's route file into the aggregator.
func (g *Generator) RouteRegistration(entitySnake string) Injection {
	pascal := generator.PascalCase(entitySnake)
	return Injection{
		Path:   g.layout.RoutesAggregatorPath(),
		Marker: project.MarkerRoutes,
		Block:  fmt.Sprintf("\tRegister%sRoutes(mux, a)", pascal),
		Desc:   fmt.Sprintf("route registration for %s", entitySnake),
	}
}

// SeedEntry registers a sample-row seeder for the entity's table.
func (g *Generator) SeedEntry(entitySnake string) Injection {
	table := generator.Pluralize(entitySnake)
	return Injection{
		Path:   g.layout.SeedRegistryPath(),
		Marker: project.MarkerSeeds,
		Block: fmt.Sprintf("\t{Name: %q, SQL: %q},",
			table,
			fmt.Sprintf("INSERT INTO %s (id) VALUES (gen_random_uuid()) ON CONFLICT DO NOTHING", table)),
		Guard: fmt.Sprintf("{Name: %q,", table),
		Desc:  fmt.Sprintf("seeder for %s", table),
	}
}

// HasManyDeclaration builds the lone model-side injection for an explicit
// has_many declaration: the relation variable, nothing else. Handler and
// route arrive later, when the child entity declares its foreign key — the
// child may not even exist yet. Returns ok=false for a self-reference.
func (g *Generator) HasManyDeclaration(parentSnake, childSnake, fkColumn string) (Injection, bool) {
	if parentSnake == childSnake {
		return Injection{}, false
	}
	return g.hasManyDecl(parentSnake, childSnake, fkColumn), true
}

func (g *Generator) hasManyDecl(parentSnake, childSnake, fkColumn string) Injection {
	parent := generator.PascalCase(parentSnake)
	childTable := generator.Pluralize(childSnake)
	declName := parent + generator.PascalCase(childTable)
	return Injection{
		Path:   g.layout.ModelPath(parentSnake),
		Marker: project.MarkerRelations,
		Block: fmt.Sprintf(
			"// %s is the reverse side of %s.%s.\nvar %s = Relation{Kind: \"has_many\", Table: %q, FK: %q}\n",
			declName, childTable, fkColumn, declName, childTable, fkColumn),
		Guard: fmt.Sprintf("var %s ", declName),
		Desc:  fmt.Sprintf("relation %s on %s", declName, parentSnake),
	}
}

// ReverseHasMany builds the injections that surface a child's belongs-to on
// the parent side: a relation declaration in the parent model, a list
// handler, and a nested route. Self-referential foreign keys get no reverse
// side. When the foreign key is not named after the parent (say sender_id on
// a message pointing at users), the handler and route names carry the key's
// base so two keys into the same parent cannot collide.
func (g *Generator) ReverseHasMany(parentSnake, childSnake, fkColumn string) []Injection {
	if parentSnake == childSnake {
		return nil
	}

	parent := generator.PascalCase(parentSnake)
	childTable := generator.Pluralize(childSnake)
	childPluralPascal := generator.PascalCase(childTable)
	fkBase := strings.TrimSuffix(fkColumn, "_id")

	handlerName := parent + "List" + childPluralPascal
	urlSuffix := childTable
	if fkBase != parentSnake {
		handlerName += "By" + generator.PascalCase(fkBase)
		urlSuffix = childTable + "-by-" + strings.ReplaceAll(fkBase, "_", "-")
	}

	model := g.hasManyDecl(parentSnake, childSnake, fkColumn)

	handler := Injection{
		Path:   g.layout.HandlerPath(parentSnake),
		Marker: project.MarkerRelationHandlers,
		Block: fmt.Sprintf(
			"// %s lists %s rows referencing the %s through %s.%s.\nfunc %s(a *app.App) http.HandlerFunc {\n\treturn a.ListRelated(%q, %q)\n}\n",
			handlerName, childTable, parentSnake, childTable, fkColumn,
			handlerName, childTable, fkColumn),
		Guard: fmt.Sprintf("func %s(", handlerName),
		Desc:  fmt.Sprintf("handler %s on %s", handlerName, parentSnake),
	}

	route := Injection{
		Path:   g.layout.RoutePath(parentSnake),
		Marker: project.MarkerRelationRoutes,
		Block: fmt.Sprintf("\tmux.Handle(\"GET %s/%s/{id}/%s\", handlers.%s(a))",
			g.prefix, generator.Pluralize(parentSnake), urlSuffix, handlerName),
		Guard: fmt.Sprintf("handlers.%s(", handlerName),
		Desc:  fmt.Sprintf("route for %s", handlerName),
	}

	return []Injection{model, handler, route}
}

// ManyToMany builds one side's injections for a junction link: a relation
// declaration in the source model, list/attach/detach handlers, and three
// nested routes. Call once per side.
func (g *Generator) ManyToMany(sourceSnake, targetSnake string) []Injection {
	source := generator.PascalCase(sourceSnake)
	target := generator.PascalCase(targetSnake)
	targetTable := generator.Pluralize(targetSnake)
	targetPluralPascal := generator.PascalCase(targetTable)
	junction := relations.JunctionTableName(sourceSnake, targetSnake)
	sourceCol := sourceSnake + "_id"
	targetCol := targetSnake + "_id"

	declName := source + targetPluralPascal
	model := Injection{
		Path:   g.layout.ModelPath(sourceSnake),
		Marker: project.MarkerRelations,
		Block: fmt.Sprintf(
			"// %s links %s through the %s junction table.\nvar %s = Relation{Kind: \"many_to_many\", Table: %q, Junction: %q}\n",
			declName, targetTable, junction, declName, targetTable, junction),
		Guard: fmt.Sprintf("var %s ", declName),
		Desc:  fmt.Sprintf("relation %s on %s", declName, sourceSnake),
	}

	listName := source + "List" + targetPluralPascal
	attachName := source + "Attach" + target
	detachName := source + "Detach" + target

	handlers := Injection{
		Path:   g.layout.HandlerPath(sourceSnake),
		Marker: project.MarkerRelationHandlers,
		Block: fmt.Sprintf(
			"// %s lists %s linked to a %s.\nfunc %s(a *app.App) http.HandlerFunc {\n\treturn a.ListViaJunction(%q, %q, %q, %q)\n}\n\n"+
				"// %s links an existing %s to a %s.\nfunc %s(a *app.App) http.HandlerFunc {\n\treturn a.AttachViaJunction(%q, %q, %q)\n}\n\n"+
				"// %s unlinks a %s from a %s.\nfunc %s(a *app.App) http.HandlerFunc {\n\treturn a.DetachViaJunction(%q, %q, %q)\n}\n",
			listName, targetTable, sourceSnake,
			listName, targetTable, junction, sourceCol, targetCol,
			attachName, targetSnake, sourceSnake,
			attachName, junction, sourceCol, targetCol,
			detachName, targetSnake, sourceSnake,
			detachName, junction, sourceCol, targetCol),
		Guard: fmt.Sprintf("func %s(", listName),
		Desc:  fmt.Sprintf("junction handlers for %s on %s", targetTable, sourceSnake),
	}

	base := fmt.Sprintf("%s/%s/{id}/%s", g.prefix, generator.Pluralize(sourceSnake), targetTable)
	routes := Injection{
		Path:   g.layout.RoutePath(sourceSnake),
		Marker: project.MarkerRelationRoutes,
		Block: fmt.Sprintf(
			"\tmux.Handle(\"GET %s\", handlers.%s(a))\n\tmux.Handle(\"POST %s/{related_id}\", handlers.%s(a))\n\tmux.Handle(\"DELETE %s/{related_id}\", handlers.%s(a))",
			base, listName, base, attachName, base, detachName),
		Guard: fmt.Sprintf("handlers.%s(", listName),
		Desc:  fmt.Sprintf("junction routes for %s on %s", targetTable, sourceSnake),
	}

	return []Injection{model, handlers, routes}
}
