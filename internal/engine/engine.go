// Package engine orchestrates generation runs: rendering an entity's file
// set, splicing relation code into existing entities, deferring
// many-to-many links whose target does not exist yet, and keeping the
// manifest current. Commands own the terminal; the engine reports what it
// did through Report values.
package engine

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/wrenframe/wren/generator"
	"github.com/wrenframe/wren/internal/generators/entity"
	"github.com/wrenframe/wren/internal/generators/scaffold"
	"github.com/wrenframe/wren/internal/inject"
	"github.com/wrenframe/wren/internal/manifest"
	"github.com/wrenframe/wren/internal/project"
	"github.com/wrenframe/wren/internal/relations"
	"github.com/wrenframe/wren/internal/schema"
	"github.com/wrenframe/wren/internal/update"
)

// Engine drives generation for one project.
type Engine struct {
	root    string
	cfg     *project.Config
	layout  *project.Layout
	man     *manifest.Manifest
	pending *relations.PendingStore
	gen     *entity.Generator
	version string

	// now feeds migration timestamps; seq keeps them strictly increasing
	// within one run so migration order matches generation order.
	now func() time.Time
	seq int
}

// New opens the project rooted at root. The manifest is loaded once and
// saved once per command, after all mutations.
func New(root string, cfg *project.Config, version string) (*Engine, error) {
	man, err := manifest.Load(root)
	if err != nil {
		return nil, err
	}
	layout := project.NewLayout(root)
	return &Engine{
		root:    root,
		cfg:     cfg,
		layout:  layout,
		man:     man,
		pending: relations.NewPendingStore(root),
		gen:     entity.New(layout, cfg),
		version: version,
		now:     time.Now,
	}, nil
}

// Report is what one generation run did, for the CLI to narrate.
type Report struct {
	Entity   string
	Written  []string // project-relative paths created or regenerated
	Skipped  []string // paths or injections left alone, with reason
	Injected []string // marker splices applied
	Pending  []string // deferred many-to-many links, "source -> target"
	Warnings []string
}

// GenerateEntity renders and writes one entity's file set, wires it into the
// aggregators, applies its relations, and resolves any queued relations that
// were waiting for this entity. Warnings accumulate instead of aborting: a
// missing relation target or a hand-removed marker degrades one injection,
// not the whole run.
func (e *Engine) GenerateEntity(def *schema.EntityDefinition) (*Report, error) {
	snake := def.SnakeName()
	rep := &Report{Entity: snake}

	files, err := e.gen.Render(def, e.nextMigrationTS())
	if err != nil {
		return nil, err
	}

	// The entity's file set is staged as one transaction: a failed write
	// rolls the whole set back instead of leaving a model without its
	// migration.
	tx := generator.NewTransaction()
	type stagedFile struct {
		file    entity.File
		content []byte // merged bytes, exactly what lands on disk
	}
	var staged []stagedFile
	for _, f := range files {
		if f.Template == "migration.sql.tmpl" && e.layout.MigrationExists("create_"+def.TableName()) {
			rep.Skipped = append(rep.Skipped, f.Path+" (migration already exists)")
			continue
		}
		abs := e.layout.Abs(f.Path)
		merged := inject.Merged(abs, f.Content)
		tx.AddFile(abs, merged, 0644)
		staged = append(staged, stagedFile{file: f, content: merged})
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	for _, s := range staged {
		f := s.file
		e.man.Record(f.Path, s.content, f.Category, f.Entity, f.Template, e.version)
		rep.Written = append(rep.Written, f.Path)
	}

	e.applyInjection(e.gen.RouteRegistration(snake), rep)
	e.applyInjection(e.gen.SeedEntry(snake), rep)

	for _, rel := range def.Relations {
		switch rel.Kind {
		case schema.BelongsTo:
			e.applyReverse(generator.SnakeCase(rel.Target), snake, rel.FKColumn, rep)
		case schema.HasMany:
			// Declaration only. Handler and route are deferred to the
			// child's belongs_to, which names the actual foreign key; the
			// child may not even exist yet.
			if inj, ok := e.gen.HasManyDeclaration(snake, generator.SnakeCase(rel.Target), snake+"_id"); ok {
				e.applyInjection(inj, rep)
			}
		case schema.ManyToMany:
			e.applyJunction(snake, generator.SnakeCase(rel.Target), rep)
		}
	}

	if err := e.resolvePending(snake, rep); err != nil {
		return nil, err
	}

	if err := e.man.Save(); err != nil {
		return nil, err
	}
	return rep, nil
}

// ApplyPendingFor resolves queued relations targeting one entity without
// regenerating it, for `wren relations resolve`.
func (e *Engine) ApplyPendingFor(name string) (*Report, error) {
	snake := generator.SnakeCase(name)
	rep := &Report{Entity: snake}

	if !e.layout.EntityExists(snake) {
		return nil, fmt.Errorf("entity %q does not exist; generate it first", name)
	}
	if err := e.resolvePending(snake, rep); err != nil {
		return nil, err
	}
	if err := e.man.Save(); err != nil {
		return nil, err
	}
	return rep, nil
}

// PendingRelations lists the queue for `wren relations`.
func (e *Engine) PendingRelations() ([]relations.PendingRelation, error) {
	return e.pending.Load()
}

// PlanUpdate re-renders the updatable scaffold set and classifies it.
func (e *Engine) PlanUpdate() (*update.Plan, error) {
	g := scaffold.New(e.cfg.Name, e.cfg.Module, e.cfg.APIPrefix)
	fresh, err := g.RenderUpdatable()
	if err != nil {
		return nil, err
	}
	return update.PlanUpdate(e.root, e.man, fresh)
}

// ApplyUpdate writes one planned item. Call SaveManifest once after the run.
func (e *Engine) ApplyUpdate(item update.Item) error {
	return update.Apply(e.root, e.man, item, e.version)
}

// SaveManifest persists manifest mutations accumulated during a run.
func (e *Engine) SaveManifest() error {
	return e.man.Save()
}

// Baseline backfills manifest records for scaffold files that predate the
// manifest, fingerprinting current disk content. Returns how many files
// were recorded.
func (e *Engine) Baseline() (int, error) {
	var paths []string
	for _, m := range scaffold.Mappings() {
		paths = append(paths, m.Path)
	}
	n, err := e.man.InitBaseline(paths, manifest.CategoryScaffold, e.version)
	if err != nil {
		return 0, err
	}
	return n, e.man.Save()
}

// resolvePending drains queue records targeting snake. A source entity that
// disappeared or lost its markers since queueing is requeued with a warning
// rather than dropped, so fixing the source and rerunning still works.
func (e *Engine) resolvePending(snake string, rep *Report) error {
	taken, err := e.pending.TakeFor(snake)
	if err != nil {
		return err
	}

	for _, p := range taken {
		source := generator.SnakeCase(p.Source)
		if problem := e.entityProblem(source); problem != "" {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf(
				"queued relation %s -> %s: %s; requeued", p.Source, p.Target, problem))
			if err := e.pending.Requeue(p); err != nil {
				return err
			}
			continue
		}
		e.applyJunction(source, snake, rep)
	}
	return nil
}

// applyReverse splices a child's belongs-to onto the parent: relation
// declaration, list handler, nested route. The parent must already exist
// with its markers intact; otherwise the reverse side is skipped with a
// warning, matching how a belongs-to to a not-yet-generated entity behaves.
func (e *Engine) applyReverse(parent, child, fkColumn string, rep *Report) {
	if parent != child {
		if !e.layout.EntityExists(parent) {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf(
				"relation target %q does not exist; skipping reverse relation from %s", parent, child))
			return
		}
		if problem := e.entityProblem(parent); problem != "" {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf(
				"relation target %q: %s; skipping reverse relation from %s", parent, problem, child))
			return
		}
	}
	for _, inj := range e.gen.ReverseHasMany(parent, child, fkColumn) {
		e.applyInjection(inj, rep)
	}
}

// applyJunction wires one many-to-many pair. A missing target defers the
// whole relation to the pending queue. An existing junction file is not
// rewritten, but both sides are still (idempotently) injected, so a
// half-applied earlier run heals.
func (e *Engine) applyJunction(source, target string, rep *Report) {
	if !e.layout.EntityExists(target) {
		added, err := e.pending.Add(source, target)
		if err != nil {
			rep.Warnings = append(rep.Warnings, err.Error())
			return
		}
		if added {
			rep.Pending = append(rep.Pending, source+" -> "+target)
		} else {
			rep.Skipped = append(rep.Skipped, fmt.Sprintf("relation %s -> %s (already queued)", source, target))
		}
		return
	}

	for _, side := range []string{source, target} {
		if problem := e.entityProblem(side); problem != "" {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf(
				"relation %s <-> %s: %s; skipping", source, target, problem))
			return
		}
	}

	junction := relations.JunctionName(source, target)
	if e.layout.EntityExists(junction) {
		rep.Skipped = append(rep.Skipped, e.layout.ModelPath(junction)+" (junction already exists)")
	} else {
		files, err := e.gen.RenderJunction(source, target, e.nextMigrationTS())
		if err != nil {
			rep.Warnings = append(rep.Warnings, err.Error())
			return
		}
		for _, f := range files {
			if f.Template == "junction_migration.sql.tmpl" &&
				e.layout.MigrationExists("create_"+relations.JunctionTableName(source, target)) {
				rep.Skipped = append(rep.Skipped, f.Path+" (migration already exists)")
				continue
			}
			if err := e.writeGenerated(f); err != nil {
				rep.Warnings = append(rep.Warnings, err.Error())
				return
			}
			rep.Written = append(rep.Written, f.Path)
		}
	}

	for _, inj := range e.gen.ManyToMany(source, target) {
		e.applyInjection(inj, rep)
	}
	for _, inj := range e.gen.ManyToMany(target, source) {
		e.applyInjection(inj, rep)
	}
}

// entityProblem verifies an injection target is structurally sound: files
// present, anchors intact. Empty string means sound.
func (e *Engine) entityProblem(snake string) string {
	missing := inject.ValidateMarkers(e.layout.EntityMarkers(snake))
	if len(missing) == 0 {
		return ""
	}
	var parts []string
	for _, m := range missing {
		parts = append(parts, fmt.Sprintf("%s missing %s", m.Path, m.Marker))
	}
	return strings.Join(parts, "; ")
}

// applyInjection splices one block, skipping when the guard substring shows
// an earlier rendering is already in place. Marker trouble is a warning.
func (e *Engine) applyInjection(inj entity.Injection, rep *Report) {
	abs := e.layout.Abs(inj.Path)
	if inj.Guard != "" {
		if raw, err := os.ReadFile(abs); err == nil && strings.Contains(string(raw), inj.Guard) {
			rep.Skipped = append(rep.Skipped, inj.Desc+" (already present)")
			return
		}
	}
	inserted, err := inject.InsertAtMarker(abs, inj.Marker, inj.Block)
	if err != nil {
		rep.Warnings = append(rep.Warnings, err.Error())
		return
	}
	if !inserted {
		rep.Skipped = append(rep.Skipped, inj.Desc+" (already present)")
		return
	}
	rep.Injected = append(rep.Injected, inj.Desc)
}

// writeGenerated lands one rendered file, preserving any custom block the
// previous generation left on disk, and records the written bytes in the
// manifest so the fingerprint matches what is actually on disk.
func (e *Engine) writeGenerated(f entity.File) error {
	content, err := inject.WriteGenerated(e.layout.Abs(f.Path), f.Content)
	if err != nil {
		return err
	}
	e.man.Record(f.Path, content, f.Category, f.Entity, f.Template, e.version)
	return nil
}

// nextMigrationTS issues strictly increasing timestamp prefixes within a run.
func (e *Engine) nextMigrationTS() string {
	ts := e.now().UTC().Add(time.Duration(e.seq) * time.Second)
	e.seq++
	return ts.Format("20060102150405")
}
