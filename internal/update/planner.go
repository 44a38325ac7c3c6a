// Package update classifies scaffold files against the manifest so template
// improvements can be rolled into existing projects without trampling user
// edits. The classification is pure data; conflict resolution happens at the
// CLI through the generator conflict resolver.
package update

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wrenframe/wren/generator"
	"github.com/wrenframe/wren/internal/manifest"
)

// RenderedFile is fresh renderer output for one scaffold file.
type RenderedFile struct {
	Template string // template identifier, recorded into the manifest
	Path     string // output path relative to the project root
	Content  []byte
}

// Item describes one file's update status.
type Item struct {
	Path            string
	Template        string
	NewContent      []byte
	OldFingerprint  string // manifest fingerprint at last write, "" for new files
	UserModified    bool
	TemplateChanged bool
	Current         []byte // on-disk content, nil when the file is absent
}

// Plan buckets every updatable scaffold file by what should happen to it.
type Plan struct {
	AutoUpdate []Item   // template changed, user did not touch the file
	Conflicts  []Item   // template and user both changed it
	Unchanged  []Item   // template output identical to last generation
	NewFiles   []Item   // in the template set but never tracked
	Deleted    []string // tracked but removed from disk; never recreated
}

// Total returns the number of files the plan would touch (everything except
// unchanged and deleted).
func (p *Plan) Total() int {
	return len(p.AutoUpdate) + len(p.Conflicts) + len(p.NewFiles)
}

// PlanUpdate classifies fresh renderer output for the scaffold set against
// the manifest and the on-disk state under root.
//
// Per file: template_changed is "fresh output fingerprints differently from
// the manifest record"; user_modified is "on-disk content fingerprints
// differently from the manifest record". A tracked file missing from disk is
// a deliberate deletion and is respected. An untracked file is new.
func PlanUpdate(root string, m *manifest.Manifest, fresh []RenderedFile) (*Plan, error) {
	plan := &Plan{}

	for _, rf := range fresh {
		newFingerprint := manifest.Fingerprint(rf.Content)

		current, err := os.ReadFile(filepath.Join(root, rf.Path))
		exists := err == nil
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", rf.Path, err)
		}

		rec, tracked := m.Lookup(rf.Path)
		if !tracked {
			plan.NewFiles = append(plan.NewFiles, Item{
				Path:            rf.Path,
				Template:        rf.Template,
				NewContent:      rf.Content,
				TemplateChanged: true,
				Current:         current,
			})
			continue
		}

		if !exists {
			plan.Deleted = append(plan.Deleted, rf.Path)
			continue
		}

		item := Item{
			Path:            rf.Path,
			Template:        rf.Template,
			NewContent:      rf.Content,
			OldFingerprint:  rec.Fingerprint,
			UserModified:    manifest.Fingerprint(current) != rec.Fingerprint,
			TemplateChanged: newFingerprint != rec.Fingerprint,
			Current:         current,
		}

		switch {
		case !item.TemplateChanged:
			plan.Unchanged = append(plan.Unchanged, item)
		case !item.UserModified:
			plan.AutoUpdate = append(plan.AutoUpdate, item)
		default:
			plan.Conflicts = append(plan.Conflicts, item)
		}
	}

	return plan, nil
}

// Apply writes an item's fresh content and re-records it in the manifest.
// The caller saves the manifest once per run.
func Apply(root string, m *manifest.Manifest, item Item, version string) error {
	if err := generator.WriteFileAtomic(filepath.Join(root, item.Path), item.NewContent, 0644); err != nil {
		return err
	}
	m.Record(item.Path, item.NewContent, manifest.CategoryScaffold, "", item.Template, version)
	return nil
}
