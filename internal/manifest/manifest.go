// Package manifest tracks every file wren has generated: its path, the
// fingerprint of the content at write time, and the generator version that
// produced it. The update planner reads these records to tell user edits
// apart from template drift.
package manifest

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wrenframe/wren/generator"
)

// Path is the manifest document location, relative to the project root.
const Path = ".wren/manifest.yml"

// File categories. Scaffold files participate in update planning; marker
// files are aggregators mutated through anchors; entity files belong to a
// generated entity; static files are copied once and never updated.
const (
	CategoryScaffold = "scaffold"
	CategoryEntity   = "entity"
	CategoryMarker   = "marker"
	CategoryStatic   = "static"
)

// FileRecord is one tracked file.
type FileRecord struct {
	Template    string `yaml:"template,omitempty"`
	Category    string `yaml:"category"`
	Entity      string `yaml:"entity,omitempty"`
	Fingerprint string `yaml:"fingerprint"`
	GeneratedAt string `yaml:"generated_at"`
	GeneratedBy string `yaml:"generated_by_version"`
}

// Manifest is the persisted document mapping relative paths to records.
type Manifest struct {
	WrenVersion string                `yaml:"wren_version"`
	ProjectName string                `yaml:"project_name"`
	CreatedAt   string                `yaml:"created_at"`
	UpdatedAt   string                `yaml:"updated_at"`
	Files       map[string]FileRecord `yaml:"files"`

	root string // project root, not serialized
}

// Fingerprint computes the content fingerprint stored in records:
// "sha256:" + lowercase hex digest.
func Fingerprint(content []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(content))
}

// New creates an empty manifest for a fresh project rooted at root.
func New(root, projectName, version string) *Manifest {
	now := time.Now().UTC().Format(time.RFC3339)
	return &Manifest{
		WrenVersion: version,
		ProjectName: projectName,
		CreatedAt:   now,
		UpdatedAt:   now,
		Files:       make(map[string]FileRecord),
		root:        root,
	}
}

// Load reads the manifest document under root. A missing document is not an
// error: it returns an empty manifest so pre-tracking projects can be
// baselined with InitBaseline.
func Load(root string) (*Manifest, error) {
	path := filepath.Join(root, Path)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(root, filepath.Base(root), ""), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if m.Files == nil {
		m.Files = make(map[string]FileRecord)
	}
	m.root = root
	return &m, nil
}

// Save atomically rewrites the whole manifest document.
func (m *Manifest) Save() error {
	raw, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return generator.WriteFileAtomic(filepath.Join(m.root, Path), raw, 0644)
}

// Record upserts a file record for relPath with the fingerprint of content as
// written, and bumps the manifest's updated_at stamp. The caller saves.
func (m *Manifest) Record(relPath string, content []byte, category, entity, template, version string) FileRecord {
	rec := FileRecord{
		Template:    template,
		Category:    category,
		Entity:      entity,
		Fingerprint: Fingerprint(content),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		GeneratedBy: version,
	}
	m.Files[relPath] = rec
	m.UpdatedAt = rec.GeneratedAt
	if m.WrenVersion == "" {
		m.WrenVersion = version
	}
	return rec
}

// Lookup returns the record for relPath, if tracked.
func (m *Manifest) Lookup(relPath string) (FileRecord, bool) {
	rec, ok := m.Files[relPath]
	return rec, ok
}

// Forget drops the record for relPath. Used when a resolution decides a file
// is user-owned from now on.
func (m *Manifest) Forget(relPath string) {
	delete(m.Files, relPath)
	m.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

// InitBaseline fingerprints already-existing files without modifying them,
// for projects created before tracking existed. Paths absent from disk are
// skipped silently. Records are tagged with the given category.
func (m *Manifest) InitBaseline(relPaths []string, category, version string) (int, error) {
	count := 0
	for _, rel := range relPaths {
		raw, err := os.ReadFile(filepath.Join(m.root, rel))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return count, fmt.Errorf("baselining %s: %w", rel, err)
		}
		m.Record(rel, raw, category, "", "", version)
		count++
	}
	return count, nil
}

// UserModified reports whether the file at relPath differs on disk from the
// content last written by the generator. Missing files return (false, false).
func (m *Manifest) UserModified(relPath string) (modified, exists bool) {
	rec, tracked := m.Files[relPath]
	if !tracked {
		return false, false
	}
	raw, err := os.ReadFile(filepath.Join(m.root, relPath))
	if err != nil {
		return false, false
	}
	return Fingerprint(raw) != rec.Fingerprint, true
}
