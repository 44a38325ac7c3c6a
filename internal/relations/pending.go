// Package relations holds the cross-entity relation state that outlives a
// single generation run: the persisted queue of many-to-many declarations
// whose target entity does not exist yet, and the junction naming rule.
package relations

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wrenframe/wren/generator"
)

// PendingPath is the pending-relations document location, relative to the
// project root.
const PendingPath = ".wren/pending_relations.yml"

// PendingRelation is one deferred many-to-many declaration.
type PendingRelation struct {
	Source string `yaml:"source_entity"`
	Target string `yaml:"target_entity"`
	Kind   string `yaml:"relation_type"`
}

// KindManyToMany is the only relation kind that defers; BelongsTo reverse
// injection is skipped outright when the target is absent.
const KindManyToMany = "many_to_many"

// PendingStore reads and rewrites the pending-relations document as a whole.
type PendingStore struct {
	root string
}

// NewPendingStore returns a store for the project rooted at root.
func NewPendingStore(root string) *PendingStore {
	return &PendingStore{root: root}
}

// Load returns the queued records in document order. A missing document is
// an empty queue.
func (s *PendingStore) Load() ([]PendingRelation, error) {
	raw, err := os.ReadFile(filepath.Join(s.root, PendingPath))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading pending relations: %w", err)
	}

	var pending []PendingRelation
	if err := yaml.Unmarshal(raw, &pending); err != nil {
		return nil, fmt.Errorf("parsing pending relations: %w", err)
	}
	return pending, nil
}

// save atomically rewrites the whole document.
func (s *PendingStore) save(pending []PendingRelation) error {
	raw, err := yaml.Marshal(pending)
	if err != nil {
		return fmt.Errorf("encoding pending relations: %w", err)
	}
	return generator.WriteFileAtomic(filepath.Join(s.root, PendingPath), raw, 0644)
}

// pairKey builds the unordered dedupe key for two entity names. A declares
// m2m to B and B declares m2m to A describe the same junction, so only one
// record may exist per pair.
func pairKey(a, b string) string {
	sa, sb := generator.SnakeCase(a), generator.SnakeCase(b)
	if sa > sb {
		sa, sb = sb, sa
	}
	return sa + "|" + sb
}

// Add queues a deferred relation, deduplicated by the unordered entity pair.
// Returns true when a new record was written.
func (s *PendingStore) Add(source, target string) (bool, error) {
	pending, err := s.Load()
	if err != nil {
		return false, err
	}

	key := pairKey(source, target)
	for _, p := range pending {
		if pairKey(p.Source, p.Target) == key {
			return false, nil
		}
	}

	pending = append(pending, PendingRelation{
		Source: source,
		Target: target,
		Kind:   KindManyToMany,
	})
	return true, s.save(pending)
}

// TakeFor removes and returns every record whose target matches entityName
// (snake-case comparison, so "BlogTag" matches "blog_tag"). The remaining
// queue is rewritten atomically.
func (s *PendingStore) TakeFor(entityName string) ([]PendingRelation, error) {
	pending, err := s.Load()
	if err != nil {
		return nil, err
	}

	want := generator.SnakeCase(entityName)
	var taken, rest []PendingRelation
	for _, p := range pending {
		if generator.SnakeCase(p.Target) == want {
			taken = append(taken, p)
		} else {
			rest = append(rest, p)
		}
	}

	if len(taken) == 0 {
		return nil, nil
	}
	return taken, s.save(rest)
}

// Requeue puts a record back at the end of the queue, used when resolution
// found the target structurally inconsistent and must be retried later.
func (s *PendingStore) Requeue(rec PendingRelation) error {
	pending, err := s.Load()
	if err != nil {
		return err
	}
	key := pairKey(rec.Source, rec.Target)
	for _, p := range pending {
		if pairKey(p.Source, p.Target) == key {
			return nil
		}
	}
	return s.save(append(pending, rec))
}

// JunctionName computes the junction entity name for a many-to-many pair:
// the two snake-case names joined alphabetically. It is a pure function,
// independent of declaration order, so both participants derive the same
// junction no matter who declared the relation.
func JunctionName(a, b string) string {
	sa, sb := generator.SnakeCase(a), generator.SnakeCase(b)
	if sa < sb {
		return sa + "_" + sb
	}
	return sb + "_" + sa
}

// JunctionTableName returns the pluralized table name for a junction entity.
func JunctionTableName(a, b string) string {
	name := JunctionName(a, b)
	// Pluralize only the trailing segment: post_tag → post_tags
	if i := strings.LastIndex(name, "_"); i != -1 {
		return name[:i+1] + generator.Pluralize(name[i+1:])
	}
	return generator.Pluralize(name)
}
