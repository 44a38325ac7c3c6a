package generator

import (
	"fmt"
	"os"
)

// Transaction stages a set of file writes that land together or not at all.
// The engine stages an entity's whole file set in one transaction so a
// failed write never leaves a model on disk without its migration.
type Transaction struct {
	staged    []stagedWrite
	committed bool
}

type stagedWrite struct {
	path    string
	content []byte
	mode    os.FileMode
}

// NewTransaction returns an empty transaction.
func NewTransaction() *Transaction {
	return &Transaction{}
}

// AddFile stages one write. Nothing touches disk until Commit.
func (t *Transaction) AddFile(path string, content []byte, mode os.FileMode) {
	t.staged = append(t.staged, stagedWrite{path: path, content: content, mode: mode})
}

// Commit writes the staged files in order, each one atomically. On failure
// the files this transaction already wrote are removed again.
func (t *Transaction) Commit() error {
	if t.committed {
		return fmt.Errorf("transaction already committed")
	}

	var written []string
	for _, w := range t.staged {
		if err := WriteFileAtomic(w.path, w.content, w.mode); err != nil {
			removeAll(written)
			return fmt.Errorf("writing %s: %w", w.path, err)
		}
		written = append(written, w.path)
	}
	t.committed = true
	return nil
}

// Rollback removes any staged files present on disk. A no-op after a
// successful Commit, so it is safe in a defer.
func (t *Transaction) Rollback() {
	if t.committed {
		return
	}
	var present []string
	for _, w := range t.staged {
		if _, err := os.Stat(w.path); err == nil {
			present = append(present, w.path)
		}
	}
	removeAll(present)
}

func removeAll(paths []string) {
	// Best effort; an orphaned file is better than masking the write error.
	for _, p := range paths {
		os.Remove(p)
	}
}
