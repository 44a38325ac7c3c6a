package generator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Operation is one step of a generation run. Validate reports whether the
// step could succeed; force waives conflict checks. Execute performs it, and
// is only called once every operation in the run has validated.
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// WriteFileOp writes one file. Validation creates the parent directory (an
// idempotent side effect) and, without force, refuses to clobber an existing
// file. Nil content is rejected; empty content is a valid zero-byte file.
type WriteFileOp struct {
	Path    string
	Content []byte
	Mode    fs.FileMode
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if op.Content == nil {
		return fmt.Errorf("nil content for %s", op.Path)
	}
	dir := filepath.Dir(op.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if !force {
		if _, err := os.Stat(op.Path); err == nil {
			return fmt.Errorf("file already exists: %s", op.Path)
		}
	}
	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	return WriteFileAtomic(op.Path, op.Content, op.Mode)
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("create %s (%d bytes)", op.Path, len(op.Content))
}

// FuncOp adapts an arbitrary action (a manifest save, say) to the Operation
// pipeline. Check, when set, runs during validation.
type FuncOp struct {
	Desc   string
	Check  func(ctx context.Context) error
	Action func(ctx context.Context) error
}

func (op *FuncOp) Validate(ctx context.Context, force bool) error {
	if op.Action == nil {
		return fmt.Errorf("no action for %s", op.Desc)
	}
	if op.Check != nil {
		return op.Check(ctx)
	}
	return nil
}

func (op *FuncOp) Execute(ctx context.Context) error { return op.Action(ctx) }

func (op *FuncOp) Description() string { return op.Desc }
