package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wrenframe/wren/generator"
	"github.com/wrenframe/wren/internal/generators/scaffold"
	"github.com/wrenframe/wren/internal/manifest"
	"github.com/wrenframe/wren/internal/project"
)

// ScaffoldProject lays down a fresh project at root and seeds its manifest.
// Every write is validated before any executes, so a conflict in the target
// directory fails the run without touching the tree. Returns the
// project-relative paths written, in write order.
func ScaffoldProject(root, name, module, prefix, version string, force bool) ([]string, error) {
	if _, err := os.Stat(filepath.Join(root, project.ConfigFile)); err == nil && !force {
		return nil, fmt.Errorf("%s already exists in %s (use --force to overwrite)", project.ConfigFile, root)
	}

	files, err := scaffold.New(name, module, prefix).RenderAll()
	if err != nil {
		return nil, err
	}

	man := manifest.New(root, name, version)
	ops := make([]generator.Operation, 0, len(files)+1)
	var written []string
	for _, f := range files {
		ops = append(ops, &generator.WriteFileOp{
			Path:    filepath.Join(root, f.Path),
			Content: f.Content,
			Mode:    0644,
		})
		man.Record(f.Path, f.Content, f.Category, "", f.Template, version)
		written = append(written, f.Path)
	}
	ops = append(ops, &generator.FuncOp{
		Desc:   "record scaffold in " + manifest.Path,
		Action: func(ctx context.Context) error { return man.Save() },
	})

	// The command narrates the written set; the executor's own log is noise.
	opts := generator.ExecuteOptions{Force: force, Writer: io.Discard}
	if err := generator.Execute(context.Background(), ops, opts); err != nil {
		return nil, err
	}
	return written, nil
}
