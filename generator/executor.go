package generator

import (
	"context"
	"fmt"
	"io"
	"os"
)

// ExecuteOptions control one Execute run.
type ExecuteOptions struct {
	DryRun bool
	Force  bool
	Writer io.Writer // defaults to os.Stdout
}

// Execute validates every operation before running any, so a doomed run
// fails without touching the tree, then executes them in order. DryRun
// narrates what would happen instead of executing.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	for _, op := range ops {
		if err := op.Validate(ctx, opts.Force); err != nil {
			return err
		}
	}

	for _, op := range ops {
		if opts.DryRun {
			fmt.Fprintf(w, "would %s\n", op.Description())
			continue
		}
		if err := op.Execute(ctx); err != nil {
			return fmt.Errorf("%s: %w", op.Description(), err)
		}
		fmt.Fprintf(w, "%s\n", op.Description())
	}
	return nil
}
