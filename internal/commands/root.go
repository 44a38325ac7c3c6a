// Package commands wires the wren CLI. Commands translate flags and
// arguments into engine calls and narrate engine reports; all generation
// logic lives below them.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wrenframe/wren"
	"github.com/wrenframe/wren/internal/engine"
	"github.com/wrenframe/wren/internal/project"
	"github.com/wrenframe/wren/output"
)

// RootCmd creates and returns the root command for the wren CLI.
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "wren",
		Short: "Incremental generator for Go web applications",
		Long: `wren scaffolds a Go web application and grows it one entity at a time.

Generation is incremental and repeatable:
• Code you write below the custom sentinel survives regeneration
• Cross-entity relations are spliced in through marker lines
• Relations to entities that don't exist yet wait in a queue
• wren update rolls template improvements into existing projects`,
		Version: wren.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	cmd.AddCommand(NewCmd())
	cmd.AddCommand(GenerateCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(RelationsCmd())
	cmd.AddCommand(BaselineCmd())

	return cmd
}

// openEngine locates the enclosing wren project and opens an engine on it.
func openEngine() (*engine.Engine, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := project.FindRoot(cwd)
	if err != nil {
		return nil, err
	}
	cfg, err := project.LoadConfig(root)
	if err != nil {
		return nil, err
	}
	return engine.New(root, cfg, wren.Version)
}

// printReport narrates one engine report.
func printReport(rep *engine.Report) {
	for _, p := range rep.Written {
		output.Created(p)
	}
	for _, s := range rep.Injected {
		output.Injected(s)
	}
	for _, s := range rep.Skipped {
		output.Skipped(s, "")
	}
	for _, p := range rep.Pending {
		output.Info("queued relation: " + p + " (resolves when the target is generated)")
	}
	for _, w := range rep.Warnings {
		output.Warn(w)
	}
}
