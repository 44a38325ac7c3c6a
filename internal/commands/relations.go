package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wrenframe/wren/output"
)

// RelationsCmd creates and returns the 'relations' command for inspecting
// and resolving the pending-relations queue.
func RelationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relations",
		Short: "List relations waiting for their target entity",
		Long: `Many-to-many relations declared before their target exists wait in
.wren/pending_relations.yml. They resolve automatically when the target is
generated; 'wren relations resolve <Entity>' retries them by hand.`,
		Run: func(cmd *cobra.Command, args []string) {
			eng, err := openEngine()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			pending, err := eng.PendingRelations()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			if len(pending) == 0 {
				output.Success("No pending relations")
				return
			}
			for _, p := range pending {
				output.Info(fmt.Sprintf("%s -> %s (%s)", p.Source, p.Target, p.Kind))
			}
		},
	}

	cmd.AddCommand(relationsResolveCmd())
	return cmd
}

func relationsResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [Entity]",
		Short: "Retry queued relations targeting an entity",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			eng, err := openEngine()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			rep, err := eng.ApplyPendingFor(args[0])
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			printReport(rep)
			if len(rep.Written) == 0 && len(rep.Injected) == 0 && len(rep.Warnings) == 0 {
				output.Info("Nothing queued for " + args[0])
				return
			}
			output.Success("Resolved queued relations for " + args[0])
		},
	}
}
