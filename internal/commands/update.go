package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wrenframe/wren/generator"
	"github.com/wrenframe/wren/internal/update"
	"github.com/wrenframe/wren/output"
)

// UpdateCmd creates and returns the 'update' command, which rolls template
// improvements into an existing project.
func UpdateCmd() *cobra.Command {
	var force, skip, diff, dryRun bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Re-render scaffold files changed by a newer wren",
		Long: `Re-renders the updatable scaffold set and classifies every file:

• unchanged      template output identical to the last generation
• auto-update    template changed, you never touched the file — rewritten
• conflict       template and you both changed it — you decide
• new            added by this wren version — written
• deleted        you removed it — respected, never recreated

Conflicts prompt interactively unless --force, --skip, or --diff picks a
blanket strategy. --dry-run only reports.`,
		Run: func(cmd *cobra.Command, args []string) {
			resolver, err := generator.NewResolver(force, skip, diff)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			eng, err := openEngine()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			plan, err := eng.PlanUpdate()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			for _, path := range plan.Deleted {
				output.Skipped(path, "deleted locally, not recreated")
			}
			if plan.Total() == 0 {
				output.Success("Everything up to date")
				return
			}

			apply := func(item update.Item, verb func(string)) {
				if dryRun {
					output.Info("would write " + item.Path)
					return
				}
				if err := eng.ApplyUpdate(item); err != nil {
					output.Error(err.Error())
					os.Exit(1)
				}
				verb(item.Path)
			}

			for _, item := range plan.NewFiles {
				apply(item, output.Created)
			}
			for _, item := range plan.AutoUpdate {
				apply(item, output.Updated)
			}

			cancelled := false
			for _, item := range plan.Conflicts {
				if cancelled {
					output.Skipped(item.Path, "update cancelled")
					continue
				}
				if dryRun {
					output.Conflict(item.Path)
					continue
				}

				res, err := resolver.ResolveConflict(item.Path, item.Current, item.NewContent)
				if err != nil {
					output.Error(err.Error())
					os.Exit(1)
				}
				for res == generator.ShowDiff {
					fmt.Println(generator.NewDiffGenerator().GenerateDiffDefault(item.Path, item.Path, item.Current, item.NewContent))
					res, err = resolver.ResolveConflict(item.Path, item.Current, item.NewContent)
					if err != nil {
						output.Error(err.Error())
						os.Exit(1)
					}
				}

				switch res {
				case generator.Overwrite:
					apply(item, output.Updated)
				case generator.Skip:
					output.Skipped(item.Path, "kept local changes")
				case generator.Cancel:
					output.Warn("Update cancelled; remaining conflicts left untouched")
					cancelled = true
				}
			}

			if !dryRun {
				if err := eng.SaveManifest(); err != nil {
					output.Error(err.Error())
					os.Exit(1)
				}
			}
			output.Success(fmt.Sprintf("Update complete (%d files considered)", plan.Total()))
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite all conflicting files")
	cmd.Flags().BoolVar(&skip, "skip", false, "Keep all conflicting files as they are")
	cmd.Flags().BoolVar(&diff, "diff", false, "Show a diff before deciding each conflict")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report without writing")

	return cmd
}
