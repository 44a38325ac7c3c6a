package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wrenframe/wren/output"
)

// BaselineCmd creates and returns the 'baseline' command, which backfills
// the manifest for projects scaffolded before it existed.
func BaselineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "baseline",
		Short: "Record current scaffold files in the manifest",
		Long: `Fingerprints the scaffold files on disk and records them in
.wren/manifest.yml as-is. Run once in a project that predates the manifest;
afterwards 'wren update' can tell your edits apart from template changes.`,
		Run: func(cmd *cobra.Command, args []string) {
			eng, err := openEngine()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			n, err := eng.Baseline()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			output.Success(fmt.Sprintf("Recorded %d scaffold files in the manifest", n))
		},
	}
}
