package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wrenframe/wren"
	"github.com/wrenframe/wren/internal/engine"
	"github.com/wrenframe/wren/output"
)

// NewCmd creates and returns the 'new' command for scaffolding projects.
func NewCmd() *cobra.Command {
	var module, prefix string
	var force bool

	cmd := &cobra.Command{
		Use:   "new [project-name]",
		Short: "Create a new wren project",
		Long: `Creates a new wren project with:
• Go module and standard directory layout
• HTTP server with generic CRUD plumbing (cmd/server, internal/app)
• Routes aggregator and seeder registry, grown per entity via markers
• Postgres via docker-compose, CI workflow, Dockerfile
• Generation manifest (.wren/manifest.yml)

Example:
  wren new myapp --module github.com/acme/myapp`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			name := args[0]
			if module == "" {
				module = "github.com/example/" + name
			}

			output.Verbose(fmt.Sprintf("Creating wren project %s (module %s)", name, module))

			written, err := engine.ScaffoldProject(name, name, module, prefix, wren.Version, force)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			for _, p := range written {
				output.Created(p)
			}

			output.Success("Created wren project: " + name)
			output.Info("Next steps:")
			output.Step("cd " + name)
			output.Step("go mod tidy")
			output.Step("docker compose up -d db")
			output.Step("go run ./cmd/server")
		},
	}

	cmd.Flags().StringVar(&module, "module", "", "Go module path (default github.com/example/<name>)")
	cmd.Flags().StringVar(&prefix, "api-prefix", "/api", "Route prefix for generated handlers")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing project")

	return cmd
}
