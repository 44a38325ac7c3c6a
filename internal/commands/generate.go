package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wrenframe/wren/internal/schema"
	"github.com/wrenframe/wren/output"
)

// GenerateCmd creates and returns the 'generate' command for entities.
func GenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate [Entity] [field:type[annotations]...]",
		Aliases: []string{"g"},
		Short:   "Generate an entity: model, handler, routes, migration, form",
		Long: `Generates the full file set for one entity and wires it into the
project. Regeneration is safe: custom code below the sentinel is preserved
and relation splices never duplicate.

Field syntax: name:type, with optional annotations and relations.

  title:string[min=3,max=120,searchable]
  body:text
  status:enum(draft,published)
  price:decimal?
  email:string[email,unique,authenticated]
  author_id:uuid->User          belongs-to; User gains the reverse side
  comments:has_many->Comment    reverse side only, FK expected on Comment
  tags:m2m->Tag                 junction table; deferred if Tag is missing

Types: string, text, bool, int, int64, float64, decimal, uuid, datetime,
date, json, enum(...), file, image. A trailing ? makes the field optional.

Annotations: min=, max=, regex=, email, url, required, unique, searchable,
authenticated, admin_only, roles=a;b.

Examples:
  wren generate Post title:string[min=3,searchable] body:text
  wren generate Comment body:text post_id:uuid->Post
  wren generate Tag name:string[unique] posts:m2m->Post`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			def, err := schema.ParseEntity(args[0], args[1:])
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			eng, err := openEngine()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			rep, err := eng.GenerateEntity(def)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			printReport(rep)
			output.Success(fmt.Sprintf("Generated entity: %s", def.PascalName()))
		},
	}

	return cmd
}
