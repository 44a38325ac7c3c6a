// Package output provides styled terminal output for the wren CLI.
//
// # Usage
//
// Import the package and call the output functions:
//
//	import "github.com/wrenframe/wren/output"
//
//	output.Success("Generated entity: Post")
//	output.Info("Next steps:")
//	output.Step("wren generate Comment body:text")
//	output.Error("Something went wrong")
//
// File-level verbs (Created, Updated, Injected, Skipped, Conflict) report each
// file a generation run touched, so a run reads like a ledger of disk changes.
//
// # Verbose Mode
//
// Enable verbose output for debugging:
//
//	output.SetVerbose(true)
//	output.Verbose("This only prints in verbose mode")
//
// The package uses lipgloss for terminal styling, but abstracts these
// details away from callers.
package output
