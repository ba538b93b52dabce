// Package registry implements registry status commands for eppctl.
package registry

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for registry status.
var Cmd = &cobra.Command{
	Use:   "registry",
	Short: "Registry session status",
	Long: `Inspect the proxy's registry sessions.

Examples:
  # List all registries and their session state
  eppctl registry list

  # Show one registry
  eppctl registry get verisign`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
}
