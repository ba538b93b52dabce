// Package context implements context management commands for eppctl.
package context

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for context management.
var Cmd = &cobra.Command{
	Use:   "context",
	Short: "Context management",
	Long: `Manage saved server contexts.

A context stores the server URL, username, and access token for one
eppproxy server. Use contexts to switch between proxies (production,
OT&E, staging) without re-entering credentials.

Examples:
  # List all contexts
  eppctl context list

  # Show the current context
  eppctl context current

  # Switch to another context
  eppctl context use ote

  # Delete a context
  eppctl context delete staging`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(currentCmd)
	Cmd.AddCommand(useCmd)
	Cmd.AddCommand(renameCmd)
	Cmd.AddCommand(deleteCmd)
}
