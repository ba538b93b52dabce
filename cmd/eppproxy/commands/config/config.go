// Package config implements configuration management subcommands.
package config

import (
	"github.com/spf13/cobra"
)

// Cmd is the config subcommand.
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long: `Manage eppproxy configuration files.

Use 'eppproxy init' to create a new configuration file. Registry
connections live in the registries.d directory next to it, one YAML
file per registry.

Subcommands:
  edit      Open configuration in editor
  validate  Validate configuration and registry files
  show      Display current configuration
  schema    Generate JSON schema for IDE/validation`,
}

func init() {
	Cmd.AddCommand(editCmd)
	Cmd.AddCommand(validateCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(schemaCmd)
}
