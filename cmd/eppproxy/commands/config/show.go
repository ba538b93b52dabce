package config

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/internal/cli/output"
	"github.com/registryops/eppproxy/pkg/config"
)

var showOutput string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Display the current eppproxy configuration.

By default outputs YAML format. Use --output to change format.
Registry passwords and the JWT secret are included; pipe with care.

Examples:
  # Show default config as YAML
  eppproxy config show

  # Show as JSON
  eppproxy config show --output json

  # Show specific config file
  eppproxy config show --config /etc/eppproxy/config.yaml`,
	RunE: runConfigShow,
}

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "yaml", "Output format (yaml|json)")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	// Get config path from parent's persistent flag
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(showOutput)
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, cfg)
	default:
		return output.PrintYAML(os.Stdout, cfg)
	}
}
