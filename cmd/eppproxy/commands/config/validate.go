package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate the eppproxy configuration and registry files.

Checks for syntax errors, missing required fields, and invalid values
in the global file and every file under registries.d.

Examples:
  # Validate default config
  eppproxy config validate

  # Validate specific config file
  eppproxy config validate --config /etc/eppproxy/config.yaml`,
	RunE: runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	// Get config path from parent's persistent flag
	configPath, _ := cmd.Flags().GetString("config")

	// Load and validate configuration
	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return err
	}

	// Determine path for display
	displayPath := configPath
	if displayPath == "" {
		displayPath = config.GetDefaultConfigPath()
	}

	// Additional checks beyond structural validation
	var warnings []string

	if len(cfg.Registries) == 0 {
		warnings = append(warnings, "No registry files found in "+cfg.RegistryDir)
	}
	if cfg.API.IsEnabled() {
		if len(cfg.API.Users) == 0 {
			warnings = append(warnings, "No API users configured - the API will serve unauthenticated")
		} else if len(cfg.API.JWT.Secret) < 32 {
			warnings = append(warnings, "JWT secret missing or shorter than 32 characters - logins will fail")
		}
	}
	for _, reg := range cfg.Registries {
		if reg.NewPassword != "" {
			warnings = append(warnings, fmt.Sprintf("Registry %s has new_password set - remove it after the change succeeds", reg.ID))
		}
	}

	// Print results
	fmt.Printf("Configuration file: %s\n", displayPath)
	fmt.Println("Validation: OK")

	if len(warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	fmt.Printf("\nConfiguration summary:\n")
	fmt.Printf("  Registries:      %d\n", len(cfg.Registries))
	fmt.Printf("  Registry dir:    %s\n", cfg.RegistryDir)
	fmt.Printf("  API port:        %d\n", cfg.API.Port)
	fmt.Printf("  Audit backend:   %s\n", displayBackend(cfg.Audit.Backend))
	fmt.Printf("  Log level:       %s\n", cfg.Logging.Level)

	return nil
}

func displayBackend(backend string) string {
	if backend == "" {
		return "disabled"
	}
	return backend
}
