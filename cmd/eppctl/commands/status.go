package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/cli/output"
	"github.com/registryops/eppproxy/pkg/apiclient"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show proxy readiness",
	Long: `Show whether the proxy is ready to take traffic.

The proxy is ready when its audit sink accepts writes and at least one
registry session is logged in.

Examples:
  # Check readiness
  eppctl status

  # As JSON
  eppctl status -o json`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	health, err := client.Ready()
	if err != nil {
		// A 503 means reachable but not ready; everything else is fatal.
		var apiErr *apiclient.APIError
		if !errors.As(err, &apiErr) || !apiErr.IsRegistryUnavailable() {
			return fmt.Errorf("proxy unreachable: %w", err)
		}
		health = &apiclient.HealthResponse{Status: "unhealthy", Error: apiErr.Detail}
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	if format != output.FormatTable {
		return cmdutil.PrintResource(os.Stdout, health, nil)
	}

	if health.Status == "healthy" {
		fmt.Println("Proxy is ready")
	} else {
		fmt.Printf("Proxy is not ready: %s\n", cmdutil.EmptyOr(health.Error, health.Status))
	}
	return nil
}
