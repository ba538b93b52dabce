package registry

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/pkg/apiclient"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registries",
	Long: `List every registry the proxy is configured for, with the current
session state of each.

Examples:
  # List registries as table
  eppctl registry list

  # List as JSON
  eppctl registry list -o json`,
	RunE: runList,
}

// RegistryList is a list of registries for table rendering.
type RegistryList []apiclient.RegistryStatus

// Headers implements TableRenderer.
func (rl RegistryList) Headers() []string {
	return []string{"ID", "STATE", "SERVER", "ZONES"}
}

// Rows implements TableRenderer.
func (rl RegistryList) Rows() [][]string {
	rows := make([][]string, 0, len(rl))
	for _, r := range rl {
		rows = append(rows, []string{
			r.ID,
			r.State,
			cmdutil.EmptyOr(r.ServerID, "-"),
			cmdutil.EmptyOr(strings.Join(r.Zones, ","), "-"),
		})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	registries, err := client.Registries()
	if err != nil {
		return fmt.Errorf("failed to list registries: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, registries, len(registries) == 0, "No registries configured.", RegistryList(registries))
}
