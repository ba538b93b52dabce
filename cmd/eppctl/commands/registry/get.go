package registry

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/cli/output"
)

var getCmd = &cobra.Command{
	Use:     "get <id>",
	Aliases: []string{"status"},
	Short:   "Show one registry",
	Long: `Show the session state of one registry.

Examples:
  # Show the verisign session
  eppctl registry get verisign

  # As JSON
  eppctl registry get verisign -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	reg, err := client.Registry(args[0])
	if err != nil {
		return fmt.Errorf("failed to get registry: %w", err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, reg)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, reg)
	default:
		fmt.Printf("Registry: %s\n", reg.ID)
		fmt.Printf("  State:   %s\n", reg.State)
		fmt.Printf("  Server:  %s\n", cmdutil.EmptyOr(reg.ServerID, "-"))
		fmt.Printf("  Zones:   %s\n", cmdutil.EmptyOr(strings.Join(reg.Zones, ", "), "-"))
	}
	return nil
}
