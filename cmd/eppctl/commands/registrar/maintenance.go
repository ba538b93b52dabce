package registrar

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/cli/output"
	"github.com/registryops/eppproxy/internal/commands"
)

// MaintenanceCmd is the parent command for maintenance window queries.
var MaintenanceCmd = &cobra.Command{
	Use:   "maintenance",
	Short: "Registry maintenance windows",
	Long: `Query scheduled maintenance windows on registries that support
RFC 9167.

Examples:
  eppctl maintenance list -r verisign-com
  eppctl maintenance info 2e6df9b0-4092-4491-bcc8-9fb2166dcee6 -r verisign-com`,
}

func init() {
	MaintenanceCmd.AddCommand(maintenanceListCmd)
	MaintenanceCmd.AddCommand(maintenanceInfoCmd)
}

var maintenanceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scheduled windows",
	Args:  cobra.NoArgs,
	RunE:  runMaintenanceList,
}

var maintenanceInfoCmd = &cobra.Command{
	Use:   "info <id>",
	Short: "Fetch one window",
	Args:  cobra.ExactArgs(1),
	RunE:  runMaintenanceInfo,
}

// MaintenanceList renders window summaries.
type MaintenanceList []commands.MaintenanceListItem

// Headers implements TableRenderer.
func (ml MaintenanceList) Headers() []string {
	return []string{"ID", "NAME", "START", "END"}
}

// Rows implements TableRenderer.
func (ml MaintenanceList) Rows() [][]string {
	rows := make([][]string, 0, len(ml))
	for _, item := range ml {
		rows = append(rows, []string{
			item.ID,
			cmdutil.EmptyOr(item.Name, "-"),
			item.Start.UTC().Format(time.RFC3339),
			item.End.UTC().Format(time.RFC3339),
		})
	}
	return rows
}

func runMaintenanceList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}
	target, err := cmdutil.RegistryTarget()
	if err != nil {
		return err
	}

	resp, _, err := client.MaintenanceList(target)
	if err != nil {
		return fmt.Errorf("maintenance list failed: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, resp.Items, len(resp.Items) == 0, "No maintenance windows scheduled.", MaintenanceList(resp.Items))
}

func runMaintenanceInfo(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}
	target, err := cmdutil.RegistryTarget()
	if err != nil {
		return err
	}

	resp, _, err := client.MaintenanceInfo(target, commands.MaintenanceInfoRequest{ID: args[0]})
	if err != nil {
		return fmt.Errorf("maintenance info failed: %w", err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, resp)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, resp)
	default:
		fmt.Printf("Maintenance: %s\n", resp.ID)
		if resp.Name != "" {
			fmt.Printf("  Name:        %s\n", resp.Name)
		}
		if len(resp.Types) > 0 {
			fmt.Printf("  Types:       %s\n", strings.Join(resp.Types, ", "))
		}
		fmt.Printf("  Environment: %s\n", cmdutil.EmptyOr(resp.Environment, "-"))
		fmt.Printf("  Start:       %s\n", resp.Start.UTC().Format(time.RFC3339))
		fmt.Printf("  End:         %s\n", resp.End.UTC().Format(time.RFC3339))
		if resp.Reason != "" {
			fmt.Printf("  Reason:      %s\n", resp.Reason)
		}
		if resp.Detail != "" {
			fmt.Printf("  Detail:      %s\n", resp.Detail)
		}
		for _, line := range resp.Description {
			fmt.Printf("  Description: %s\n", line)
		}
		if len(resp.TLDs) > 0 {
			fmt.Printf("  TLDs:        %s\n", strings.Join(resp.TLDs, ", "))
		}
		for _, sys := range resp.Systems {
			fmt.Printf("  System:      %s (%s) impact %s\n", sys.Name, sys.Host, sys.Impact)
		}
	}
	return nil
}
