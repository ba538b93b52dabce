package dac

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/cli/output"
	"github.com/registryops/eppproxy/internal/commands"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Query DAC usage counters",
	Long: `Query query volume over the 60-second and 24-hour windows.

Examples:
  eppctl dac usage -r nominet`,
	Args: cobra.NoArgs,
	RunE: runUsage,
}

func runUsage(cmd *cobra.Command, args []string) error {
	env, err := environment()
	if err != nil {
		return err
	}
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}
	target, err := cmdutil.RegistryTarget()
	if err != nil {
		return err
	}

	resp, _, err := client.DACUsage(target, commands.DACUsageRequest{Environment: env})
	if err != nil {
		return fmt.Errorf("dac usage failed: %w", err)
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
		fmt.Printf("Queries in the last 60 seconds: %d\n", resp.Usage60)
		fmt.Printf("Queries in the last 24 hours:   %d\n", resp.Usage24h)
	}
	return nil
}
