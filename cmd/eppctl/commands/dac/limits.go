package dac

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/cli/output"
	"github.com/registryops/eppproxy/internal/commands"
)

var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Query the remaining DAC allowance",
	Long: `Query the remaining query allowance per rate window.

Examples:
  eppctl dac limits -r nominet --env time-delay`,
	Args: cobra.NoArgs,
	RunE: runLimits,
}

func runLimits(cmd *cobra.Command, args []string) error {
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

	resp, _, err := client.DACLimits(target, commands.DACLimitsRequest{Environment: env})
	if err != nil {
		return fmt.Errorf("dac limits failed: %w", err)
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
		fmt.Printf("Remaining in the 60-second window: %d\n", resp.Limit60)
		fmt.Printf("Remaining in the 24-hour window:   %d\n", resp.Limit24h)
	}
	return nil
}
