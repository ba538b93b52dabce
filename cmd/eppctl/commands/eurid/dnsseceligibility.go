package eurid

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/cli/output"
	"github.com/registryops/eppproxy/internal/commands"
)

var dnssecEligibilityCmd = &cobra.Command{
	Use:   "dnssec-eligibility <domain>",
	Short: "Query DNSSEC discount eligibility",
	Long: `Query whether a domain qualifies for the DNSSEC discount.

Examples:
  eppctl eurid dnssec-eligibility example.eu`,
	Args: cobra.ExactArgs(1),
	RunE: runDNSSECEligibility,
}

func runDNSSECEligibility(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	req := commands.EuridDNSSECEligibilityRequest{Domain: args[0]}
	resp, _, err := client.EuridDNSSECEligibility(cmdutil.Target(args[0]), req)
	if err != nil {
		return fmt.Errorf("dnssec eligibility query failed: %w", err)
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
		fmt.Printf("Domain: %s\n", resp.Name)
		fmt.Printf("  Eligible: %s\n", cmdutil.BoolToYesNo(resp.Eligible))
		if resp.Message != "" {
			fmt.Printf("  Message:  %s (code %d)\n", resp.Message, resp.Code)
		}
	}
	return nil
}
