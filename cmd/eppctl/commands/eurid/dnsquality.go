package eurid

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/cli/output"
	"github.com/registryops/eppproxy/internal/commands"
)

var dnsQualityCmd = &cobra.Command{
	Use:   "dns-quality <domain>",
	Short: "Query a domain's DNS quality score",
	Long: `Query the DNS quality score EURid computed for a domain.

Examples:
  eppctl eurid dns-quality example.eu`,
	Args: cobra.ExactArgs(1),
	RunE: runDNSQuality,
}

func runDNSQuality(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	resp, _, err := client.EuridDNSQuality(cmdutil.Target(args[0]), commands.EuridDNSQualityRequest{Domain: args[0]})
	if err != nil {
		return fmt.Errorf("dns quality query failed: %w", err)
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
		fmt.Printf("  Score: %s\n", cmdutil.EmptyOr(resp.Score, "-"))
		if !resp.CheckedAt.IsZero() {
			fmt.Printf("  Checked: %s\n", resp.CheckedAt.UTC().Format(time.RFC3339))
		}
	}
	return nil
}
