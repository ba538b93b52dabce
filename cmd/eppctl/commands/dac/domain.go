package dac

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/cli/output"
	"github.com/registryops/eppproxy/internal/commands"
)

var domainCmd = &cobra.Command{
	Use:   "domain <name>",
	Short: "Query a domain's registration state",
	Long: `Query a domain's registration state over DAC.

Examples:
  eppctl dac domain example.co.uk -r nominet`,
	Args: cobra.ExactArgs(1),
	RunE: runDomain,
}

func runDomain(cmd *cobra.Command, args []string) error {
	env, err := environment()
	if err != nil {
		return err
	}
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	req := commands.DACDomainRequest{Domain: args[0], Environment: env}
	resp, _, err := client.DACDomain(cmdutil.Target(args[0]), req)
	if err != nil {
		return fmt.Errorf("dac query failed: %w", err)
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
		fmt.Printf("Domain: %s\n", resp.Domain)
		fmt.Printf("  Registered: %s\n", cmdutil.BoolToYesNo(resp.Registered))
		if resp.Registered {
			fmt.Printf("  Tag:        %s\n", cmdutil.EmptyOr(resp.Tag, "-"))
			fmt.Printf("  Detagged:   %s\n", cmdutil.BoolToYesNo(resp.Detagged))
			if !resp.Created.IsZero() {
				fmt.Printf("  Created:    %s\n", resp.Created.UTC().Format(time.RFC3339))
			}
			if !resp.Expires.IsZero() {
				fmt.Printf("  Expires:    %s\n", resp.Expires.UTC().Format(time.RFC3339))
			}
		}
	}
	return nil
}
