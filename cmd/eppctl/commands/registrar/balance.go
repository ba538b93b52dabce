// Package registrar implements registrar account commands for eppctl.
package registrar

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/cli/output"
)

// BalanceCmd queries the registrar account balance.
var BalanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Query the account balance",
	Long: `Query the registrar account balance on registries that support the
Verisign balance namespace.

Examples:
  eppctl balance -r verisign-com`,
	Args: cobra.NoArgs,
	RunE: runBalance,
}

func runBalance(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}
	target, err := cmdutil.RegistryTarget()
	if err != nil {
		return err
	}

	resp, _, err := client.BalanceInfo(target)
	if err != nil {
		return fmt.Errorf("balance query failed: %w", err)
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
		fmt.Printf("Balance:          %s\n", resp.Balance)
		fmt.Printf("Credit limit:     %s\n", resp.CreditLimit)
		fmt.Printf("Available credit: %s\n", resp.AvailableCredit)
		if resp.ThresholdFixed != "" {
			fmt.Printf("Threshold:        %s\n", resp.ThresholdFixed)
		}
		if resp.ThresholdPercent != "" {
			fmt.Printf("Threshold:        %s%%\n", resp.ThresholdPercent)
		}
	}
	return nil
}
