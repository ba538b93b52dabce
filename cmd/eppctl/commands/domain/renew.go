package domain

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/commands"
)

var (
	renewExpiry string
	renewPeriod int
)

var renewCmd = &cobra.Command{
	Use:   "renew <domain>",
	Short: "Renew a domain",
	Long: `Extend a domain registration.

The current expiry date guards against double renewal; the registry
rejects the command when it does not match.

Examples:
  # Renew one year
  eppctl domain renew example.com --expiry 2027-03-01

  # Renew five years
  eppctl domain renew example.com --expiry 2027-03-01 --period 5`,
	Args: cobra.ExactArgs(1),
	RunE: runRenew,
}

func init() {
	renewCmd.Flags().StringVar(&renewExpiry, "expiry", "", "Current expiry date as YYYY-MM-DD (required)")
	renewCmd.Flags().IntVar(&renewPeriod, "period", 0, "Renewal period in years (0: server default)")
	_ = renewCmd.MarkFlagRequired("expiry")
}

func runRenew(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	expiry, err := time.Parse("2006-01-02", renewExpiry)
	if err != nil {
		return fmt.Errorf("invalid expiry date %q: expected YYYY-MM-DD", renewExpiry)
	}

	req := commands.DomainRenewRequest{Domain: args[0], CurrentExpiry: expiry, Period: renewPeriod}
	resp, env, err := client.DomainRenew(cmdutil.Target(args[0]), req)
	if err != nil {
		return fmt.Errorf("domain renew failed: %w", err)
	}

	msg := fmt.Sprintf("Domain '%s' renewed", resp.Name)
	if !resp.Expires.IsZero() {
		msg += fmt.Sprintf(" (new expiry %s)", resp.Expires.UTC().Format(time.RFC3339))
	}
	return cmdutil.PrintEnvelope(env, msg)
}
