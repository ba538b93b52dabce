package mark

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
	Use:   "renew <id>",
	Short: "Renew a mark",
	Long: `Extend a mark registration. The current expiry date guards against
double renewal.

Examples:
  eppctl mark renew 0000061234-1 -r tmch --expiry 2027-03-01 --period 1`,
	Args: cobra.ExactArgs(1),
	RunE: runRenew,
}

func init() {
	renewCmd.Flags().StringVar(&renewExpiry, "expiry", "", "Current expiry date, YYYY-MM-DD (required)")
	renewCmd.Flags().IntVar(&renewPeriod, "period", 0, "Renewal period in years")
	_ = renewCmd.MarkFlagRequired("expiry")
}

func runRenew(cmd *cobra.Command, args []string) error {
	expiry, err := time.Parse("2006-01-02", renewExpiry)
	if err != nil {
		return fmt.Errorf("invalid expiry date %q, expected YYYY-MM-DD", renewExpiry)
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}
	target, err := cmdutil.RegistryTarget()
	if err != nil {
		return err
	}

	req := commands.MarkRenewRequest{ID: args[0], CurrentExpiry: expiry, Period: renewPeriod}
	resp, env, err := client.MarkRenew(target, req)
	if err != nil {
		return fmt.Errorf("mark renew failed: %w", err)
	}

	msg := fmt.Sprintf("Mark '%s' renewed", resp.ID)
	if !resp.Expires.IsZero() {
		msg = fmt.Sprintf("%s (expires %s)", msg, resp.Expires.UTC().Format("2006-01-02"))
	}
	return cmdutil.PrintEnvelope(env, msg)
}
