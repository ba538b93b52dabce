package eurid

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/cli/output"
)

var hitPointsCmd = &cobra.Command{
	Use:   "hit-points",
	Short: "Query hit-point consumption",
	Long: `Query how many hit points the registrar account has consumed and
whether the account is blocked.

Examples:
  eppctl eurid hit-points -r eurid`,
	Args: cobra.NoArgs,
	RunE: runHitPoints,
}

func runHitPoints(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}
	target, err := cmdutil.RegistryTarget()
	if err != nil {
		return err
	}

	resp, _, err := client.EuridHitPoints(target)
	if err != nil {
		return fmt.Errorf("hit points query failed: %w", err)
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
		fmt.Printf("Hit points: %d of %d\n", resp.HitPoints, resp.MaxHitPoints)
		if !resp.BlockedUntil.IsZero() {
			fmt.Printf("Blocked until: %s\n", resp.BlockedUntil.UTC().Format(time.RFC3339))
		}
	}
	return nil
}
