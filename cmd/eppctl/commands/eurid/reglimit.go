package eurid

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/cli/output"
)

var registrationLimitCmd = &cobra.Command{
	Use:   "registration-limit",
	Short: "Query the monthly registration limit",
	Long: `Query this month's registration count against the account cap.

Examples:
  eppctl eurid registration-limit -r eurid`,
	Args: cobra.NoArgs,
	RunE: runRegistrationLimit,
}

func runRegistrationLimit(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}
	target, err := cmdutil.RegistryTarget()
	if err != nil {
		return err
	}

	resp, _, err := client.EuridRegistrationLimit(target)
	if err != nil {
		return fmt.Errorf("registration limit query failed: %w", err)
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
		if resp.MaxMonthly != nil {
			fmt.Printf("Registrations this month: %d of %d\n", resp.Monthly, *resp.MaxMonthly)
		} else {
			fmt.Printf("Registrations this month: %d (no cap)\n", resp.Monthly)
		}
		if !resp.LimitedUntil.IsZero() {
			fmt.Printf("Limited until: %s\n", resp.LimitedUntil.UTC().Format(time.RFC3339))
		}
	}
	return nil
}
