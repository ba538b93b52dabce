package mark

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/commands"
)

var checkCmd = &cobra.Command{
	Use:   "check <id>...",
	Short: "Check mark id availability",
	Long: `Check availability for one or more mark ids.

Examples:
  eppctl mark check 0000061234-1 -r tmch`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

// CheckResults renders availability rows.
type CheckResults []commands.MarkCheckResult

// Headers implements TableRenderer.
func (cr CheckResults) Headers() []string {
	return []string{"ID", "AVAILABLE", "REASON"}
}

// Rows implements TableRenderer.
func (cr CheckResults) Rows() [][]string {
	rows := make([][]string, 0, len(cr))
	for _, r := range cr {
		rows = append(rows, []string{r.ID, cmdutil.BoolToYesNo(r.Available), cmdutil.EmptyOr(r.Reason, "-")})
	}
	return rows
}

func runCheck(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}
	target, err := cmdutil.RegistryTarget()
	if err != nil {
		return err
	}

	resp, _, err := client.MarkCheck(target, commands.MarkCheckRequest{IDs: args})
	if err != nil {
		return fmt.Errorf("mark check failed: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, resp.Results, len(resp.Results) == 0, "No results.", CheckResults(resp.Results))
}
