package host

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/commands"
)

var checkCmd = &cobra.Command{
	Use:   "check <host>...",
	Short: "Check host availability",
	Long: `Check availability for one or more host names.

Examples:
  eppctl host check ns1.example.com ns2.example.com`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

// CheckResults renders availability rows.
type CheckResults []commands.HostCheckResult

// Headers implements TableRenderer.
func (cr CheckResults) Headers() []string {
	return []string{"HOST", "AVAILABLE", "REASON"}
}

// Rows implements TableRenderer.
func (cr CheckResults) Rows() [][]string {
	rows := make([][]string, 0, len(cr))
	for _, r := range cr {
		rows = append(rows, []string{r.Name, cmdutil.BoolToYesNo(r.Available), cmdutil.EmptyOr(r.Reason, "-")})
	}
	return rows
}

func runCheck(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	resp, _, err := client.HostCheck(cmdutil.Target(args[0]), commands.HostCheckRequest{Hosts: args})
	if err != nil {
		return fmt.Errorf("host check failed: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, resp.Results, len(resp.Results) == 0, "No results.", CheckResults(resp.Results))
}
