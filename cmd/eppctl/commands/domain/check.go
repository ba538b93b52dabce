package domain

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/commands"
)

var checkCmd = &cobra.Command{
	Use:   "check <domain>...",
	Short: "Check domain availability",
	Long: `Check availability for one or more domain names.

All names in one invocation must belong to the same registry.

Examples:
  # Check a single name
  eppctl domain check example.com

  # Check several names at once
  eppctl domain check example.com example.net example.org`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

// CheckResults renders availability rows.
type CheckResults []commands.DomainCheckResult

// Headers implements TableRenderer.
func (cr CheckResults) Headers() []string {
	return []string{"DOMAIN", "AVAILABLE", "REASON"}
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

	resp, _, err := client.DomainCheck(cmdutil.Target(args[0]), commands.DomainCheckRequest{Domains: args})
	if err != nil {
		return fmt.Errorf("domain check failed: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, resp.Results, len(resp.Results) == 0, "No results.", CheckResults(resp.Results))
}
