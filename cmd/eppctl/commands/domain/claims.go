package domain

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/commands"
)

var claimsPhase string

var claimsCheckCmd = &cobra.Command{
	Use:   "claims-check <domain>...",
	Short: "Check for trademark claims",
	Long: `Check whether trademark claims exist for one or more names.

Registration of a name with claims requires retrieving the claims
notice from the validator and sending the notice id on create.

Examples:
  # Check claims in the default phase
  eppctl domain claims-check example.tld

  # Check in a custom launch phase
  eppctl domain claims-check example.tld --phase landrush`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClaimsCheck,
}

func init() {
	claimsCheckCmd.Flags().StringVar(&claimsPhase, "phase", "", "Launch phase (default: claims)")
}

// ClaimsResults renders claims rows.
type ClaimsResults []commands.ClaimsCheckResult

// Headers implements TableRenderer.
func (cr ClaimsResults) Headers() []string {
	return []string{"DOMAIN", "CLAIMS", "CLAIM KEYS"}
}

// Rows implements TableRenderer.
func (cr ClaimsResults) Rows() [][]string {
	rows := make([][]string, 0, len(cr))
	for _, r := range cr {
		keys := "-"
		if len(r.ClaimKeys) > 0 {
			keys = ""
			for i, key := range r.ClaimKeys {
				if i > 0 {
					keys += " "
				}
				keys += key.Key
			}
		}
		rows = append(rows, []string{r.Name, cmdutil.BoolToYesNo(r.Exists), keys})
	}
	return rows
}

func runClaimsCheck(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	req := commands.DomainClaimsCheckRequest{Domains: args, Phase: claimsPhase}
	resp, _, err := client.DomainClaimsCheck(cmdutil.Target(args[0]), req)
	if err != nil {
		return fmt.Errorf("claims check failed: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, resp.Results, len(resp.Results) == 0, "No results.", ClaimsResults(resp.Results))
}
