package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/commands"
)

var (
	restoreReport     bool
	restorePreData    string
	restorePostData   string
	restoreDeleted    string
	restoreRestored   string
	restoreReason     string
	restoreStatements []string
)

var restoreCmd = &cobra.Command{
	Use:   "restore <domain>",
	Short: "Restore a deleted domain (RGP)",
	Long: `Recover a domain from the redemption grace period.

Without --report this sends the initial restore request. Registries
that demand a restore report afterwards get it with --report and the
report fields.

Examples:
  # Initial restore request
  eppctl domain restore example.com

  # File the restore report
  eppctl domain restore example.com --report \
    --pre-data "registration data before deletion" \
    --post-data "registration data after restore" \
    --deleted 2026-08-01T12:00:00Z --restored 2026-08-20T09:30:00Z \
    --reason "Registrant error" \
    --statement "This registrar has not restored the name to assume the rights of the former registrant"`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().BoolVar(&restoreReport, "report", false, "File the restore report instead of the initial request")
	restoreCmd.Flags().StringVar(&restorePreData, "pre-data", "", "Registration data before deletion")
	restoreCmd.Flags().StringVar(&restorePostData, "post-data", "", "Registration data after restore")
	restoreCmd.Flags().StringVar(&restoreDeleted, "deleted", "", "Deletion time (RFC 3339)")
	restoreCmd.Flags().StringVar(&restoreRestored, "restored", "", "Restore time (RFC 3339)")
	restoreCmd.Flags().StringVar(&restoreReason, "reason", "", "Restore reason")
	restoreCmd.Flags().StringArrayVar(&restoreStatements, "statement", nil, "Report statement (repeatable)")
}

func runRestore(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	req := commands.DomainRestoreRequest{Domain: args[0]}
	if restoreReport {
		deleted, err := time.Parse(time.RFC3339, restoreDeleted)
		if err != nil {
			return fmt.Errorf("invalid --deleted time %q: expected RFC 3339", restoreDeleted)
		}
		restored, err := time.Parse(time.RFC3339, restoreRestored)
		if err != nil {
			return fmt.Errorf("invalid --restored time %q: expected RFC 3339", restoreRestored)
		}
		req.Report = &commands.RestoreReport{
			PreData:    restorePreData,
			PostData:   restorePostData,
			Deleted:    deleted,
			Restored:   restored,
			Reason:     restoreReason,
			Statements: restoreStatements,
		}
	}

	resp, env, err := client.DomainRestore(cmdutil.Target(args[0]), req)
	if err != nil {
		return fmt.Errorf("domain restore failed: %w", err)
	}

	msg := fmt.Sprintf("Restore for '%s' submitted", args[0])
	if len(resp.Statuses) > 0 {
		msg += " (" + strings.Join(resp.Statuses, ", ") + ")"
	}
	return cmdutil.PrintEnvelope(env, msg)
}
