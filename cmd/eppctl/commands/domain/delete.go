package domain

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/commands"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <domain>",
	Short: "Delete a domain",
	Long: `Delete a domain name.

Most registries answer 1001 and move the name into the redemption
grace period, from which 'eppctl domain restore' can recover it.

Examples:
  # Delete with confirmation
  eppctl domain delete example.com

  # Delete without confirmation
  eppctl domain delete example.com --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	return cmdutil.RunDeleteWithConfirmation("Domain", args[0], deleteForce, func() error {
		_, env, err := client.DomainDelete(cmdutil.Target(args[0]), commands.DomainDeleteRequest{Domain: args[0]})
		if err != nil {
			return fmt.Errorf("domain delete failed: %w", err)
		}
		if env.Pending {
			fmt.Println("The registry queued the delete; watch the poll queue for the outcome.")
		}
		return nil
	})
}
