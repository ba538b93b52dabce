package contact

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/commands"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a contact",
	Long: `Delete a contact object.

The registry rejects the delete while objects still reference the
contact.

Examples:
  eppctl contact delete sh8013 -r verisign-com --force`,
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
	target, err := cmdutil.RegistryTarget()
	if err != nil {
		return err
	}

	return cmdutil.RunDeleteWithConfirmation("Contact", args[0], deleteForce, func() error {
		_, _, err := client.ContactDelete(target, commands.ContactDeleteRequest{ID: args[0]})
		if err != nil {
			return fmt.Errorf("contact delete failed: %w", err)
		}
		return nil
	})
}
