package host

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/commands"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <host>",
	Short: "Delete a host",
	Long: `Delete a host object.

The registry rejects the delete while domains still delegate to the
host.

Examples:
  eppctl host delete ns1.example.com --force`,
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

	return cmdutil.RunDeleteWithConfirmation("Host", args[0], deleteForce, func() error {
		_, _, err := client.HostDelete(cmdutil.Target(args[0]), commands.HostDeleteRequest{Host: args[0]})
		if err != nil {
			return fmt.Errorf("host delete failed: %w", err)
		}
		return nil
	})
}
