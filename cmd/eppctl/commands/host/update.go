package host

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/commands"
)

var (
	updateAddAddrs  []string
	updateRmAddrs   []string
	updateAddStatus []string
	updateRmStatus  []string
	updateNewName   string
)

var updateCmd = &cobra.Command{
	Use:   "update <host>",
	Short: "Update a host",
	Long: `Add and remove host addresses or statuses, or rename the host.

At least one change must be given.

Examples:
  # Change a glue address
  eppctl host update ns1.example.com --add-addr 192.0.2.9 --rm-addr 192.0.2.1

  # Rename
  eppctl host update ns1.example.com --new-name ns9.example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringArrayVar(&updateAddAddrs, "add-addr", nil, "Address to add (repeatable)")
	updateCmd.Flags().StringArrayVar(&updateRmAddrs, "rm-addr", nil, "Address to remove (repeatable)")
	updateCmd.Flags().StringArrayVar(&updateAddStatus, "add-status", nil, "Status to add (repeatable)")
	updateCmd.Flags().StringArrayVar(&updateRmStatus, "rm-status", nil, "Status to remove (repeatable)")
	updateCmd.Flags().StringVar(&updateNewName, "new-name", "", "New host name")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	req := commands.HostUpdateRequest{
		Host:            args[0],
		AddAddresses:    parseAddresses(updateAddAddrs),
		RemoveAddresses: parseAddresses(updateRmAddrs),
		AddStatuses:     parseStatuses(updateAddStatus),
		RemoveStatuses:  parseStatuses(updateRmStatus),
		NewName:         updateNewName,
	}

	_, env, err := client.HostUpdate(cmdutil.Target(args[0]), req)
	if err != nil {
		return fmt.Errorf("host update failed: %w", err)
	}

	return cmdutil.PrintEnvelope(env, fmt.Sprintf("Host '%s' updated", args[0]))
}
