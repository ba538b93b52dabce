package host

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/commands"
)

var createAddrs []string

var createCmd = &cobra.Command{
	Use:   "create <host>",
	Short: "Register a host",
	Long: `Register a host object.

Glue addresses are required when the host is subordinate to a domain
the registry serves, and forbidden otherwise.

Examples:
  # External host, no glue
  eppctl host create ns1.example.net

  # In-zone host with glue
  eppctl host create ns1.example.com --addr 192.0.2.1 --addr 2001:db8::1`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringArrayVar(&createAddrs, "addr", nil, "Glue address, v4 or v6 (repeatable)")
}

func runCreate(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	req := commands.HostCreateRequest{Host: args[0], Addresses: parseAddresses(createAddrs)}
	resp, env, err := client.HostCreate(cmdutil.Target(args[0]), req)
	if err != nil {
		return fmt.Errorf("host create failed: %w", err)
	}

	return cmdutil.PrintEnvelope(env, fmt.Sprintf("Host '%s' registered", resp.Name))
}
