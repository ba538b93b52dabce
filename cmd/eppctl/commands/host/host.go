// Package host implements host object commands for eppctl.
package host

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/internal/commands"
)

// Cmd is the parent command for host operations.
var Cmd = &cobra.Command{
	Use:   "host",
	Short: "Host (nameserver) operations",
	Long: `Run EPP host commands through the proxy.

Host names are routed by zone like domains; pass --registry for hosts
under zones the proxy does not serve.

Examples:
  # Check availability
  eppctl host check ns1.example.com

  # Register a host with glue
  eppctl host create ns1.example.com --addr 192.0.2.1 --addr 2001:db8::1

  # Rename a host
  eppctl host update ns1.example.com --new-name ns9.example.com`,
}

func init() {
	Cmd.AddCommand(checkCmd)
	Cmd.AddCommand(infoCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(deleteCmd)
}

// parseAddresses classifies repeated address flags as v4 or v6.
func parseAddresses(values []string) []commands.HostAddress {
	var out []commands.HostAddress
	for _, addr := range values {
		out = append(out, commands.HostAddress{Address: addr, V6: strings.Contains(addr, ":")})
	}
	return out
}

// parseStatuses parses repeated status[=reason] values.
func parseStatuses(values []string) []commands.HostStatus {
	var out []commands.HostStatus
	for _, value := range values {
		status, reason, _ := strings.Cut(value, "=")
		out = append(out, commands.HostStatus{Status: status, Reason: reason})
	}
	return out
}
