// Package domain implements domain object commands for eppctl.
package domain

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/internal/commands"
)

// Cmd is the parent command for domain operations.
var Cmd = &cobra.Command{
	Use:   "domain",
	Short: "Domain operations",
	Long: `Run EPP domain commands through the proxy.

The target registry is resolved from the domain name's zone; pass
--registry to pin it explicitly.

Examples:
  # Check availability
  eppctl domain check example.com example.net

  # Fetch a domain
  eppctl domain info example.com

  # Register for two years
  eppctl domain create example.com --period 2 --registrant C123 --auth-info secret99

  # Renew against the known expiry
  eppctl domain renew example.com --expiry 2027-03-01 --period 1

  # Request an inbound transfer
  eppctl domain transfer request example.com --auth-info secret99`,
}

func init() {
	Cmd.AddCommand(checkCmd)
	Cmd.AddCommand(claimsCheckCmd)
	Cmd.AddCommand(infoCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(renewCmd)
	Cmd.AddCommand(transferCmd)
	Cmd.AddCommand(restoreCmd)
}

// parseContacts parses repeated role=id pairs (admin=C123).
func parseContacts(pairs []string) ([]commands.DomainContact, error) {
	var out []commands.DomainContact
	for _, pair := range pairs {
		role, id, ok := strings.Cut(pair, "=")
		if !ok || role == "" || id == "" {
			return nil, fmt.Errorf("invalid contact %q: expected role=id (e.g. admin=C123)", pair)
		}
		out = append(out, commands.DomainContact{Role: role, ID: id})
	}
	return out, nil
}

// parseNameservers parses repeated host[=addr[,addr...]] values. Addresses
// make the entry a host-attribute with glue; bare names are host objects.
func parseNameservers(values []string) []commands.Nameserver {
	var out []commands.Nameserver
	for _, value := range values {
		host, addrList, hasGlue := strings.Cut(value, "=")
		ns := commands.Nameserver{Host: host}
		if hasGlue {
			for _, addr := range strings.Split(addrList, ",") {
				addr = strings.TrimSpace(addr)
				if addr == "" {
					continue
				}
				if strings.Contains(addr, ":") {
					ns.V6 = append(ns.V6, addr)
				} else {
					ns.V4 = append(ns.V4, addr)
				}
			}
		}
		out = append(out, ns)
	}
	return out
}

// parseStatuses parses repeated status[=reason] values.
func parseStatuses(values []string) []commands.DomainStatus {
	var out []commands.DomainStatus
	for _, value := range values {
		status, reason, _ := strings.Cut(value, "=")
		out = append(out, commands.DomainStatus{Status: status, Reason: reason})
	}
	return out
}
