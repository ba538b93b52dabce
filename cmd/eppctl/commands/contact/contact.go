// Package contact implements contact object commands for eppctl.
package contact

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/internal/commands"
)

// Cmd is the parent command for contact operations.
var Cmd = &cobra.Command{
	Use:   "contact",
	Short: "Contact operations",
	Long: `Run EPP contact commands through the proxy.

Contact ids carry no zone, so these commands always need an explicit
--registry.

Examples:
  # Check availability
  eppctl contact check sh8013 -r verisign-com

  # Register a contact
  eppctl contact create sh8013 -r verisign-com \
    --name "John Doe" --street "123 Example Dr" --city Dulles \
    --province VA --postal-code 20166 --country US \
    --email jdoe@example.com`,
}

func init() {
	Cmd.AddCommand(checkCmd)
	Cmd.AddCommand(infoCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(transferCmd)
}

// parseStatuses parses repeated status[=reason] values.
func parseStatuses(values []string) []commands.ContactStatus {
	var out []commands.ContactStatus
	for _, value := range values {
		status, reason, _ := strings.Cut(value, "=")
		out = append(out, commands.ContactStatus{Status: status, Reason: reason})
	}
	return out
}
