// Package nominet implements Nominet registrar commands for eppctl.
package nominet

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for Nominet operations.
var Cmd = &cobra.Command{
	Use:   "nominet",
	Short: "Nominet registrar operations",
	Long: `Run Nominet-specific registrar commands: the tag directory,
registrar-to-registrar releases, handshake cases, and investigation
locks.

Examples:
  eppctl nominet tag-list -r nominet
  eppctl nominet release example.co.uk --tag OTHERTAG
  eppctl nominet handshake approve --case-id 1234`,
}

func init() {
	Cmd.AddCommand(tagListCmd)
	Cmd.AddCommand(handshakeCmd)
	Cmd.AddCommand(releaseCmd)
	Cmd.AddCommand(lockCmd)
	Cmd.AddCommand(unlockCmd)
}
