// Package eurid implements EURid registrar commands for eppctl.
package eurid

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for EURid operations.
var Cmd = &cobra.Command{
	Use:   "eurid",
	Short: "EURid registrar operations",
	Long: `Query EURid registrar state: hit points, the monthly registration
limit, and per-domain DNS quality and DNSSEC discount eligibility.

Examples:
  eppctl eurid hit-points -r eurid
  eppctl eurid dns-quality example.eu`,
}

func init() {
	Cmd.AddCommand(hitPointsCmd)
	Cmd.AddCommand(registrationLimitCmd)
	Cmd.AddCommand(dnsQualityCmd)
	Cmd.AddCommand(dnssecEligibilityCmd)
}
