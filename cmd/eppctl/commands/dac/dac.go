// Package dac implements Nominet DAC commands for eppctl.
package dac

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/internal/commands"
)

// Cmd is the parent command for DAC operations.
var Cmd = &cobra.Command{
	Use:   "dac",
	Short: "Nominet DAC queries",
	Long: `Query the Nominet Domain Availability Checker.

DAC answers come from the registry's line-protocol endpoints, not the
EPP session, and are subject to their own rate limits. The time-delay
environment serves answers on a delay with looser limits.

Examples:
  eppctl dac domain example.co.uk -r nominet
  eppctl dac usage -r nominet --env time-delay`,
}

var envFlag string

func init() {
	Cmd.PersistentFlags().StringVar(&envFlag, "env", "real-time", "DAC environment: real-time or time-delay")
	Cmd.AddCommand(domainCmd)
	Cmd.AddCommand(usageCmd)
	Cmd.AddCommand(limitsCmd)
}

func environment() (commands.DACEnvironment, error) {
	switch commands.DACEnvironment(envFlag) {
	case commands.DACRealTime:
		return commands.DACRealTime, nil
	case commands.DACTimeDelay:
		return commands.DACTimeDelay, nil
	}
	return "", fmt.Errorf("unknown DAC environment %q, use real-time or time-delay", envFlag)
}
