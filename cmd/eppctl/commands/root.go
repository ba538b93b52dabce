// Package commands implements the CLI commands for the eppctl client.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	contactcmd "github.com/registryops/eppproxy/cmd/eppctl/commands/contact"
	ctxcmd "github.com/registryops/eppproxy/cmd/eppctl/commands/context"
	daccmd "github.com/registryops/eppproxy/cmd/eppctl/commands/dac"
	domaincmd "github.com/registryops/eppproxy/cmd/eppctl/commands/domain"
	euridcmd "github.com/registryops/eppproxy/cmd/eppctl/commands/eurid"
	hostcmd "github.com/registryops/eppproxy/cmd/eppctl/commands/host"
	markcmd "github.com/registryops/eppproxy/cmd/eppctl/commands/mark"
	nominetcmd "github.com/registryops/eppproxy/cmd/eppctl/commands/nominet"
	pollcmd "github.com/registryops/eppproxy/cmd/eppctl/commands/poll"
	registrarcmd "github.com/registryops/eppproxy/cmd/eppctl/commands/registrar"
	registrycmd "github.com/registryops/eppproxy/cmd/eppctl/commands/registry"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "eppctl",
	Short: "eppctl - EPP proxy command-line client",
	Long: `eppctl is the command-line client for an eppproxy server.

Use this tool to run EPP commands (domains, hosts, contacts, poll
queue) against any registry the proxy is connected to, through the
proxy's HTTP API. Commands that carry a domain name are routed to the
right registry by zone; everything else needs --registry.

Use "eppctl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Sync flags to cmdutil.Flags for subcommands
		cmdutil.Flags.ServerURL, _ = cmd.Flags().GetString("server")
		cmdutil.Flags.Token, _ = cmd.Flags().GetString("token")
		cmdutil.Flags.Registry, _ = cmd.Flags().GetString("registry")
		cmdutil.Flags.Output, _ = cmd.Flags().GetString("output")
		cmdutil.Flags.NoColor, _ = cmd.Flags().GetBool("no-color")
		cmdutil.Flags.Verbose, _ = cmd.Flags().GetBool("verbose")
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().String("server", "", "Server URL (overrides stored credential)")
	rootCmd.PersistentFlags().String("token", "", "Bearer token (overrides stored credential)")
	rootCmd.PersistentFlags().StringP("registry", "r", "", "Target registry id (commands with a domain argument route by zone when omitted)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table|json|yaml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(ctxcmd.Cmd)
	rootCmd.AddCommand(registrycmd.Cmd)
	rootCmd.AddCommand(domaincmd.Cmd)
	rootCmd.AddCommand(hostcmd.Cmd)
	rootCmd.AddCommand(contactcmd.Cmd)
	rootCmd.AddCommand(pollcmd.Cmd)
	rootCmd.AddCommand(registrarcmd.BalanceCmd)
	rootCmd.AddCommand(registrarcmd.MaintenanceCmd)
	rootCmd.AddCommand(nominetcmd.Cmd)
	rootCmd.AddCommand(euridcmd.Cmd)
	rootCmd.AddCommand(markcmd.Cmd)
	rootCmd.AddCommand(daccmd.Cmd)
	rootCmd.AddCommand(completionCmd)

	// Hide the default completion command (we provide our own)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("eppctl %s (commit: %s, built: %s)\n", Version, Commit, Date)
	},
}

// PrintErr prints an error message to stderr.
func PrintErr(format string, args ...any) {
	rootCmd.PrintErrf(format+"\n", args...)
}

// Exit prints an error and exits with code 1.
func Exit(format string, args ...any) {
	PrintErr(format, args...)
	os.Exit(1)
}
