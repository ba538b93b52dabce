package nominet

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/cli/output"
	"github.com/registryops/eppproxy/internal/commands"
)

var releaseTag string

var releaseCmd = &cobra.Command{
	Use:   "release <domain>",
	Short: "Release a domain to another registrar",
	Long: `Move a domain to another registrar tag.

When the gaining registrar requires handshakes, the release opens a
case on their queue instead of completing immediately.

Examples:
  eppctl nominet release example.co.uk --tag OTHERTAG`,
	Args: cobra.ExactArgs(1),
	RunE: runRelease,
}

func init() {
	releaseCmd.Flags().StringVar(&releaseTag, "tag", "", "Gaining registrar tag (required)")
	_ = releaseCmd.MarkFlagRequired("tag")
}

func runRelease(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	req := commands.NominetReleaseRequest{Domain: args[0], RegistrarTag: releaseTag}
	resp, _, err := client.NominetRelease(cmdutil.Target(args[0]), req)
	if err != nil {
		return fmt.Errorf("release failed: %w", err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, resp)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, resp)
	default:
		if resp.Pending {
			fmt.Printf("Release of '%s' to %s is pending the gaining registrar's handshake.\n", args[0], releaseTag)
		} else {
			fmt.Printf("Domain '%s' released to %s.\n", args[0], releaseTag)
		}
		if resp.Message != "" && cmdutil.Flags.Verbose {
			fmt.Printf("Registry: %s\n", resp.Message)
		}
	}
	return nil
}
