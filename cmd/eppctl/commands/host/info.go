package host

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/cli/output"
	"github.com/registryops/eppproxy/internal/commands"
)

var infoCmd = &cobra.Command{
	Use:   "info <host>",
	Short: "Fetch a host",
	Long: `Fetch the full host object.

Examples:
  eppctl host info ns1.example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	resp, _, err := client.HostInfo(cmdutil.Target(args[0]), commands.HostInfoRequest{Host: args[0]})
	if err != nil {
		return fmt.Errorf("host info failed: %w", err)
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
		fmt.Printf("Host: %s\n", resp.Name)
		fmt.Printf("  ROID:     %s\n", cmdutil.EmptyOr(resp.ROID, "-"))
		fmt.Printf("  Sponsor:  %s\n", cmdutil.EmptyOr(resp.SponsoringID, "-"))
		if len(resp.Statuses) > 0 {
			var statuses []string
			for _, st := range resp.Statuses {
				statuses = append(statuses, st.Status)
			}
			fmt.Printf("  Statuses: %s\n", strings.Join(statuses, ", "))
		}
		for _, addr := range resp.Addresses {
			family := "v4"
			if addr.V6 {
				family = "v6"
			}
			fmt.Printf("  Address:  %s (%s)\n", addr.Address, family)
		}
		if !resp.Created.IsZero() {
			fmt.Printf("  Created:  %s\n", resp.Created.UTC().Format(time.RFC3339))
		}
		if !resp.Updated.IsZero() {
			fmt.Printf("  Updated:  %s\n", resp.Updated.UTC().Format(time.RFC3339))
		}
	}
	return nil
}
