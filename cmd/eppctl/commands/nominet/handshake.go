package nominet

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/cli/output"
	"github.com/registryops/eppproxy/internal/commands"
)

var (
	handshakeCaseID     string
	handshakeRegistrant string
)

var handshakeCmd = &cobra.Command{
	Use:   "handshake <approve|reject>",
	Short: "Answer a pending release case",
	Long: `Approve or reject a release handshake case.

On approve, --registrant reassigns the incoming domains to a new
registrant contact.

Examples:
  eppctl nominet handshake approve --case-id 1234
  eppctl nominet handshake reject --case-id 1234`,
	Args: cobra.ExactArgs(1),
	RunE: runHandshake,
}

func init() {
	handshakeCmd.Flags().StringVar(&handshakeCaseID, "case-id", "", "Handshake case id (required)")
	handshakeCmd.Flags().StringVar(&handshakeRegistrant, "registrant", "", "Registrant contact to assign on approve")
	_ = handshakeCmd.MarkFlagRequired("case-id")
}

func runHandshake(cmd *cobra.Command, args []string) error {
	var accept bool
	switch args[0] {
	case "approve":
		accept = true
	case "reject":
		accept = false
	default:
		return fmt.Errorf("unknown handshake answer %q, use approve or reject", args[0])
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}
	target, err := cmdutil.RegistryTarget()
	if err != nil {
		return err
	}

	req := commands.NominetHandshakeRequest{Accept: accept, CaseID: handshakeCaseID, Registrant: handshakeRegistrant}
	resp, _, err := client.NominetHandshake(target, req)
	if err != nil {
		return fmt.Errorf("handshake failed: %w", err)
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
		answer := "rejected"
		if accept {
			answer = "approved"
		}
		fmt.Printf("Case %s %s.\n", cmdutil.EmptyOr(resp.CaseID, handshakeCaseID), answer)
		if len(resp.Domains) > 0 {
			fmt.Printf("Domains: %s\n", strings.Join(resp.Domains, ", "))
		}
	}
	return nil
}
