package contact

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/cli/output"
	"github.com/registryops/eppproxy/internal/commands"
)

var transferAuthInfo string

var transferOps = map[string]commands.TransferOp{
	"query":   commands.TransferQuery,
	"request": commands.TransferRequest,
	"cancel":  commands.TransferCancel,
	"accept":  commands.TransferAccept,
	"reject":  commands.TransferReject,
}

var transferCmd = &cobra.Command{
	Use:   "transfer <query|request|cancel|accept|reject> <id>",
	Short: "Manage contact transfers",
	Long: `Run one contact transfer sub-operation.

A transfer request needs the contact's authorization info.

Examples:
  eppctl contact transfer request sh8013 -r verisign-com --auth-info 2fooBAR
  eppctl contact transfer query sh8013 -r verisign-com`,
	Args: cobra.ExactArgs(2),
	RunE: runTransfer,
}

func init() {
	transferCmd.Flags().StringVar(&transferAuthInfo, "auth-info", "", "Authorization info")
}

func runTransfer(cmd *cobra.Command, args []string) error {
	op, ok := transferOps[args[0]]
	if !ok {
		return fmt.Errorf("unknown transfer operation %q, use query, request, cancel, accept or reject", args[0])
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}
	target, err := cmdutil.RegistryTarget()
	if err != nil {
		return err
	}

	req := commands.ContactTransferRequest{Transfer: op, ID: args[1], AuthInfo: transferAuthInfo}
	resp, env, err := client.ContactTransfer(target, req)
	if err != nil {
		return fmt.Errorf("contact transfer failed: %w", err)
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
		fmt.Printf("Contact: %s\n", resp.ID)
		fmt.Printf("  Status:    %s\n", resp.Status)
		fmt.Printf("  Requested: %s by %s\n", resp.RequestedAt.UTC().Format(time.RFC3339), resp.RequestedBy)
		if !resp.ActionAt.IsZero() {
			fmt.Printf("  Acts:      %s by %s\n", resp.ActionAt.UTC().Format(time.RFC3339), resp.ActionBy)
		}
		if env != nil && env.Pending {
			fmt.Println("The registry queued the operation; watch the poll queue for the outcome.")
		}
	}
	return nil
}
