package domain

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/cli/output"
	"github.com/registryops/eppproxy/internal/commands"
)

var (
	transferAuthInfo string
	transferPeriod   int
)

var transferCmd = &cobra.Command{
	Use:   "transfer <query|request|cancel|accept|reject> <domain>",
	Short: "Run a transfer sub-operation",
	Long: `Run one domain transfer sub-operation.

'request' starts an inbound transfer and needs the domain's auth-info.
'accept' and 'reject' answer an outbound transfer as the losing
registrar. 'query' reports the pending transfer's state.

Examples:
  # Start an inbound transfer
  eppctl domain transfer request example.com --auth-info secret99

  # Check its state
  eppctl domain transfer query example.com

  # Approve an outbound transfer
  eppctl domain transfer accept example.com`,
	Args: cobra.ExactArgs(2),
	RunE: runTransfer,
}

func init() {
	transferCmd.Flags().StringVar(&transferAuthInfo, "auth-info", "", "Domain authorization info")
	transferCmd.Flags().IntVar(&transferPeriod, "period", 0, "Renewal years to add on transfer (request only)")
}

var transferOps = map[string]commands.TransferOp{
	"query":   commands.TransferQuery,
	"request": commands.TransferRequest,
	"cancel":  commands.TransferCancel,
	"accept":  commands.TransferAccept,
	"reject":  commands.TransferReject,
}

func runTransfer(cmd *cobra.Command, args []string) error {
	op, ok := transferOps[args[0]]
	if !ok {
		return fmt.Errorf("unknown transfer operation %q: expected query, request, cancel, accept, or reject", args[0])
	}
	name := args[1]

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	req := commands.DomainTransferRequest{
		Transfer: op,
		Domain:   name,
		AuthInfo: transferAuthInfo,
		Period:   transferPeriod,
	}
	resp, env, err := client.DomainTransfer(cmdutil.Target(name), req)
	if err != nil {
		return fmt.Errorf("domain transfer failed: %w", err)
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
		fmt.Printf("Transfer: %s\n", resp.Name)
		fmt.Printf("  Status:     %s\n", cmdutil.EmptyOr(resp.Status, "-"))
		fmt.Printf("  Requested:  %s by %s\n", formatTransferTime(resp.RequestedAt), cmdutil.EmptyOr(resp.RequestedBy, "-"))
		fmt.Printf("  Acts:       %s by %s\n", formatTransferTime(resp.ActionAt), cmdutil.EmptyOr(resp.ActionBy, "-"))
		if !resp.Expires.IsZero() {
			fmt.Printf("  Expires:    %s\n", resp.Expires.UTC().Format(time.RFC3339))
		}
		if env.Pending {
			fmt.Println("The registry queued the transfer; watch the poll queue for the outcome.")
		}
	}
	return nil
}

func formatTransferTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}
