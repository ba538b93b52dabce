package mark

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/cli/output"
	"github.com/registryops/eppproxy/internal/commands"
)

var transferAuthCode string

var transferCmd = &cobra.Command{
	Use:   "transfer <initiate|execute> <id>",
	Short: "Move a mark between agents",
	Long: `Transfer a mark. The losing agent initiates to obtain the auth
code; the gaining agent executes with it.

Examples:
  eppctl mark transfer initiate 0000061234-1 -r tmch
  eppctl mark transfer execute 0000061234-1 -r tmch --auth-code abc123`,
	Args: cobra.ExactArgs(2),
	RunE: runTransfer,
}

func init() {
	transferCmd.Flags().StringVar(&transferAuthCode, "auth-code", "", "Transfer auth code (execute only)")
}

func runTransfer(cmd *cobra.Command, args []string) error {
	var execute bool
	switch args[0] {
	case "initiate":
		execute = false
	case "execute":
		execute = true
	default:
		return fmt.Errorf("unknown transfer operation %q, use initiate or execute", args[0])
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}
	target, err := cmdutil.RegistryTarget()
	if err != nil {
		return err
	}

	req := commands.MarkTransferRequest{Execute: execute, ID: args[1], AuthCode: transferAuthCode}
	resp, _, err := client.MarkTransfer(target, req)
	if err != nil {
		return fmt.Errorf("mark transfer failed: %w", err)
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
		if execute {
			fmt.Printf("Mark '%s' transferred.\n", resp.ID)
			if !resp.Transferred.IsZero() {
				fmt.Printf("Transferred: %s\n", resp.Transferred.UTC().Format(time.RFC3339))
			}
		} else {
			fmt.Printf("Transfer of '%s' initiated.\n", resp.ID)
			fmt.Printf("Auth code: %s\n", resp.AuthCode)
			fmt.Println("Hand the code to the gaining agent; it expires with the case.")
		}
	}
	return nil
}
