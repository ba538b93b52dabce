package poll

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/cli/output"
)

var ackCmd = &cobra.Command{
	Use:   "ack <msg-id>",
	Short: "Acknowledge a queued message",
	Long: `Acknowledge a message, removing it from the registry queue.

Examples:
  eppctl poll ack 12345 -r verisign-com`,
	Args: cobra.ExactArgs(1),
	RunE: runAck,
}

func runAck(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}
	target, err := cmdutil.RegistryTarget()
	if err != nil {
		return err
	}

	resp, _, err := client.PollAck(target, args[0])
	if err != nil {
		return fmt.Errorf("poll ack failed: %w", err)
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
		if resp.Remaining == 0 {
			fmt.Printf("Message %s acknowledged. The queue is empty.\n", args[0])
		} else {
			fmt.Printf("Message %s acknowledged. %d remaining, next is %s.\n", args[0], resp.Remaining, resp.NextID)
		}
	}
	return nil
}
