package poll

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/cli/output"
)

var requestCmd = &cobra.Command{
	Use:     "request",
	Aliases: []string{"next"},
	Short:   "Fetch the next queued message",
	Long: `Fetch the first message in the registry queue without removing it.

Acknowledge the message with 'eppctl poll ack <msg-id>' to remove it.

Examples:
  eppctl poll request -r verisign-com`,
	Args: cobra.NoArgs,
	RunE: runRequest,
}

func runRequest(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}
	target, err := cmdutil.RegistryTarget()
	if err != nil {
		return err
	}

	resp, _, err := client.PollRequest(target)
	if err != nil {
		return fmt.Errorf("poll request failed: %w", err)
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
		if resp.Message == nil {
			fmt.Println("The queue is empty.")
			return nil
		}
		printMessage(resp.Message)
	}
	return nil
}
