package poll

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/cli/output"
	"github.com/registryops/eppproxy/pkg/apiclient"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream the message queue",
	Long: `Stream the registry queue over a websocket, acknowledging each
message after it is printed. Runs until interrupted.

Examples:
  eppctl poll watch -r verisign-com
  eppctl poll watch -r verisign-com -o json`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}
	if cmdutil.Flags.Registry == "" {
		return fmt.Errorf("this command needs an explicit registry: pass --registry <id>")
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if format == output.FormatTable {
		fmt.Printf("Watching %s. Press Ctrl+C to stop.\n", cmdutil.Flags.Registry)
	}

	err = client.StreamPoll(ctx, cmdutil.Flags.Registry, func(msg apiclient.StreamMessage) error {
		switch format {
		case output.FormatJSON:
			return output.PrintJSON(os.Stdout, msg)
		case output.FormatYAML:
			return output.PrintYAML(os.Stdout, msg)
		default:
			printMessage(msg.Message)
			fmt.Println()
		}
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
