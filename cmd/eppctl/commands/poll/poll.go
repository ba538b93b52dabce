// Package poll implements message queue commands for eppctl.
package poll

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/internal/commands"
)

// Cmd is the parent command for poll operations.
var Cmd = &cobra.Command{
	Use:   "poll",
	Short: "Registry message queue operations",
	Long: `Read and acknowledge the registry's server-to-client message queue.

The queue delivers one message at a time; acknowledge a message to
remove it and reveal the next. 'poll watch' streams the queue and
acknowledges automatically.

Examples:
  eppctl poll request -r verisign-com
  eppctl poll ack 12345 -r verisign-com
  eppctl poll watch -r verisign-com`,
}

func init() {
	Cmd.AddCommand(requestCmd)
	Cmd.AddCommand(ackCmd)
	Cmd.AddCommand(watchCmd)
}

func printMessage(msg *commands.PollMessage) {
	fmt.Printf("Message: %s (%d queued)\n", msg.ID, msg.Count)
	if !msg.Enqueued.IsZero() {
		fmt.Printf("  Enqueued: %s\n", msg.Enqueued.UTC().Format(time.RFC3339))
	}
	if msg.Text != "" {
		fmt.Printf("  Text:     %s\n", msg.Text)
	}
	if msg.Change != nil {
		fmt.Printf("  Change:   %s (%s) by %s\n", msg.Change.Operation, msg.Change.State, msg.Change.Who)
		if msg.Change.Reason != "" {
			fmt.Printf("  Reason:   %s\n", msg.Change.Reason)
		}
	}
	switch data := msg.Data.(type) {
	case *commands.PendingActionResult:
		outcome := "failed"
		if data.Succeeded {
			outcome = "completed"
		}
		fmt.Printf("  Pending %s %s %s (svTRID %s)\n", data.Object, data.Name, outcome, data.SvTRID)
	case *commands.DomainTransferResponse:
		fmt.Printf("  Transfer: %s is %s\n", data.Name, data.Status)
	case *commands.ContactTransferResponse:
		fmt.Printf("  Transfer: %s is %s\n", data.ID, data.Status)
	}
}
