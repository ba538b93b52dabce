package nominet

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/commands"
)

var tagListCmd = &cobra.Command{
	Use:   "tag-list",
	Short: "List registrar tags",
	Long: `Fetch the Nominet registrar tag directory.

The proxy serves this from its tag-list session; the registry must be
configured with nominet_tag_session enabled.

Examples:
  eppctl nominet tag-list -r nominet`,
	Args: cobra.NoArgs,
	RunE: runTagList,
}

// TagList renders registrar tag rows.
type TagList []commands.NominetTag

// Headers implements TableRenderer.
func (tl TagList) Headers() []string {
	return []string{"TAG", "NAME", "TRADE NAME", "HANDSHAKES"}
}

// Rows implements TableRenderer.
func (tl TagList) Rows() [][]string {
	rows := make([][]string, 0, len(tl))
	for _, tag := range tl {
		rows = append(rows, []string{
			tag.Tag,
			tag.Name,
			cmdutil.EmptyOr(tag.TradeName, "-"),
			cmdutil.BoolToYesNo(tag.Handshakes),
		})
	}
	return rows
}

func runTagList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}
	target, err := cmdutil.RegistryTarget()
	if err != nil {
		return err
	}

	resp, _, err := client.NominetTagList(target)
	if err != nil {
		return fmt.Errorf("tag list failed: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, resp.Tags, len(resp.Tags) == 0, "No tags.", TagList(resp.Tags))
}
