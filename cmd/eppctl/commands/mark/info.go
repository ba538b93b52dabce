package mark

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

var infoSMD bool

var infoCmd = &cobra.Command{
	Use:   "info <id>",
	Short: "Fetch a mark",
	Long: `Fetch a mark record, or its encoded signed mark with --smd.

Examples:
  eppctl mark info 0000061234-1 -r tmch
  eppctl mark info 0000061234-1 -r tmch --smd -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&infoSMD, "smd", false, "Return the encoded signed mark")
}

func runInfo(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}
	target, err := cmdutil.RegistryTarget()
	if err != nil {
		return err
	}

	resp, _, err := client.MarkInfo(target, commands.MarkInfoRequest{ID: args[0], SMD: infoSMD})
	if err != nil {
		return fmt.Errorf("mark info failed: %w", err)
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
		fmt.Printf("Mark: %s\n", resp.ID)
		fmt.Printf("  Status:      %s\n", cmdutil.EmptyOr(resp.Status, "-"))
		fmt.Printf("  POU status:  %s\n", cmdutil.EmptyOr(resp.POUStatus, "-"))
		if resp.Mark != nil {
			fmt.Printf("  Name:        %s\n", resp.Mark.Name)
			fmt.Printf("  Jurisdiction: %s\n", resp.Mark.Jurisdiction)
			if resp.Mark.RegistrationNum != "" {
				fmt.Printf("  Registration: %s\n", resp.Mark.RegistrationNum)
			}
			if len(resp.Mark.Labels) > 0 {
				fmt.Printf("  Labels:      %s\n", strings.Join(resp.Mark.Labels, ", "))
			}
			for _, holder := range resp.Mark.Holders {
				name := holder.Name
				if name == "" {
					name = holder.Org
				}
				fmt.Printf("  Holder:      %s (%s)\n", name, holder.Role)
			}
		}
		if !resp.Created.IsZero() {
			fmt.Printf("  Created:     %s\n", resp.Created.UTC().Format(time.RFC3339))
		}
		if !resp.Expires.IsZero() {
			fmt.Printf("  Expires:     %s\n", resp.Expires.UTC().Format(time.RFC3339))
		}
		if !resp.POUExpires.IsZero() {
			fmt.Printf("  POU expires: %s\n", resp.POUExpires.UTC().Format(time.RFC3339))
		}
		if resp.SMDID != "" {
			fmt.Printf("  SMD id:      %s\n", resp.SMDID)
		}
		if resp.SMD != "" {
			fmt.Printf("%s\n", resp.SMD)
		}
	}
	return nil
}
