package mark

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/commands"
)

var (
	updateFile      string
	updateAddLabels []string
	updateRmLabels  []string
	updateDocuments []string
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a mark",
	Long: `Replace a mark record or adjust its labels and documents.

Examples:
  # Replace the record
  eppctl mark update 0000061234-1 -r tmch --file mark.json

  # Claim another label
  eppctl mark update 0000061234-1 -r tmch --add-label exam-ple`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateFile, "file", "", "Replacement mark record JSON file")
	updateCmd.Flags().StringArrayVar(&updateAddLabels, "add-label", nil, "Label to add (repeatable)")
	updateCmd.Flags().StringArrayVar(&updateRmLabels, "rm-label", nil, "Label to remove (repeatable)")
	updateCmd.Flags().StringArrayVar(&updateDocuments, "document", nil, "Document to add as doctype=path (repeatable)")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	req := commands.MarkUpdateRequest{
		ID:        args[0],
		AddLabels: updateAddLabels,
	}
	req.RemoveLabels = updateRmLabels

	if updateFile != "" {
		record, err := loadMarkRecord(updateFile)
		if err != nil {
			return err
		}
		req.NewMark = record
	}
	documents, err := loadDocuments(updateDocuments)
	if err != nil {
		return err
	}
	req.AddDocuments = documents

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}
	target, err := cmdutil.RegistryTarget()
	if err != nil {
		return err
	}

	_, env, err := client.MarkUpdate(target, req)
	if err != nil {
		return fmt.Errorf("mark update failed: %w", err)
	}

	return cmdutil.PrintEnvelope(env, fmt.Sprintf("Mark '%s' updated", args[0]))
}
