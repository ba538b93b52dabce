package mark

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/commands"
)

var (
	createFile      string
	createPeriod    int
	createLabels    []string
	createDocuments []string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Submit a new mark",
	Long: `Submit a new trademark record from a JSON file.

Supporting documents are attached as doctype=path pairs; the file
content is base64-encoded on the way in.

Examples:
  eppctl mark create --file mark.json -r tmch --period 1 \
    --document tmOther=assignment.pdf --label example --label exa-mple`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createFile, "file", "", "Mark record JSON file (required)")
	createCmd.Flags().IntVar(&createPeriod, "period", 0, "Registration period in years")
	createCmd.Flags().StringArrayVar(&createLabels, "label", nil, "Domain label to claim (repeatable)")
	createCmd.Flags().StringArrayVar(&createDocuments, "document", nil, "Supporting document as doctype=path (repeatable)")
	_ = createCmd.MarkFlagRequired("file")
}

func runCreate(cmd *cobra.Command, args []string) error {
	record, err := loadMarkRecord(createFile)
	if err != nil {
		return err
	}
	documents, err := loadDocuments(createDocuments)
	if err != nil {
		return err
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}
	target, err := cmdutil.RegistryTarget()
	if err != nil {
		return err
	}

	req := commands.MarkCreateRequest{
		Mark:      *record,
		Period:    createPeriod,
		Documents: documents,
		Labels:    createLabels,
	}
	resp, env, err := client.MarkCreate(target, req)
	if err != nil {
		return fmt.Errorf("mark create failed: %w", err)
	}

	msg := fmt.Sprintf("Mark '%s' submitted", resp.ID)
	if resp.Balance != "" {
		msg = fmt.Sprintf("%s (balance %s)", msg, resp.Balance)
	}
	return cmdutil.PrintEnvelope(env, msg)
}
