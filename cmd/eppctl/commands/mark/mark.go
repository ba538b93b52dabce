// Package mark implements trademark clearinghouse commands for eppctl.
package mark

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/internal/commands"
)

// Cmd is the parent command for mark operations.
var Cmd = &cobra.Command{
	Use:   "mark",
	Short: "Trademark clearinghouse operations",
	Long: `Manage trademarks on a clearinghouse registry (server type tmch).

Mark records are rich structures, so create and update read them from
a JSON file shaped like the 'mark info -o json' output.

Examples:
  eppctl mark check 0000061234-1 -r tmch
  eppctl mark create --file mark.json -r tmch
  eppctl mark info 0000061234-1 -r tmch --smd`,
}

func init() {
	Cmd.AddCommand(checkCmd)
	Cmd.AddCommand(infoCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(renewCmd)
	Cmd.AddCommand(transferCmd)
}

// loadMarkRecord reads a TrademarkRecord from a JSON file.
func loadMarkRecord(path string) (*commands.TrademarkRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mark file: %w", err)
	}
	var record commands.TrademarkRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse mark file %s: %w", path, err)
	}
	return &record, nil
}

// loadDocuments reads repeated doctype=path values, base64-encoding the
// file content. The file type is taken from the extension.
func loadDocuments(values []string) ([]commands.MarkDocument, error) {
	var out []commands.MarkDocument
	for _, value := range values {
		docType, path, ok := strings.Cut(value, "=")
		if !ok {
			return nil, fmt.Errorf("invalid document %q, expected doctype=path", value)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
		out = append(out, commands.MarkDocument{
			DocType:  docType,
			FileName: filepath.Base(path),
			FileType: strings.TrimPrefix(filepath.Ext(path), "."),
			Content:  base64.StdEncoding.EncodeToString(data),
		})
	}
	return out, nil
}
