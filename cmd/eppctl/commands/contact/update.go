package contact

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/commands"
)

var (
	updateAddStatus []string
	updateRmStatus  []string
	updateVoice     string
	updateFax       string
	updateEmail     string
	updateAuthInfo  string
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a contact",
	Long: `Add and remove contact statuses or replace attributes.

Passing --voice, --fax or --auth-info with an empty value clears that
attribute on the registry.

Examples:
  # Replace the email address
  eppctl contact update sh8013 -r verisign-com --email new@example.com

  # Clear the fax number
  eppctl contact update sh8013 -r verisign-com --fax ""`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringArrayVar(&updateAddStatus, "add-status", nil, "Status to add (repeatable)")
	updateCmd.Flags().StringArrayVar(&updateRmStatus, "rm-status", nil, "Status to remove (repeatable)")
	updateCmd.Flags().StringVar(&updateVoice, "voice", "", "New voice number, empty to clear")
	updateCmd.Flags().StringVar(&updateFax, "fax", "", "New fax number, empty to clear")
	updateCmd.Flags().StringVar(&updateEmail, "email", "", "New email address")
	updateCmd.Flags().StringVar(&updateAuthInfo, "auth-info", "", "New authorization info")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}
	target, err := cmdutil.RegistryTarget()
	if err != nil {
		return err
	}

	req := commands.ContactUpdateRequest{
		ID:             args[0],
		AddStatuses:    parseStatuses(updateAddStatus),
		RemoveStatuses: parseStatuses(updateRmStatus),
		NewEmail:       updateEmail,
	}
	if cmd.Flags().Changed("voice") {
		req.NewVoice = &updateVoice
	}
	if cmd.Flags().Changed("fax") {
		req.NewFax = &updateFax
	}
	if cmd.Flags().Changed("auth-info") {
		req.NewAuthInfo = &updateAuthInfo
	}

	_, env, err := client.ContactUpdate(target, req)
	if err != nil {
		return fmt.Errorf("contact update failed: %w", err)
	}

	return cmdutil.PrintEnvelope(env, fmt.Sprintf("Contact '%s' updated", args[0]))
}
