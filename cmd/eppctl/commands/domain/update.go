package domain

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/commands"
)

var (
	updateAddNS       []string
	updateRemoveNS    []string
	updateAddContacts []string
	updateRmContacts  []string
	updateAddStatus   []string
	updateRmStatus    []string
	updateRegistrant  string
	updateAuthInfo    string
)

var updateCmd = &cobra.Command{
	Use:   "update <domain>",
	Short: "Update a domain",
	Long: `Add, remove, and change domain attributes in one command.

At least one change must be given.

Examples:
  # Swap a nameserver
  eppctl domain update example.com --add-ns ns3.example.net --rm-ns ns1.example.net

  # Lock against transfer
  eppctl domain update example.com --add-status clientTransferProhibited

  # Change the auth-info
  eppctl domain update example.com --auth-info newsecret99`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringArrayVar(&updateAddNS, "add-ns", nil, "Nameserver to add (repeatable)")
	updateCmd.Flags().StringArrayVar(&updateRemoveNS, "rm-ns", nil, "Nameserver to remove (repeatable)")
	updateCmd.Flags().StringArrayVar(&updateAddContacts, "add-contact", nil, "Contact to add as role=id (repeatable)")
	updateCmd.Flags().StringArrayVar(&updateRmContacts, "rm-contact", nil, "Contact to remove as role=id (repeatable)")
	updateCmd.Flags().StringArrayVar(&updateAddStatus, "add-status", nil, "Status to add, optionally status=reason (repeatable)")
	updateCmd.Flags().StringArrayVar(&updateRmStatus, "rm-status", nil, "Status to remove (repeatable)")
	updateCmd.Flags().StringVar(&updateRegistrant, "registrant", "", "New registrant contact id")
	updateCmd.Flags().StringVar(&updateAuthInfo, "auth-info", "", "New authorization info")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	addContacts, err := parseContacts(updateAddContacts)
	if err != nil {
		return err
	}
	rmContacts, err := parseContacts(updateRmContacts)
	if err != nil {
		return err
	}

	req := commands.DomainUpdateRequest{
		Domain:            args[0],
		AddNameservers:    parseNameservers(updateAddNS),
		RemoveNameservers: parseNameservers(updateRemoveNS),
		AddContacts:       addContacts,
		RemoveContacts:    rmContacts,
		AddStatuses:       parseStatuses(updateAddStatus),
		RemoveStatuses:    parseStatuses(updateRmStatus),
		NewRegistrant:     updateRegistrant,
	}
	if cmd.Flags().Changed("auth-info") {
		req.NewAuthInfo = &updateAuthInfo
	}

	_, env, err := client.DomainUpdate(cmdutil.Target(args[0]), req)
	if err != nil {
		return fmt.Errorf("domain update failed: %w", err)
	}

	return cmdutil.PrintEnvelope(env, fmt.Sprintf("Domain '%s' updated", args[0]))
}
