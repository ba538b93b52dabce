package domain

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/commands"
)

var (
	createPeriod     int
	createRegistrant string
	createContacts   []string
	createNS         []string
	createAuthInfo   string
	createPhase      string
)

var createCmd = &cobra.Command{
	Use:   "create <domain>",
	Short: "Register a domain",
	Long: `Register a domain name.

Examples:
  # Minimal registration
  eppctl domain create example.com --auth-info secret99

  # Two years with registrant, contacts and delegation
  eppctl domain create example.com --period 2 --registrant C123 \
    --contact admin=C124 --contact tech=C125 \
    --ns ns1.example.net --ns ns2.example.net --auth-info secret99

  # Delegation with glue
  eppctl domain create example.com --ns ns1.example.com=192.0.2.1,2001:db8::1 --auth-info secret99`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().IntVar(&createPeriod, "period", 0, "Registration period in years (0: server default)")
	createCmd.Flags().StringVar(&createRegistrant, "registrant", "", "Registrant contact id")
	createCmd.Flags().StringArrayVar(&createContacts, "contact", nil, "Contact as role=id (repeatable)")
	createCmd.Flags().StringArrayVar(&createNS, "ns", nil, "Nameserver, optionally with glue host=addr,addr (repeatable)")
	createCmd.Flags().StringVar(&createAuthInfo, "auth-info", "", "Authorization info for the new domain")
	createCmd.Flags().StringVar(&createPhase, "phase", "", "Launch phase (sunrise, claims, ...)")
}

func runCreate(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	contacts, err := parseContacts(createContacts)
	if err != nil {
		return err
	}

	req := commands.DomainCreateRequest{
		Domain:      args[0],
		Period:      createPeriod,
		Registrant:  createRegistrant,
		Contacts:    contacts,
		Nameservers: parseNameservers(createNS),
		AuthInfo:    createAuthInfo,
		LaunchPhase: createPhase,
	}

	resp, env, err := client.DomainCreate(cmdutil.Target(args[0]), req)
	if err != nil {
		return fmt.Errorf("domain create failed: %w", err)
	}

	msg := fmt.Sprintf("Domain '%s' registered", resp.Name)
	if !resp.Expires.IsZero() {
		msg += fmt.Sprintf(" (expires %s)", resp.Expires.UTC().Format(time.RFC3339))
	}
	return cmdutil.PrintEnvelope(env, msg)
}
