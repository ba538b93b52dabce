package contact

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/commands"
)

var (
	createName       string
	createOrg        string
	createStreets    []string
	createCity       string
	createProvince   string
	createPostalCode string
	createCountry    string
	createLocalised  bool
	createVoice      string
	createFax        string
	createEmail      string
	createAuthInfo   string
)

var createCmd = &cobra.Command{
	Use:   "create <id>",
	Short: "Register a contact",
	Long: `Register a contact object.

One postal address and an email address are required. The default
address representation is int (ASCII); pass --localised for the loc
(8-bit) one.

Examples:
  eppctl contact create sh8013 -r verisign-com \
    --name "John Doe" --org "Example Inc." \
    --street "123 Example Dr" --city Dulles --province VA \
    --postal-code 20166-6503 --country US \
    --voice +1.7035555555 --email jdoe@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createName, "name", "", "Individual or role name (required)")
	createCmd.Flags().StringVar(&createOrg, "org", "", "Organisation")
	createCmd.Flags().StringArrayVar(&createStreets, "street", nil, "Street line (repeatable, up to 3)")
	createCmd.Flags().StringVar(&createCity, "city", "", "City (required)")
	createCmd.Flags().StringVar(&createProvince, "province", "", "State or province")
	createCmd.Flags().StringVar(&createPostalCode, "postal-code", "", "Postal code")
	createCmd.Flags().StringVar(&createCountry, "country", "", "Two-letter country code (required)")
	createCmd.Flags().BoolVar(&createLocalised, "localised", false, "Use the loc (8-bit) address representation")
	createCmd.Flags().StringVar(&createVoice, "voice", "", "Voice number in E.164 form, e.g. +44.1234567890")
	createCmd.Flags().StringVar(&createFax, "fax", "", "Fax number in E.164 form")
	createCmd.Flags().StringVar(&createEmail, "email", "", "Email address (required)")
	createCmd.Flags().StringVar(&createAuthInfo, "auth-info", "", "Authorization info")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("city")
	_ = createCmd.MarkFlagRequired("country")
	_ = createCmd.MarkFlagRequired("email")
}

func runCreate(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}
	target, err := cmdutil.RegistryTarget()
	if err != nil {
		return err
	}

	req := commands.ContactCreateRequest{
		ID: args[0],
		Addresses: []commands.PostalAddress{{
			Localised:   createLocalised,
			Name:        createName,
			Org:         createOrg,
			Streets:     createStreets,
			City:        createCity,
			Province:    createProvince,
			PostalCode:  createPostalCode,
			CountryCode: createCountry,
		}},
		Voice:    createVoice,
		Fax:      createFax,
		Email:    createEmail,
		AuthInfo: createAuthInfo,
	}

	resp, env, err := client.ContactCreate(target, req)
	if err != nil {
		return fmt.Errorf("contact create failed: %w", err)
	}

	return cmdutil.PrintEnvelope(env, fmt.Sprintf("Contact '%s' registered", resp.ID))
}
