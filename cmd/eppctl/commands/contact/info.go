package contact

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

var infoAuthInfo string

var infoCmd = &cobra.Command{
	Use:   "info <id>",
	Short: "Fetch a contact",
	Long: `Fetch the full contact object.

Sponsoring registrars see the authorization info; others may need to
supply it with --auth-info.

Examples:
  eppctl contact info sh8013 -r verisign-com`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().StringVar(&infoAuthInfo, "auth-info", "", "Authorization info for non-sponsoring queries")
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

	resp, _, err := client.ContactInfo(target, commands.ContactInfoRequest{ID: args[0], AuthInfo: infoAuthInfo})
	if err != nil {
		return fmt.Errorf("contact info failed: %w", err)
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
		printContactInfo(resp)
	}
	return nil
}

func printContactInfo(resp *commands.ContactInfoResponse) {
	fmt.Printf("Contact: %s\n", resp.ID)
	fmt.Printf("  ROID:     %s\n", cmdutil.EmptyOr(resp.ROID, "-"))
	fmt.Printf("  Sponsor:  %s\n", cmdutil.EmptyOr(resp.SponsoringID, "-"))
	if len(resp.Statuses) > 0 {
		var statuses []string
		for _, st := range resp.Statuses {
			statuses = append(statuses, st.Status)
		}
		fmt.Printf("  Statuses: %s\n", strings.Join(statuses, ", "))
	}
	for _, addr := range resp.Addresses {
		repr := "int"
		if addr.Localised {
			repr = "loc"
		}
		fmt.Printf("  Address (%s):\n", repr)
		fmt.Printf("    Name:    %s\n", addr.Name)
		if addr.Org != "" {
			fmt.Printf("    Org:     %s\n", addr.Org)
		}
		for _, street := range addr.Streets {
			fmt.Printf("    Street:  %s\n", street)
		}
		fmt.Printf("    City:    %s\n", addr.City)
		if addr.Province != "" {
			fmt.Printf("    Prov:    %s\n", addr.Province)
		}
		if addr.PostalCode != "" {
			fmt.Printf("    Postal:  %s\n", addr.PostalCode)
		}
		fmt.Printf("    Country: %s\n", addr.CountryCode)
	}
	if resp.Voice != "" {
		fmt.Printf("  Voice:    %s\n", resp.Voice)
	}
	if resp.Fax != "" {
		fmt.Printf("  Fax:      %s\n", resp.Fax)
	}
	fmt.Printf("  Email:    %s\n", cmdutil.EmptyOr(resp.Email, "-"))
	if !resp.Created.IsZero() {
		fmt.Printf("  Created:  %s\n", resp.Created.UTC().Format(time.RFC3339))
	}
	if !resp.Updated.IsZero() {
		fmt.Printf("  Updated:  %s\n", resp.Updated.UTC().Format(time.RFC3339))
	}
	if resp.AuthInfo != "" {
		fmt.Printf("  AuthInfo: %s\n", resp.AuthInfo)
	}
}
