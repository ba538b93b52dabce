package domain

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

var (
	infoHosts    string
	infoAuthInfo string
)

var infoCmd = &cobra.Command{
	Use:   "info <domain>",
	Short: "Fetch a domain",
	Long: `Fetch the full domain object.

Sponsorship rules apply: most registries return full data only to the
sponsoring registrar, or with the domain's auth-info.

Examples:
  # Fetch a domain
  eppctl domain info example.com

  # Fetch with auth-info (non-sponsored)
  eppctl domain info example.com --auth-info secret99

  # Only delegated hosts
  eppctl domain info example.com --hosts del`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().StringVar(&infoHosts, "hosts", "", "Host filter (all|del|sub|none)")
	infoCmd.Flags().StringVar(&infoAuthInfo, "auth-info", "", "Authorization info")
}

func runInfo(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	req := commands.DomainInfoRequest{Domain: args[0], Hosts: infoHosts, AuthInfo: infoAuthInfo}
	resp, _, err := client.DomainInfo(cmdutil.Target(args[0]), req)
	if err != nil {
		return fmt.Errorf("domain info failed: %w", err)
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
		printDomainInfo(resp)
	}
	return nil
}

func printDomainInfo(d *commands.DomainInfoResponse) {
	fmt.Printf("Domain: %s\n", d.Name)
	fmt.Printf("  ROID:        %s\n", cmdutil.EmptyOr(d.ROID, "-"))
	fmt.Printf("  Sponsor:     %s\n", cmdutil.EmptyOr(d.SponsoringID, "-"))
	fmt.Printf("  Registrant:  %s\n", cmdutil.EmptyOr(d.Registrant, "-"))
	if len(d.Statuses) > 0 {
		var statuses []string
		for _, st := range d.Statuses {
			statuses = append(statuses, st.Status)
		}
		fmt.Printf("  Statuses:    %s\n", strings.Join(statuses, ", "))
	}
	for _, c := range d.Contacts {
		fmt.Printf("  Contact:     %s=%s\n", c.Role, c.ID)
	}
	for _, ns := range d.Nameservers {
		glue := ""
		if len(ns.V4) > 0 || len(ns.V6) > 0 {
			glue = " (" + strings.Join(append(ns.V4, ns.V6...), ", ") + ")"
		}
		fmt.Printf("  Nameserver:  %s%s\n", ns.Host, glue)
	}
	printDate("Created", d.Created)
	printDate("Updated", d.Updated)
	printDate("Expires", d.Expires)
	if len(d.RGPStatuses) > 0 {
		fmt.Printf("  RGP:         %s\n", strings.Join(d.RGPStatuses, ", "))
	}
	if d.AuthInfo != "" {
		fmt.Printf("  Auth info:   %s\n", d.AuthInfo)
	}
	if d.SecDNS != nil {
		fmt.Printf("  DNSSEC:      %d DS / %d key records\n", len(d.SecDNS.DS), len(d.SecDNS.Keys))
	}
}

func printDate(label string, t time.Time) {
	if t.IsZero() {
		return
	}
	fmt.Printf("  %-12s %s\n", label+":", t.UTC().Format(time.RFC3339))
}
