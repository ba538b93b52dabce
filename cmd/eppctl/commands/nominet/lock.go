package nominet

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/cmd/eppctl/cmdutil"
	"github.com/registryops/eppproxy/internal/commands"
)

var (
	lockType    string
	lockDomain  string
	lockContact string
)

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Apply an investigation lock",
	Long: `Apply a lock to a domain or contact.

Examples:
  eppctl nominet lock --domain example.co.uk
  eppctl nominet lock --contact C123 --type opt-out`,
	Args: cobra.NoArgs,
	RunE: runLock,
}

var unlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Remove an investigation lock",
	Long: `Remove a lock from a domain or contact.

Examples:
  eppctl nominet unlock --domain example.co.uk`,
	Args: cobra.NoArgs,
	RunE: runUnlock,
}

func init() {
	for _, cmd := range []*cobra.Command{lockCmd, unlockCmd} {
		cmd.Flags().StringVar(&lockType, "type", "investigation", "Lock type: investigation or opt-out")
		cmd.Flags().StringVar(&lockDomain, "domain", "", "Domain to lock")
		cmd.Flags().StringVar(&lockContact, "contact", "", "Contact id to lock")
	}
}

func runLock(cmd *cobra.Command, args []string) error {
	return applyLock(false)
}

func runUnlock(cmd *cobra.Command, args []string) error {
	return applyLock(true)
}

func applyLock(unlock bool) error {
	if lockDomain == "" && lockContact == "" {
		return fmt.Errorf("pass --domain or --contact")
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}
	target := cmdutil.Target(lockDomain)
	if lockDomain == "" {
		target, err = cmdutil.RegistryTarget()
		if err != nil {
			return err
		}
	}

	req := commands.NominetLockRequest{
		Unlock:    unlock,
		LockType:  lockType,
		Domain:    lockDomain,
		ContactID: lockContact,
	}
	_, env, err := client.NominetLock(target, req)
	if err != nil {
		return fmt.Errorf("lock update failed: %w", err)
	}

	object := lockDomain
	if object == "" {
		object = lockContact
	}
	verb := "locked"
	if unlock {
		verb = "unlocked"
	}
	return cmdutil.PrintEnvelope(env, fmt.Sprintf("'%s' %s (%s)", object, verb, lockType))
}
