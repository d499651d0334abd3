package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/pegvault/internal/logic"
)

// NewVaultCommand creates the vault command group.
func NewVaultCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Inspect and manage vaulted originals",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List vaulted originals",
			Args:    cobra.NoArgs,
			RunE: a.run(func(svc *logic.Services, _ []string) error {
				return svc.VaultList()
			}),
		},
		&cobra.Command{
			Use:   "get NAME DEST",
			Short: "Copy a vaulted original to DEST, keeping the vault copy",
			Args:  cobra.ExactArgs(2), //nolint:mnd // name and destination
			RunE: a.run(func(svc *logic.Services, args []string) error {
				return svc.VaultGet(args[0], args[1])
			}),
		},
		&cobra.Command{
			Use:     "rm NAME",
			Aliases: []string{"remove"},
			Short:   "Delete a vaulted original",
			Args:    cobra.ExactArgs(1),
			RunE: a.run(func(svc *logic.Services, args []string) error {
				return svc.VaultRemove(args[0])
			}),
		},
	)

	return cmd
}
