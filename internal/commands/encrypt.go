package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/pegvault/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags] [files/directories...]",
		Aliases: []string{"enc"},
		Short:   "Encrypt files and move the originals into the vault",
		Args:    cobra.ArbitraryArgs,
		RunE: a.run(func(svc *logic.Services, _ []string) error {
			return svc.Encrypt()
		}),
	}

	addTransformFlags(cmd)

	return cmd
}
