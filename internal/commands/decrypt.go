package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/pegvault/internal/logic"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "decrypt [flags] [files/directories...]",
		Aliases: []string{"dec"},
		Short:   "Decrypt files, stripping the marker prefix from their names",
		Args:    cobra.ArbitraryArgs,
		RunE: a.run(func(svc *logic.Services, _ []string) error {
			return svc.Decrypt()
		}),
	}

	addTransformFlags(cmd)

	return cmd
}
