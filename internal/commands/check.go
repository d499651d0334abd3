package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/pegvault/internal/logic"
)

// NewCheckCommand creates a new cobra command for the check subcommand.
func NewCheckCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] [files/directories...]",
		Short: "Validate files and patterns for encryption without touching anything",
		Args:  cobra.ArbitraryArgs,
		RunE: a.run(func(svc *logic.Services, _ []string) error {
			return svc.Check()
		}),
	}

	cmd.Flags().IntP("peg", "p", 0, "Shift that would be applied")
	cmd.Flags().StringP("output", "o", "", "Output file, only for a single input")

	addSelectionFlags(cmd)

	return cmd
}
