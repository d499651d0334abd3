package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/idelchi/pegvault/internal/auth"
	"github.com/idelchi/pegvault/internal/logic"
)

// NewHashPasswordCommand creates a new cobra command for the hash-password subcommand.
func NewHashPasswordCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Print a bcrypt hash for the admin-hash setting",
		Long: `Prints the bcrypt hash of the admin password given with --admin-password,
PEGVAULT_ADMIN_PASSWORD, or typed at the prompt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd, args); err != nil {
				return ignoreShown(err)
			}

			return logic.HashPassword(a.cfg.AdminPassword, auth.Prompt(os.Stdin, cmd.ErrOrStderr()), cmd.OutOrStdout())
		},
	}
}
