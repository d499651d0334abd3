package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/pegvault/internal/logic"
)

// NewHistoryCommand creates a new cobra command for the history subcommand.
func NewHistoryCommand(a *app) *cobra.Command {
	var (
		category string
		tail     int
	)

	cmd := &cobra.Command{
		Use:   "history [flags]",
		Short: "Show recorded operations and events",
		Args:  cobra.NoArgs,
		RunE: a.run(func(svc *logic.Services, _ []string) error {
			return svc.History(category, tail)
		}),
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only show this operation kind or event category")
	cmd.Flags().IntVarP(&tail, "tail", "n", 0, "Only show the last N entries")

	return cmd
}
