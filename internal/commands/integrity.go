package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/pegvault/internal/config"
	"github.com/idelchi/pegvault/internal/logic"
)

// NewVerifyCommand creates a new cobra command for the verify subcommand.
func NewVerifyCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [flags] NAME ENCRYPTED",
		Short: "Check that ENCRYPTED is the vaulted original NAME encrypted with the peg",
		Args:  cobra.ExactArgs(2), //nolint:mnd // vault entry and external file
		RunE: a.run(func(svc *logic.Services, args []string) error {
			return svc.Verify(args[0], args[1])
		}),
	}

	cmd.Flags().IntP("peg", "p", 0, "Shift the artifact was encrypted with")
	cmd.Flags().Int64("max-bytes", 0, "Compare at most this many bytes, 0 for the whole files")

	return cmd
}

// NewCompareCommand creates a new cobra command for the compare subcommand.
func NewCompareCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "compare [flags] FILE_A FILE_B",
		Aliases: []string{"cmp"},
		Short:   "Compare two files byte by byte, or by digest with --binary",
		Args:    cobra.ExactArgs(2), //nolint:mnd // two files
		RunE: a.run(func(svc *logic.Services, args []string) error {
			return svc.Compare(args[0], args[1])
		}),
	}

	cmd.Flags().BoolP("binary", "b", false, "Compare sizes and SHA-256 digests only")
	cmd.Flags().Int64("max-bytes", config.DefaultCompareBytes, "Compare at most this many bytes, 0 for no limit")

	return cmd
}

// NewDigestCommand creates a new cobra command for the digest subcommand.
func NewDigestCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "digest [flags] files...",
		Short: "Print SHA-256 digests",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.run(func(svc *logic.Services, args []string) error {
			return svc.Digest(args)
		}),
	}
}
