package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/pegvault/internal/config"
	"github.com/idelchi/pegvault/internal/validate"
	"github.com/idelchi/pegvault/internal/vault"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(version string) *cobra.Command {
	a := newApp()

	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "pegvault [flags] command [flags]"
	root.Short = "File obfuscation with a private vault for originals"
	root.Long = `Obfuscates files with a reversible byte shift (the peg) and moves each
original into a private vault directory, from which it can be retrieved,
verified against an encrypted copy, or removed. Every operation is recorded
in an append-only history file.

The shift is a fixed byte rotation, not a cryptographic cipher.`
	root.SilenceUsage = true
	root.SilenceErrors = true

	flags := root.PersistentFlags()

	flags.String("config", "", "Configuration file (YAML, TOML or JSON)")
	flags.String("vault-dir", vault.DefaultDir, "Private vault directory")
	flags.String("history", config.DefaultHistory, "History file")
	flags.String("manifest", config.DefaultManifest, "Vault manifest file")
	flags.String("marker", config.DefaultMarker, "Name prefix of encrypted files")
	flags.Int("min-peg", validate.MinPeg, "Lowest accepted peg (0 or 1)")
	flags.Int("max-peg", validate.MaxPeg, "Highest accepted peg")
	flags.StringSlice("allow", nil, "Allowed file name patterns, all names if empty")
	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.BoolP("show", "s", false, "Show the configuration and exit")
	flags.String("log-level", config.DefaultLogLevel, "Diagnostic log level (debug, info, warn, error)")
	flags.String("admin-hash", "", "Bcrypt hash of the admin password guarding vault commands")
	flags.String("admin-password", "", "Admin password, prompted for when needed and not set")

	root.AddCommand(
		NewEncryptCommand(a),
		NewDecryptCommand(a),
		NewCheckCommand(a),
		NewVaultCommand(a),
		NewVerifyCommand(a),
		NewCompareCommand(a),
		NewDigestCommand(a),
		NewHistoryCommand(a),
		NewHashPasswordCommand(a),
	)

	return root
}

// addSelectionFlags adds the flags choosing which files a batch processes.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("include", "i", nil, "Include patterns (find -path semantics) for directory walks")
	cmd.Flags().StringSliceP("exclude", "e", nil, "Exclude patterns (find -path semantics) for directory walks")
	cmd.Flags().String("files-from", "", "JSONC file with an array of paths to process")
}

// addTransformFlags adds the flags shared by encrypt and decrypt.
func addTransformFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("peg", "p", 0, "Shift applied to every byte")
	cmd.Flags().StringP("output", "o", "", "Output file, only for a single input")
	cmd.Flags().Int("chunk-size", config.Default().ChunkSize, "Read chunk size in bytes")
	cmd.Flags().Bool("stats", false, "Print processing statistics")

	addSelectionFlags(cmd)
}
