// Package commands provides the command-line interface for pegvault.
//
// It implements commands for:
//   - encryption and decryption with vaulting of originals
//   - vault listing, retrieval and removal
//   - digests, comparisons and verification against the vault
//   - history viewing and pre-flight checks
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands
