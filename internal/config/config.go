// Package config holds the pegvault configuration and builds the services
// every command works with.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/goccy/go-yaml"

	"github.com/idelchi/pegvault/internal/encryption"
	"github.com/idelchi/pegvault/internal/validate"
	"github.com/idelchi/pegvault/internal/vault"
)

// Defaults.
const (
	DefaultHistory        = "history.md"
	DefaultManifest       = ".private_vault.toml"
	DefaultMarker         = "enc_"
	DefaultCompareBytes   = 100_000
	DefaultLogLevel       = "warn"
	redactedPasswordValue = "********"
)

// ErrInvalid wraps every configuration validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete runtime configuration.
type Config struct {
	// Layout
	VaultDir string `mapstructure:"vault-dir" validate:"required"          yaml:"vault-dir"`
	History  string `mapstructure:"history"   validate:"required"          yaml:"history"`
	Manifest string `mapstructure:"manifest"  validate:"required"          yaml:"manifest"`
	Marker   string `mapstructure:"marker"    validate:"required,basename" yaml:"marker"`

	// Pegs
	MinPeg int `mapstructure:"min-peg" validate:"oneof=0 1"               yaml:"min-peg"`
	MaxPeg int `mapstructure:"max-peg" validate:"gtefield=MinPeg,lte=255" yaml:"max-peg"`
	Peg    int `mapstructure:"peg"                                          yaml:"peg,omitempty"`

	// Processing
	ChunkSize int      `mapstructure:"chunk-size" validate:"gte=1"   yaml:"chunk-size"`
	MaxBytes  int64    `mapstructure:"max-bytes"  validate:"gte=0"   yaml:"max-bytes"`
	Parallel  int      `mapstructure:"parallel"   validate:"gte=1"   yaml:"parallel"`
	Allow     []string `mapstructure:"allow"                         yaml:"allow,omitempty"`
	Output    string   `mapstructure:"output"                        yaml:"output,omitempty"`
	Binary    bool     `mapstructure:"binary"                        yaml:"binary,omitempty"`

	// Selection
	Include   []string `mapstructure:"include"    yaml:"include,omitempty"`
	Exclude   []string `mapstructure:"exclude"    yaml:"exclude,omitempty"`
	FilesFrom string   `mapstructure:"files-from" yaml:"files-from,omitempty"`

	// Admin gate
	AdminHash     string `mapstructure:"admin-hash"     yaml:"admin-hash,omitempty"`
	AdminPassword string `mapstructure:"admin-password" yaml:"admin-password,omitempty"`

	// Output control
	Quiet    bool   `mapstructure:"quiet"     yaml:"quiet,omitempty"`
	Stats    bool   `mapstructure:"stats"     yaml:"stats,omitempty"`
	Show     bool   `mapstructure:"show"      yaml:"-"`
	LogLevel string `mapstructure:"log-level" validate:"omitempty,oneof=trace debug info warn error disabled" yaml:"log-level"`

	// Positional arguments
	Files []string `mapstructure:"-" yaml:"-"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		VaultDir:  vault.DefaultDir,
		History:   DefaultHistory,
		Manifest:  DefaultManifest,
		Marker:    DefaultMarker,
		MinPeg:    validate.MinPeg,
		MaxPeg:    validate.MaxPeg,
		ChunkSize: encryption.DefaultChunkSize,
		MaxBytes:  DefaultCompareBytes,
		Parallel:  runtime.NumCPU(),
		LogLevel:  DefaultLogLevel,
	}
}

// Validate validates the configuration against the struct tags.
func (c *Config) Validate() error {
	v, err := newValidator()
	if err != nil {
		return err
	}

	if err := v.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", describe(err))
	}

	return nil
}

// Validator returns the path and peg validator for this configuration.
func (c *Config) Validator() (*validate.Validator, error) {
	v, err := validate.New(c.MinPeg, c.MaxPeg, c.Allow)
	if err != nil {
		return nil, fmt.Errorf("building validator: %w", err)
	}

	return v, nil
}

// EncryptedName returns the artifact path for an original.
func (c *Config) EncryptedName(original string) string {
	return filepath.Join(filepath.Dir(original), c.Marker+filepath.Base(original))
}

// Display renders the configuration as YAML with secrets hidden.
func (c *Config) Display() (string, error) {
	shown := *c
	if shown.AdminPassword != "" {
		shown.AdminPassword = redactedPasswordValue
	}

	out, err := yaml.Marshal(shown)
	if err != nil {
		return "", fmt.Errorf("rendering configuration: %w", err)
	}

	return string(out), nil
}
