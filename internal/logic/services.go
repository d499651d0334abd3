// Package logic wires the pegvault components together and implements the
// workflows behind each command.
package logic

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/idelchi/pegvault/internal/auth"
	"github.com/idelchi/pegvault/internal/config"
	pverrors "github.com/idelchi/pegvault/internal/errors"
	"github.com/idelchi/pegvault/internal/history"
	"github.com/idelchi/pegvault/internal/integrity"
	"github.com/idelchi/pegvault/internal/ui"
	"github.com/idelchi/pegvault/internal/validate"
	"github.com/idelchi/pegvault/internal/vault"
)

var (
	// ErrMismatch is returned by comparisons whose inputs differ.
	ErrMismatch = errors.New("contents differ")

	// ErrInconclusive is returned when compared prefixes match but the
	// contents were cut at the byte limit.
	ErrInconclusive = errors.New("comparison inconclusive")
)

// Options carry the process-level collaborators of Services.
type Options struct {
	Logger zerolog.Logger

	// Out receives command output, Err receives errors, warnings and stats.
	// Both default to the standard streams.
	Out io.Writer
	Err io.Writer

	// Prompt asks for the admin password when none is configured.
	Prompt auth.Prompter
}

// Services holds every component built from one configuration.
type Services struct {
	cfg       *config.Config
	log       *history.Log
	validator *validate.Validator
	vault     *vault.Store
	manifest  *vault.Manifest
	verifier  *integrity.Verifier
	gate      *auth.Gate
	logger    zerolog.Logger
	out       io.Writer
	errOut    io.Writer
}

// New builds the services for cfg. Nothing on disk is created.
func New(cfg *config.Config, opts Options) (*Services, error) {
	s := &Services{
		cfg:    cfg,
		logger: opts.Logger,
		out:    opts.Out,
		errOut: opts.Err,
	}

	if s.out == nil {
		s.out = os.Stdout
	}

	if s.errOut == nil {
		s.errOut = os.Stderr
	}

	s.log = history.New(cfg.History, opts.Logger)

	v, err := cfg.Validator()
	if err != nil {
		s.log.Note(history.EventConfigError, "%v", err)

		return nil, fmt.Errorf("%w: %w", pverrors.ErrConfig, err)
	}

	s.validator = v

	s.manifest, err = vault.LoadManifest(cfg.Manifest)
	if err != nil {
		s.log.Note(history.EventLoadFail, "%v", err)

		return nil, fmt.Errorf("%w: %w", pverrors.ErrConfig, err)
	}

	s.vault = vault.New(cfg.VaultDir, s.log, v)
	s.verifier = integrity.New(s.log, s.vault, v)
	s.gate = auth.New(cfg.AdminHash, cfg.AdminPassword, opts.Prompt, s.log)

	s.logger.Debug().
		Str("vault", cfg.VaultDir).
		Str("history", cfg.History).
		Str("manifest", cfg.Manifest).
		Int("min-peg", cfg.MinPeg).
		Int("max-peg", cfg.MaxPeg).
		Msg("services ready")

	return s, nil
}

// fail records err under event and reports it to the user.
func (s *Services) fail(event string, err error) error {
	s.log.Note(event, "[%s] %v", pverrors.Category(err), err)

	fmt.Fprintln(s.errOut, ui.Error.Sprint(err))

	return err
}

func (s *Services) printf(format string, args ...any) {
	if s.cfg.Quiet {
		return
	}

	fmt.Fprintf(s.out, format, args...)
}

func (s *Services) warn(format string, args ...any) {
	fmt.Fprintln(s.errOut, ui.Warning.Sprintf(format, args...))
}
