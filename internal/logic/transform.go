package logic

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/idelchi/pegvault/internal/encryption"
	pverrors "github.com/idelchi/pegvault/internal/errors"
	"github.com/idelchi/pegvault/internal/filter"
	"github.com/idelchi/pegvault/internal/history"
	"github.com/idelchi/pegvault/internal/ui"
	"github.com/idelchi/pegvault/internal/validate"
	"github.com/idelchi/pegvault/internal/vault"
)

// Encrypt encrypts every selected file next to itself under the marker
// prefix, then moves each original into the vault and records it in the
// manifest. A file that cannot be vaulted after a successful transform stays
// in place with a warning.
func (s *Services) Encrypt() error {
	return s.transform(encryption.Encrypt)
}

// Decrypt restores every selected file. The output defaults to the input
// name with the marker prefix removed.
func (s *Services) Decrypt() error {
	return s.transform(encryption.Decrypt)
}

type direction struct {
	mode      encryption.Mode
	kind      string
	failEvent string
	verb      string
}

func directionOf(mode encryption.Mode) direction {
	if mode == encryption.Decrypt {
		return direction{mode, history.KindDecrypt, history.EventDecryptFail, "Decrypted"}
	}

	return direction{mode, history.KindEncrypt, history.EventEncryptFail, "Encrypted"}
}

//nolint:cyclop // one pass over resolution, validation and processing
func (s *Services) transform(mode encryption.Mode) error {
	start := time.Now()
	dir := directionOf(mode)

	files, scanned, err := s.resolve(mode)
	if err != nil {
		return s.fail(dir.failEvent, err)
	}

	if err := s.validator.Peg(s.cfg.Peg); err != nil {
		return s.fail(dir.failEvent, err)
	}

	if s.cfg.Output != "" && len(files) > 1 {
		return s.fail(dir.failEvent, fmt.Errorf(
			"output can only be set for a single file, got %d: %w", len(files), pverrors.ErrConfig))
	}

	if mode == encryption.Encrypt {
		if err := s.vault.EnsureExists(); err != nil {
			return s.fail(dir.failEvent, err)
		}
	}

	var failures []error

	jobs := make([]encryption.Job, 0, len(files))

	for _, file := range files {
		output, err := s.prepare(file, mode)
		if err != nil {
			failures = append(failures, s.fail(dir.failEvent, err))

			continue
		}

		jobs = append(jobs, encryption.Job{Input: file, Output: output})
	}

	s.logger.Debug().
		Str("mode", mode.String()).
		Int("files", len(files)).
		Int("jobs", len(jobs)).
		Int("parallel", s.cfg.Parallel).
		Msg("processing")

	proc := encryption.NewProcessor(s.cfg.Peg, mode, s.cfg.ChunkSize, s.cfg.Parallel)

	processed, _, totalSize := proc.ProcessFiles(jobs, func(res encryption.Result) {
		if res.Error != nil {
			failures = append(failures, s.fail(dir.failEvent, res.Error))

			return
		}

		s.completed(dir, res)
	})

	if s.cfg.Stats {
		s.printStats(scanned, scanned-len(files), processed, len(failures), totalSize, time.Since(start))
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d file(s) failed: %w", len(failures), len(files), errors.Join(failures...))
	}

	return nil
}

// prepare checks one file before any byte is transformed and returns its output path.
func (s *Services) prepare(file string, mode encryption.Mode) (string, error) {
	base := filepath.Base(file)

	if s.vault.Contains(file) {
		return "", fmt.Errorf("input %q is inside the vault: %w", file, pverrors.ErrSourceInvalid)
	}

	params := validate.Params{Input: file, Output: s.cfg.Output, Peg: s.cfg.Peg}
	flags := validate.DefaultFlags()

	if mode == encryption.Encrypt {
		if strings.HasPrefix(base, s.cfg.Marker) || s.manifest.IsEncryptedArtifact(file) {
			return "", fmt.Errorf("input %q: %w", file, pverrors.ErrAlreadyProcessed)
		}

		if params.Output == "" {
			params.Output = s.cfg.EncryptedName(file)
		}
	} else {
		// Encrypted names keep the original extension only by convention.
		flags.CheckExtension = false

		if params.Output == "" {
			stripped, ok := strings.CutPrefix(base, s.cfg.Marker)
			if !ok || stripped == "" {
				return "", fmt.Errorf("input %q has no %q prefix: %w", file, s.cfg.Marker, pverrors.ErrOutputRequired)
			}

			params.Output = filepath.Join(filepath.Dir(file), stripped)
		}
	}

	if err := s.validator.Operation(params, flags); err != nil {
		return "", err
	}

	return params.Output, nil
}

// completed records a successful transform. Encrypted originals are vaulted.
func (s *Services) completed(dir direction, res encryption.Result) {
	if err := s.log.Operation(dir.kind, res.Input, res.Output, s.cfg.Peg); err != nil {
		s.logger.Warn().Err(err).Str("input", res.Input).Msg("could not record history operation")
	}

	s.printf("%s %s -> %s\n", dir.verb, ui.Path.Sprint(res.Input), ui.Path.Sprint(res.Output))

	if dir.mode == encryption.Encrypt {
		s.store(res)
	}
}

// store moves an encrypted original into the vault and records it.
func (s *Services) store(res encryption.Result) {
	dest, err := s.vault.MoveIn(res.Input)
	if err != nil {
		s.log.Note(history.EventVaultFail, "[%s] %s kept in place: %v", pverrors.Category(err), res.Input, err)
		s.warn("%s was encrypted but not vaulted: %v", res.Input, err)

		return
	}

	digest, err := s.verifier.Digest(dest)
	if err != nil {
		s.logger.Warn().Err(err).Str("entry", dest).Msg("vaulted without digest")
	}

	rec := vault.Record{
		Name:      filepath.Base(dest),
		Original:  res.Input,
		Encrypted: res.Output,
		Digest:    digest,
		StoredAt:  time.Now(),
	}

	if err := s.manifest.Add(rec); err != nil {
		s.logger.Warn().Err(err).Str("entry", rec.Name).Msg("could not update vault manifest")
		s.warn("%s vaulted but not recorded in the manifest: %v", rec.Name, err)
	}

	s.printf("Vaulted %s\n", ui.Path.Sprint(dest))
}

// resolve expands the configured arguments and path list into files.
func (s *Services) resolve(mode encryption.Mode) ([]string, int, error) {
	args := append([]string{}, s.cfg.Files...)

	if s.cfg.FilesFrom != "" {
		paths, err := filter.LoadPaths(s.cfg.FilesFrom)
		if err != nil {
			s.log.Note(history.EventLoadFail, "%v", err)

			return nil, 0, fmt.Errorf("%w: %w", pverrors.ErrConfig, err)
		}

		args = append(args, paths...)
	}

	if len(args) == 0 {
		return nil, 0, fmt.Errorf("no input files: %w", pverrors.ErrNotFound)
	}

	files, scanned, err := filter.Resolve(args, filter.Options{
		Include:  s.cfg.Include,
		Exclude:  s.cfg.Exclude,
		SkipDirs: []string{s.cfg.VaultDir},
		Skip:     s.skipWalked(mode),
	})
	if err != nil {
		return nil, scanned, fmt.Errorf("resolving files: %w: %w", pverrors.ErrNotFound, err)
	}

	return files, scanned, nil
}

// skipWalked rejects bookkeeping files and, depending on mode, files that
// are or are not encrypted artifacts.
func (s *Services) skipWalked(mode encryption.Mode) func(string) bool {
	bookkeeping := []string{s.cfg.History, s.cfg.Manifest}

	return func(path string) bool {
		for _, f := range bookkeeping {
			if validate.SameFile(path, f) {
				return true
			}
		}

		marked := strings.HasPrefix(filepath.Base(path), s.cfg.Marker)

		if mode == encryption.Decrypt {
			return !marked
		}

		return marked || s.manifest.IsEncryptedArtifact(path)
	}
}
