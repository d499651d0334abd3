package vault

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	pverrors "github.com/idelchi/pegvault/internal/errors"
	"github.com/idelchi/pegvault/internal/fileutil"
	"github.com/idelchi/pegvault/internal/history"
	"github.com/idelchi/pegvault/internal/validate"
)

// DefaultDir is the vault directory used when none is configured.
const DefaultDir = ".private_vault"

// Entry describes one vaulted file.
type Entry struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Store owns a vault directory.
type Store struct {
	dir       string
	log       *history.Log
	validator *validate.Validator
}

// New returns a Store for dir. Nothing is created until EnsureExists.
func New(dir string, log *history.Log, validator *validate.Validator) *Store {
	return &Store{dir: dir, log: log, validator: validator}
}

// Dir returns the vault directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the location of name inside the vault.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// EnsureExists creates the vault directory if needed.
// A non-directory at the vault path is a configuration error.
func (s *Store) EnsureExists() error {
	info, err := os.Stat(s.dir)
	if err == nil {
		if !info.IsDir() {
			s.event(history.EventConfigError, "Vault path '%s' exists but is not a directory.", s.dir)

			return fmt.Errorf("vault %q: %w", s.dir, pverrors.ErrNotAVault)
		}

		return nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat vault %q: %w", s.dir, err)
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("creating vault %q: %w", s.dir, err)
	}

	s.event(history.EventVaultCreate, "Private vault directory created: %s", s.dir)

	return nil
}

// MoveIn renames original into the vault under its base name and returns the
// new location. An entry with the same name is never replaced.
func (s *Store) MoveIn(original string) (string, error) {
	if err := s.EnsureExists(); err != nil {
		return "", err
	}

	info, err := os.Stat(original)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("vault source %q: %w", original, pverrors.ErrSourceInvalid)
	}

	name := filepath.Base(original)
	dest := s.Path(name)

	taken, err := fileutil.Exists(dest)
	if err != nil {
		return "", fmt.Errorf("checking vault entry %q: %w: %w", name, pverrors.ErrMoveFailed, err)
	}

	if taken {
		return "", fmt.Errorf("vault entry %q: %w", name, pverrors.ErrNameCollision)
	}

	if err := os.Rename(original, dest); err != nil {
		return "", fmt.Errorf("moving %q: %w: %w", original, pverrors.ErrMoveFailed, err)
	}

	s.event(history.EventVaultStore, "Moved to vault: %s", name)

	return dest, nil
}

// Retrieve copies the entry name to dest, replacing dest if it exists.
// The vault copy is only read.
func (s *Store) Retrieve(name, dest string) error {
	if err := s.EnsureExists(); err != nil {
		return err
	}

	source, err := s.entryPath(name)
	if err != nil {
		s.event(history.EventRetrieveFail, "Vault entry %s not found", name)

		return err
	}

	if err := s.validator.Output(dest, source); err != nil {
		s.event(history.EventRetrieveFail, "Invalid destination %s for %s: %v", dest, name, err)

		return fmt.Errorf("%w: %w", pverrors.ErrDestinationInvalid, err)
	}

	if _, err := fileutil.CopyFile(source, dest); err != nil {
		s.event(history.EventRetrieveFail, "Failed copy from %s to %s", name, dest)

		return fmt.Errorf("retrieving %q: %w: %w", name, pverrors.ErrCopyFailed, err)
	}

	s.event(history.EventVaultRetrieve, "%s retrieved to %s", name, dest)

	return nil
}

// Open opens the entry name for reading.
func (s *Store) Open(name string) (*os.File, error) {
	source, err := s.entryPath(name)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(source) //nolint:gosec // confined to the vault by entryPath
	if err != nil {
		return nil, fmt.Errorf("opening vault entry %q: %w", name, err)
	}

	return file, nil
}

// ReadPrefix returns at most limit bytes of the entry name.
func (s *Store) ReadPrefix(name string, limit int64) ([]byte, error) {
	file, err := s.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit))
	if err != nil {
		return nil, fmt.Errorf("reading vault entry %q: %w: %w", name, pverrors.ErrRead, err)
	}

	return data, nil
}

// Remove deletes the entry name from the vault.
func (s *Store) Remove(name string) error {
	source, err := s.entryPath(name)
	if err != nil {
		return err
	}

	if err := os.Remove(source); err != nil {
		return fmt.Errorf("removing vault entry %q: %w", name, err)
	}

	s.event(history.EventVaultRemove, "Removed from vault: %s", name)

	return nil
}

// List returns the vault entries sorted by name. A missing vault is empty.
func (s *Store) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading vault %q: %w", s.dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))

	for _, d := range dirEntries {
		if !d.Type().IsRegular() {
			continue
		}

		info, err := d.Info()
		if err != nil {
			continue
		}

		entries = append(entries, Entry{Name: d.Name(), Size: info.Size(), ModTime: info.ModTime()})
	}

	slices.SortFunc(entries, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })

	return entries, nil
}

// Contains reports whether path lies inside the vault directory.
func (s *Store) Contains(path string) bool {
	vaultAbs, err := filepath.Abs(s.dir)
	if err != nil {
		return false
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	rel, err := filepath.Rel(vaultAbs, abs)

	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// entryPath resolves name to a regular file directly inside the vault.
func (s *Store) entryPath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("vault entry %q: %w", name, pverrors.ErrVaultEntryNotFound)
	}

	source := s.Path(name)

	info, err := os.Stat(source)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("vault entry %q: %w", name, pverrors.ErrVaultEntryNotFound)
	}

	return source, nil
}

func (s *Store) event(category, format string, args ...any) {
	s.log.Note(category, format, args...)
}
