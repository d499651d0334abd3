package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/idelchi/pegvault/internal/fileutil"
)

// Record ties a vaulted original to the artifact encrypted from it.
type Record struct {
	Name      string    `toml:"name"`
	Original  string    `toml:"original"`
	Encrypted string    `toml:"encrypted"`
	Digest    string    `toml:"digest"`
	StoredAt  time.Time `toml:"stored_at"`
}

type manifestFile struct {
	Entries []Record `toml:"entry"`
}

// Manifest is the TOML index of vaulted originals.
type Manifest struct {
	path    string
	entries []Record
}

// LoadManifest reads the manifest at path. A missing file is an empty manifest.
func LoadManifest(path string) (*Manifest, error) {
	m := &Manifest{path: path}

	var file manifestFile

	_, err := toml.DecodeFile(path, &file)
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}

	if err != nil {
		return nil, fmt.Errorf("loading manifest %q: %w", path, err)
	}

	m.entries = file.Entries

	return m, nil
}

// Records returns a copy of all records.
func (m *Manifest) Records() []Record {
	return append([]Record(nil), m.entries...)
}

// Lookup returns the record for a vault entry name.
func (m *Manifest) Lookup(name string) (Record, bool) {
	for _, r := range m.entries {
		if r.Name == name {
			return r, true
		}
	}

	return Record{}, false
}

// IsEncryptedArtifact reports whether path is a recorded encrypted output.
func (m *Manifest) IsEncryptedArtifact(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	for _, r := range m.entries {
		if r.Encrypted == abs {
			return true
		}
	}

	return false
}

// Add records a vaulted original, replacing any previous record with the
// same name, and saves the manifest.
func (m *Manifest) Add(rec Record) error {
	for _, p := range []*string{&rec.Original, &rec.Encrypted} {
		if *p == "" {
			continue
		}

		if abs, err := filepath.Abs(*p); err == nil {
			*p = abs
		}
	}

	m.drop(rec.Name)
	m.entries = append(m.entries, rec)

	return m.save()
}

// Forget drops the record for name and saves the manifest.
func (m *Manifest) Forget(name string) error {
	if !m.drop(name) {
		return nil
	}

	return m.save()
}

func (m *Manifest) drop(name string) bool {
	for i, r := range m.entries {
		if r.Name == name {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)

			return true
		}
	}

	return false
}

func (m *Manifest) save() (err error) {
	if dir := filepath.Dir(m.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating manifest directory: %w", err)
		}
	}

	tc, err := fileutil.NewTempContext(m.path)
	if err != nil {
		return fmt.Errorf("saving manifest: %w", err)
	}

	defer tc.CleanupOnError(&err)

	if err = toml.NewEncoder(tc.TmpFile).Encode(manifestFile{Entries: m.entries}); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	if _, err = tc.Commit(); err != nil {
		return fmt.Errorf("saving manifest: %w", err)
	}

	return nil
}
