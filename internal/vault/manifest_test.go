package vault_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/idelchi/pegvault/internal/vault"
)

func TestManifestPersists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".private_vault.toml")

	m, err := vault.LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest() on missing file: %v", err)
	}

	if len(m.Records()) != 0 {
		t.Fatal("new manifest is not empty")
	}

	stored := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	encrypted := filepath.Join(dir, "enc_notes.txt")

	if err := m.Add(vault.Record{
		Name:      "notes.txt",
		Original:  filepath.Join(dir, "notes.txt"),
		Encrypted: encrypted,
		Digest:    "abc123",
		StoredAt:  stored,
	}); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	reloaded, err := vault.LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest() error: %v", err)
	}

	rec, ok := reloaded.Lookup("notes.txt")
	if !ok {
		t.Fatal("Lookup() did not find the record")
	}

	if rec.Digest != "abc123" || !rec.StoredAt.Equal(stored) {
		t.Errorf("record = %+v", rec)
	}

	if !reloaded.IsEncryptedArtifact(encrypted) {
		t.Error("IsEncryptedArtifact(encrypted) = false")
	}

	if reloaded.IsEncryptedArtifact(filepath.Join(dir, "notes.txt")) {
		t.Error("IsEncryptedArtifact(original) = true")
	}

	if err := reloaded.Forget("notes.txt"); err != nil {
		t.Fatalf("Forget() error: %v", err)
	}

	again, err := vault.LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := again.Lookup("notes.txt"); ok {
		t.Error("record survived Forget")
	}
}

func TestManifestAddReplaces(t *testing.T) {
	t.Parallel()

	m, err := vault.LoadManifest(filepath.Join(t.TempDir(), "m.toml"))
	if err != nil {
		t.Fatal(err)
	}

	_ = m.Add(vault.Record{Name: "a.txt", Digest: "one"})
	_ = m.Add(vault.Record{Name: "a.txt", Digest: "two"})

	if got := m.Records(); len(got) != 1 || got[0].Digest != "two" {
		t.Errorf("Records() = %+v", got)
	}
}
