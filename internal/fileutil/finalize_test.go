package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFileReplacesDestination(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")

	if err := os.WriteFile(src, []byte("vaulted"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(dst, []byte("older and longer content"), 0o644); err != nil {
		t.Fatal(err)
	}

	size, err := CopyFile(src, dst)
	if err != nil {
		t.Fatalf("CopyFile() error: %v", err)
	}

	if size != int64(len("vaulted")) {
		t.Errorf("size = %d, want %d", size, len("vaulted"))
	}

	got, err := os.ReadFile(dst)
	if err != nil || string(got) != "vaulted" {
		t.Errorf("dst = %q, %v", got, err)
	}

	if got, err := os.ReadFile(src); err != nil || string(got) != "vaulted" {
		t.Errorf("src changed: %q, %v", got, err)
	}

	assertNoTemps(t, dir)
}

func TestCopyFileMissingSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, err := CopyFile(filepath.Join(dir, "none"), filepath.Join(dir, "out")); err == nil {
		t.Fatal("CopyFile() expected error")
	}

	assertNoTemps(t, dir)
}

func TestCleanupWithoutCommit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tc, err := NewTempContext(filepath.Join(dir, "out"))
	if err != nil {
		t.Fatal(err)
	}

	_, _ = tc.TmpFile.WriteString("partial")

	failure := errors.New("boom")
	tc.CleanupOnError(&failure)

	assertNoTemps(t, dir)

	if ok, _ := Exists(filepath.Join(dir, "out")); ok {
		t.Error("destination created without commit")
	}
}

func assertNoTemps(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	for _, e := range entries {
		if matched, _ := filepath.Match(".tmp-*", e.Name()); matched {
			t.Errorf("temporary file %q left behind", e.Name())
		}
	}
}
