// Package fileutil provides shared file operation helpers.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// OwnerReadWrite is the mode given to every file pegvault creates.
const OwnerReadWrite = 0o600

// TempContext holds state for an atomic file write: output is written to a
// temporary file next to the destination and renamed over it on Commit.
type TempContext struct {
	TmpFile *os.File
	TmpName string
	outPath string
	done    bool
}

// NewTempContext creates the temporary file for writing outPath.
// Callers must defer CleanupOnError.
func NewTempContext(outPath string) (*TempContext, error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(outPath), ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	return &TempContext{
		TmpFile: tmpFile,
		TmpName: tmpFile.Name(),
		outPath: outPath,
	}, nil
}

// Commit closes the temporary file, applies the owner-only mode and renames
// it to the destination, returning the final size.
func (tc *TempContext) Commit() (int64, error) {
	if err := tc.TmpFile.Close(); err != nil {
		return 0, fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Chmod(tc.TmpName, OwnerReadWrite); err != nil {
		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	if err := os.Rename(tc.TmpName, tc.outPath); err != nil {
		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	tc.done = true

	info, err := os.Stat(tc.outPath)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", tc.outPath, err)
	}

	return info.Size(), nil
}

// CleanupOnError closes the temp file and removes it unless Commit succeeded.
func (tc *TempContext) CleanupOnError(errp *error) {
	tc.TmpFile.Close() //nolint:errcheck,gosec // best-effort cleanup

	if *errp != nil || !tc.done {
		os.Remove(tc.TmpName) //nolint:errcheck,gosec // best-effort cleanup
	}
}

// CopyFile copies src to dst atomically, replacing dst if it exists.
// src is only read.
func CopyFile(src, dst string) (size int64, err error) {
	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		return 0, fmt.Errorf("opening %q: %w", src, err)
	}
	defer in.Close()

	tc, err := NewTempContext(dst)
	if err != nil {
		return 0, err
	}

	defer tc.CleanupOnError(&err)

	if _, err = io.Copy(tc.TmpFile, in); err != nil {
		return 0, fmt.Errorf("copying %q: %w", src, err)
	}

	return tc.Commit()
}

// Exists reports whether path exists without following a final symbolic link.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, fmt.Errorf("stat %q: %w", path, err)
}
