// Package validate gates every pegvault operation before it touches a file.
//
// Checks are ordered and short-circuit: the first failure is returned, and no
// check modifies anything except the writability check, which creates and
// immediately removes a marker file in the output directory.
package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	pverrors "github.com/idelchi/pegvault/internal/errors"
	"github.com/idelchi/pegvault/pkg/pathmatch"
)

// Canonical peg bounds.
const (
	MinPeg = 1
	MaxPeg = 255
)

// Params are the inputs of one transform call.
type Params struct {
	Input  string
	Output string
	Peg    int
}

// Validator checks paths and pegs against a fixed policy.
type Validator struct {
	minPeg     int
	maxPeg     int
	extensions *pathmatch.Matcher
}

// New returns a Validator for the peg range [minPeg, maxPeg].
// allowed lists the file name patterns accepted by the extension policy;
// an empty list accepts every name.
func New(minPeg, maxPeg int, allowed []string) (*Validator, error) {
	if minPeg < 0 || maxPeg > 255 || minPeg > maxPeg {
		return nil, fmt.Errorf("invalid peg bounds [%d, %d]", minPeg, maxPeg)
	}

	matcher, err := pathmatch.NewMatcher(allowed)
	if err != nil {
		return nil, fmt.Errorf("compiling extension policy: %w", err)
	}

	return &Validator{minPeg: minPeg, maxPeg: maxPeg, extensions: matcher}, nil
}

// Bounds returns the inclusive peg range.
func (v *Validator) Bounds() (int, int) {
	return v.minPeg, v.maxPeg
}

// Input checks that path is an existing, non-empty regular file.
func (v *Validator) Input(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("input %q: %w", path, pverrors.ErrNotFound)
	}

	if err != nil {
		return fmt.Errorf("input %q: %w: %w", path, pverrors.ErrNotFound, err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("input %q: %w", path, pverrors.ErrNotRegular)
	}

	if info.Size() == 0 {
		return fmt.Errorf("input %q: %w", path, pverrors.ErrEmpty)
	}

	return nil
}

// Extension checks the base name of path against the extension policy.
func (v *Validator) Extension(path string) error {
	if v.extensions.Empty() {
		return nil
	}

	if !v.extensions.MatchBase(filepath.ToSlash(path)) {
		return fmt.Errorf("input %q: %w", path, pverrors.ErrExtension)
	}

	return nil
}

// Output checks that path can be written. If compareTo is not empty, path
// must not denote the same file, including through symbolic or hard links.
func (v *Validator) Output(path, compareTo string) error {
	if compareTo != "" && SameFile(path, compareTo) {
		return fmt.Errorf("output %q: %w", path, pverrors.ErrSameAsInput)
	}

	parent := filepath.Dir(path)

	info, err := os.Stat(parent)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("output directory %q: %w", parent, pverrors.ErrParentMissing)
	}

	if err != nil {
		return fmt.Errorf("output directory %q: %w: %w", parent, pverrors.ErrParentMissing, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("output directory %q: %w", parent, pverrors.ErrParentNotDir)
	}

	if err := checkWritable(parent); err != nil {
		return fmt.Errorf("output directory %q: %w: %w", parent, pverrors.ErrNotWritable, err)
	}

	return nil
}

// Peg checks that n lies within the configured bounds.
func (v *Validator) Peg(n int) error {
	if n < v.minPeg || n > v.maxPeg {
		return fmt.Errorf("peg %d not in [%d, %d]: %w", n, v.minPeg, v.maxPeg, pverrors.ErrPegOutOfRange)
	}

	return nil
}

// Operation applies the checks selected by flags in a fixed order
// (input, extension, output, peg) and returns the first failure.
func (v *Validator) Operation(params Params, flags Flags) error {
	if flags.CheckInput {
		if err := v.Input(params.Input); err != nil {
			return err
		}
	}

	if flags.CheckExtension {
		if err := v.Extension(params.Input); err != nil {
			return err
		}
	}

	if flags.CheckOutput {
		compareTo := ""
		if flags.OutputDiffersFromInput {
			compareTo = params.Input
		}

		if err := v.Output(params.Output, compareTo); err != nil {
			return err
		}
	}

	if flags.CheckPeg {
		if err := v.Peg(params.Peg); err != nil {
			return err
		}
	}

	return nil
}

// checkWritable creates and removes a marker file in dir.
// Permission bits are not consulted.
func checkWritable(dir string) error {
	tmp, err := os.CreateTemp(dir, ".write-check-*.tmp")
	if err != nil {
		return err //nolint:wrapcheck // wrapped by caller
	}

	name := tmp.Name()

	if err := tmp.Close(); err != nil {
		os.Remove(name) //nolint:errcheck,gosec // best-effort cleanup

		return err //nolint:wrapcheck // wrapped by caller
	}

	return os.Remove(name) //nolint:wrapcheck // wrapped by caller
}

// SameFile reports whether a and b denote the same file.
// Existing files are compared by identity, so hard links match; otherwise
// both paths are made absolute with symbolic links in their parents resolved.
func SameFile(a, b string) bool {
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)

	if errA == nil && errB == nil {
		return os.SameFile(infoA, infoB)
	}

	return canonical(a) == canonical(b)
}

// canonical resolves symbolic links in path, falling back to resolving only
// the parent directory when path itself does not exist yet.
func canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}

	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}

	dir, base := filepath.Split(abs)
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		return filepath.Join(resolved, base)
	}

	return abs
}
