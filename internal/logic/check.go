package logic

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/idelchi/pegvault/internal/encryption"
	"github.com/idelchi/pegvault/internal/ui"
	"github.com/idelchi/pegvault/pkg/pathmatch"
)

// Check reports, without touching anything, whether the selected files
// could be encrypted. Include and exclude patterns that match nothing are
// reported as well.
func (s *Services) Check() error {
	candidates, err := collectFiles(s.cfg.Files, s.cfg.VaultDir)
	if err != nil {
		return err
	}

	failures := s.checkPatterns("include", s.cfg.Include, candidates)
	failures += s.checkPatterns("exclude", s.cfg.Exclude, candidates)

	if err := s.validator.Peg(s.cfg.Peg); err != nil {
		fmt.Fprintln(s.errOut, ui.Error.Sprint(err))

		failures++
	}

	files, _, err := s.resolve(encryption.Encrypt)
	if err != nil {
		return err
	}

	for _, file := range files {
		output, err := s.prepare(file, encryption.Encrypt)
		if err != nil {
			fmt.Fprintln(s.errOut, ui.Error.Sprint(err))

			failures++

			continue
		}

		s.printf("%s %s -> %s\n", ui.Success.Sprint("ok"), ui.Path.Sprint(file), ui.Path.Sprint(output))
	}

	if failures > 0 {
		return fmt.Errorf("%d check(s) failed", failures)
	}

	return nil
}

// collectFiles walks all positional args and returns every file path found,
// leaving out the vault.
func collectFiles(args []string, vaultDir string) ([]string, error) {
	var paths []string

	seen := make(map[string]struct{})

	add := func(path string) {
		clean := filepath.ToSlash(filepath.Clean(path))
		if _, ok := seen[clean]; !ok {
			seen[clean] = struct{}{}
			paths = append(paths, clean)
		}
	}

	vaultInfo, _ := os.Stat(vaultDir) //nolint:errcheck // a missing vault prunes nothing

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			// Reported by the per-file checks.
			continue
		}

		if !info.IsDir() {
			add(arg)

			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if vaultInfo != nil {
					if di, err := d.Info(); err == nil && os.SameFile(di, vaultInfo) {
						return filepath.SkipDir
					}
				}

				return nil
			}

			add(path)

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %q: %w", arg, err)
		}
	}

	return paths, nil
}

// checkPatterns tests each pattern individually against candidates.
// Returns the number of patterns that matched zero files.
func (s *Services) checkPatterns(kind string, patterns, candidates []string) int {
	var failures int

	for _, pattern := range patterns {
		matcher, err := pathmatch.NewMatcher([]string{pattern})
		if err != nil {
			fmt.Fprintln(s.errOut, ui.Error.Sprintf("%s: %s: invalid pattern: %v", kind, pattern, err))

			failures++

			continue
		}

		var count int

		for _, path := range candidates {
			if matcher.MatchAny(path) {
				count++
			}
		}

		if count == 0 {
			fmt.Fprintln(s.errOut, ui.Error.Sprintf("%s: %s: 0 files", kind, pattern))

			failures++
		} else {
			s.printf("%s: %s: %d files\n", kind, pattern, count)
		}
	}

	return failures
}
