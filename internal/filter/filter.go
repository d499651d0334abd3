// Package filter expands file and directory arguments into the list of files
// a batch operates on, using find -path include/exclude patterns.
package filter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/idelchi/pegvault/pkg/pathmatch"
)

// Options control directory expansion.
type Options struct {
	// Include and Exclude are find -path patterns. Excludes always win.
	Include []string
	Exclude []string

	// SkipDirs are pruned from every walk (the vault, for instance).
	SkipDirs []string

	// Skip rejects walked files by path. Explicit file arguments bypass it.
	Skip func(path string) bool
}

// Filter selects files based on include/exclude patterns.
// Empty includes means "match all".
type Filter struct {
	includes *pathmatch.Matcher
	excludes *pathmatch.Matcher
}

// NewFilter compiles include/exclude patterns into a reusable filter.
func NewFilter(includes, excludes []string) (*Filter, error) {
	inc, err := pathmatch.NewMatcher(includes)
	if err != nil {
		return nil, fmt.Errorf("compiling include patterns: %w", err)
	}

	exc, err := pathmatch.NewMatcher(excludes)
	if err != nil {
		return nil, fmt.Errorf("compiling exclude patterns: %w", err)
	}

	return &Filter{includes: inc, excludes: exc}, nil
}

// Match reports whether the slash-separated path passes the filter.
func (f *Filter) Match(path string, hasIncludes bool) bool {
	included := !hasIncludes || f.includes.MatchAny(path)

	return included && !f.excludes.MatchAny(path)
}

// Resolve expands args into files. Files named explicitly are kept as given;
// directories are walked and filtered. Duplicates are dropped.
// It returns the matched files and the number of candidates scanned.
func Resolve(args []string, opts Options) (files []string, scanned int, err error) {
	flt, err := NewFilter(opts.Include, opts.Exclude)
	if err != nil {
		return nil, 0, err
	}

	hasIncludes := len(opts.Include) > 0

	skipDirs := make([]os.FileInfo, 0, len(opts.SkipDirs))

	for _, dir := range opts.SkipDirs {
		if info, err := os.Stat(dir); err == nil {
			skipDirs = append(skipDirs, info)
		}
	}

	seen := make(map[string]struct{})

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}

		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		arg = filepath.Clean(arg)

		info, err := os.Stat(arg)
		if err != nil {
			// Reported per file by the validator.
			scanned++

			add(arg)

			continue
		}

		if !info.IsDir() {
			scanned++

			add(arg)

			continue
		}

		walked, total, err := walkDir(arg, flt, hasIncludes, skipDirs, opts.Skip)
		if err != nil {
			return nil, 0, err
		}

		scanned += total

		for _, path := range walked {
			add(path)
		}
	}

	if len(files) == 0 {
		return nil, scanned, fmt.Errorf("no files matched the provided patterns: %v", args)
	}

	return files, scanned, nil
}

// walkDir walks root recursively, returning files that pass the filter.
func walkDir(
	root string,
	flt *Filter,
	hasIncludes bool,
	skipDirs []os.FileInfo,
	skip func(string) bool,
) (files []string, total int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if pruned(d, skipDirs) {
				return filepath.SkipDir
			}

			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		total++

		if skip != nil && skip(path) {
			return nil
		}

		if !flt.Match(filepath.ToSlash(filepath.Clean(path)), hasIncludes) {
			return nil
		}

		files = append(files, path)

		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("walking %q: %w", root, err)
	}

	return files, total, nil
}

func pruned(d fs.DirEntry, skipDirs []os.FileInfo) bool {
	if len(skipDirs) == 0 {
		return false
	}

	info, err := d.Info()
	if err != nil {
		return false
	}

	for _, dir := range skipDirs {
		if os.SameFile(info, dir) {
			return true
		}
	}

	return false
}
