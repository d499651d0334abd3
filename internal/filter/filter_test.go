package filter_test

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/idelchi/pegvault/internal/filter"
)

func tree(t *testing.T, files ...string) string {
	t.Helper()

	root := t.TempDir()

	for _, f := range files {
		path := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			t.Fatal(err)
		}

		if err := os.WriteFile(path, []byte(f), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	return root
}

func rel(t *testing.T, root string, files []string) []string {
	t.Helper()

	out := make([]string, 0, len(files))

	for _, f := range files {
		r, err := filepath.Rel(root, f)
		if err != nil {
			t.Fatal(err)
		}

		out = append(out, filepath.ToSlash(r))
	}

	slices.Sort(out)

	return out
}

func TestResolve(t *testing.T) {
	t.Parallel()

	root := tree(t,
		"notes.txt",
		"enc_old.txt",
		"docs/readme.md",
		"docs/plan.txt",
		".private_vault/vaulted.txt",
	)

	tests := []struct {
		name    string
		opts    filter.Options
		want    []string
		scanned int
	}{
		{
			name:    "everything outside the vault",
			opts:    filter.Options{SkipDirs: []string{filepath.Join(root, ".private_vault")}},
			want:    []string{"docs/plan.txt", "docs/readme.md", "enc_old.txt", "notes.txt"},
			scanned: 4,
		},
		{
			name: "include txt",
			opts: filter.Options{
				Include:  []string{"*.txt"},
				SkipDirs: []string{filepath.Join(root, ".private_vault")},
			},
			want:    []string{"docs/plan.txt", "enc_old.txt", "notes.txt"},
			scanned: 4,
		},
		{
			name: "exclude wins",
			opts: filter.Options{
				Include:  []string{"*.txt"},
				Exclude:  []string{"*/docs/*"},
				SkipDirs: []string{filepath.Join(root, ".private_vault")},
			},
			want:    []string{"enc_old.txt", "notes.txt"},
			scanned: 4,
		},
		{
			name: "skip marker files",
			opts: filter.Options{
				SkipDirs: []string{filepath.Join(root, ".private_vault")},
				Skip: func(path string) bool {
					return strings.HasPrefix(filepath.Base(path), "enc_")
				},
			},
			want:    []string{"docs/plan.txt", "docs/readme.md", "notes.txt"},
			scanned: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files, scanned, err := filter.Resolve([]string{root}, tt.opts)
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}

			if got := rel(t, root, files); !slices.Equal(got, tt.want) {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}

			if scanned != tt.scanned {
				t.Errorf("scanned = %d, want %d", scanned, tt.scanned)
			}
		})
	}
}

func TestResolveExplicitFiles(t *testing.T) {
	t.Parallel()

	root := tree(t, "enc_a.txt")
	explicit := filepath.Join(root, "enc_a.txt")
	missing := filepath.Join(root, "missing.txt")

	files, _, err := filter.Resolve([]string{explicit, explicit, missing}, filter.Options{
		Include: []string{"*.md"},
		Skip:    func(string) bool { return true },
	})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if !slices.Equal(files, []string{explicit, missing}) {
		t.Errorf("Resolve() = %v", files)
	}
}

func TestResolveNoMatches(t *testing.T) {
	t.Parallel()

	root := tree(t, "a.md")

	if _, _, err := filter.Resolve([]string{root}, filter.Options{Include: []string{"*.txt"}}); err == nil {
		t.Error("Resolve() = nil error, want no matches")
	}
}

func TestLoadPaths(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "paths.jsonc")

	content := `[
  // reports
  "reports/q1.txt",
  "notes.txt", /* trailing comma follows */
]`

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	paths, err := filter.LoadPaths(path)
	if err != nil {
		t.Fatalf("LoadPaths() error: %v", err)
	}

	if !slices.Equal(paths, []string{"reports/q1.txt", "notes.txt"}) {
		t.Errorf("LoadPaths() = %v", paths)
	}

	if _, err := filter.LoadPaths(filepath.Join(t.TempDir(), "none.jsonc")); err == nil {
		t.Error("LoadPaths(missing) = nil error")
	}
}
