package commands_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idelchi/pegvault/internal/commands"
	"github.com/idelchi/pegvault/internal/config"
	pverrors "github.com/idelchi/pegvault/internal/errors"
)

// Commands run one at a time: the root command binds flags and environment
// variables process-wide.
type cli struct {
	dir    string
	layout []string
}

func newCLI(t *testing.T) cli {
	t.Helper()

	dir := t.TempDir()

	return cli{
		dir: dir,
		layout: []string{
			"--vault-dir", filepath.Join(dir, ".private_vault"),
			"--history", filepath.Join(dir, "history.md"),
			"--manifest", filepath.Join(dir, ".private_vault.toml"),
		},
	}
}

func (c cli) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root := commands.NewRootCommand("test")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, c.layout...))

	err := root.Execute()

	return out.String(), err
}

func (c cli) write(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(c.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestRootCommand(t *testing.T) {
	root := commands.NewRootCommand("1.2.3")

	if root.Version != "1.2.3" {
		t.Errorf("Version = %q, want 1.2.3", root.Version)
	}

	if root.Name() != "pegvault" {
		t.Errorf("Name() = %q, want pegvault", root.Name())
	}

	for _, name := range []string{"encrypt", "decrypt", "check", "vault", "verify", "compare", "digest", "history"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("Find(%q) = %v, %v", name, cmd, err)
		}
	}

	for _, flag := range []string{"vault-dir", "history", "manifest", "config", "show"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestWorkflow(t *testing.T) {
	c := newCLI(t)
	input := c.write(t, "input.txt", "hello vault")
	encrypted := filepath.Join(c.dir, "enc_input.txt")

	if out, err := c.run(t, "encrypt", "--peg", "5", input); err != nil {
		t.Fatalf("encrypt: %v\n%s", err, out)
	}

	if _, err := os.Stat(input); !errors.Is(err, os.ErrNotExist) {
		t.Error("original not moved into the vault")
	}

	out, err := c.run(t, "vault", "list")
	if err != nil || !strings.Contains(out, "input.txt") {
		t.Fatalf("vault list = %q, %v", out, err)
	}

	if out, err := c.run(t, "verify", "-p", "5", "input.txt", encrypted); err != nil {
		t.Fatalf("verify: %v\n%s", err, out)
	}

	_, err = c.run(t, "encrypt", "-p", "5", encrypted)
	if !errors.Is(err, pverrors.ErrCollision) {
		t.Fatalf("re-encrypt = %v, want collision", err)
	}

	if out, err := c.run(t, "decrypt", "-p", "5", encrypted); err != nil {
		t.Fatalf("decrypt: %v\n%s", err, out)
	}

	if got, _ := os.ReadFile(input); string(got) != "hello vault" {
		t.Errorf("decrypted = %q", got)
	}

	out, err = c.run(t, "history", "--category", "decrypt")
	if err != nil || !strings.HasPrefix(out, "DECRYPT: ") {
		t.Errorf("history = %q, %v", out, err)
	}
}

func TestInvalidConfiguration(t *testing.T) {
	c := newCLI(t)

	_, err := c.run(t, "digest", "--marker", "a/b", c.write(t, "f", "x"))
	if !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("digest with a bad marker = %v, want ErrInvalid", err)
	}

	history, _ := os.ReadFile(filepath.Join(c.dir, "history.md"))
	if !strings.Contains(string(history), "EVENT (CONFIG_ERROR)") {
		t.Errorf("history = %q, want a CONFIG_ERROR event", history)
	}
}

func TestShow(t *testing.T) {
	c := newCLI(t)

	out, err := c.run(t, "encrypt", "--show", "--peg", "9", "--admin-password", "secret")
	if err != nil {
		t.Fatalf("encrypt --show: %v", err)
	}

	if !strings.Contains(out, "peg: 9") || strings.Contains(out, "secret") {
		t.Errorf("shown configuration = %q", out)
	}

	if _, err := os.Stat(filepath.Join(c.dir, ".private_vault")); err == nil {
		t.Error("--show created the vault")
	}
}

func TestConfigFileAndEnvironment(t *testing.T) {
	c := newCLI(t)

	file := c.write(t, "pegvault.yml", "marker: hidden_\npeg: 3\n")
	t.Setenv("PEGVAULT_PEG", "4")

	input := c.write(t, "doc.txt", "abc")

	if out, err := c.run(t, "encrypt", "--config", file, input); err != nil {
		t.Fatalf("encrypt: %v\n%s", err, out)
	}

	got, err := os.ReadFile(filepath.Join(c.dir, "hidden_doc.txt"))
	if err != nil {
		t.Fatalf("marker from config file not applied: %v", err)
	}

	if want := []byte{'a' + 4, 'b' + 4, 'c' + 4}; !bytes.Equal(got, want) {
		t.Errorf("encrypted = %v, want peg from the environment", got)
	}
}
