// Package auth guards administrative commands behind a bcrypt-hashed password.
package auth

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	pverrors "github.com/idelchi/pegvault/internal/errors"
	"github.com/idelchi/pegvault/internal/history"
)

// ErrNoTerminal is returned by Prompt when stdin cannot be used for a hidden prompt.
var ErrNoTerminal = errors.New("stdin is not a terminal")

// Prompter asks the user for a password.
type Prompter func() (string, error)

// Gate checks the admin password before privileged actions.
// A Gate without a hash lets everything through.
type Gate struct {
	hash     string
	password string
	prompt   Prompter
	log      *history.Log
}

// New returns a Gate for the bcrypt hash. password is used instead of
// prompting when not empty; prompt may be nil to disable prompting.
func New(hash, password string, prompt Prompter, log *history.Log) *Gate {
	return &Gate{hash: strings.TrimSpace(hash), password: password, prompt: prompt, log: log}
}

// Enabled reports whether a password is required.
func (g *Gate) Enabled() bool {
	return g.hash != ""
}

// Require checks the admin password for action and records denials.
func (g *Gate) Require(action string) error {
	if !g.Enabled() {
		return nil
	}

	password := g.password

	if password == "" {
		if g.prompt == nil {
			return g.deny(action, "no password supplied")
		}

		var err error

		if password, err = g.prompt(); err != nil {
			return g.deny(action, err.Error())
		}
	}

	if err := Check(g.hash, password); err != nil {
		return g.deny(action, "wrong password")
	}

	return nil
}

func (g *Gate) deny(action, reason string) error {
	g.log.Note(history.EventAdminDenied, "Access to %s denied: %s", action, reason)

	return fmt.Errorf("%s: %s: %w", action, reason, pverrors.ErrAccessDenied)
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	return string(hash), nil
}

// Check compares password with the bcrypt hash.
func Check(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("checking password: %w", err)
	}

	return nil
}

// Prompt returns a Prompter reading a password from in without echo.
// The prompt text is written to out.
func Prompt(in *os.File, out io.Writer) Prompter {
	return func() (string, error) {
		fd := int(in.Fd()) //nolint:gosec // file descriptors fit in int

		if !term.IsTerminal(fd) {
			return "", ErrNoTerminal
		}

		fmt.Fprint(out, "Admin password: ")

		password, err := term.ReadPassword(fd)

		fmt.Fprintln(out)

		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}

		return string(password), nil
	}
}
