package logic

import (
	"fmt"
	"io"

	"github.com/idelchi/pegvault/internal/auth"
)

// HashPassword writes the bcrypt hash of password to out, asking with
// prompt when password is empty. The hash goes into the admin-hash setting.
func HashPassword(password string, prompt auth.Prompter, out io.Writer) error {
	if password == "" && prompt != nil {
		var err error

		if password, err = prompt(); err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, hash)

	return nil
}
