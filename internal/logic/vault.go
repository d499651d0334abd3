package logic

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/pegvault/internal/history"
	"github.com/idelchi/pegvault/internal/ui"
)

// VaultList prints the vaulted originals with their manifest details.
func (s *Services) VaultList() error {
	if err := s.gate.Require("vault list"); err != nil {
		return err
	}

	entries, err := s.vault.List()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		s.printf("Vault %s is empty\n", ui.Path.Sprint(s.vault.Dir()))

		return nil
	}

	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "NAME\tSIZE\tSTORED\tENCRYPTED AS\tDIGEST")

	for _, e := range entries {
		encrypted, digest := "-", "-"

		if rec, ok := s.manifest.Lookup(e.Name); ok {
			encrypted = rec.Encrypted

			if len(rec.Digest) >= 12 {
				digest = rec.Digest[:12]
			}
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.Name, humanizeSize(e.Size), humanize.Time(e.ModTime), encrypted, digest)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}

	return nil
}

// VaultGet copies the vaulted original name to dest.
func (s *Services) VaultGet(name, dest string) error {
	if err := s.gate.Require("vault get"); err != nil {
		return err
	}

	if err := s.vault.Retrieve(name, dest); err != nil {
		return err
	}

	s.printf("Retrieved %s -> %s\n", ui.Path.Sprint(name), ui.Path.Sprint(dest))

	return nil
}

// VaultRemove deletes the vaulted original name and its manifest record.
func (s *Services) VaultRemove(name string) error {
	if err := s.gate.Require("vault rm"); err != nil {
		return err
	}

	if err := s.vault.Remove(name); err != nil {
		s.log.Note(history.EventVaultFail, "Could not remove %s: %v", name, err)

		return err
	}

	if err := s.manifest.Forget(name); err != nil {
		s.warn("%s removed but still listed in the manifest: %v", name, err)
	}

	s.printf("Removed %s\n", ui.Path.Sprint(name))

	return nil
}
