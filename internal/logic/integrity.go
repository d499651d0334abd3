package logic

import (
	"errors"
	"fmt"

	"github.com/idelchi/pegvault/internal/integrity"
	"github.com/idelchi/pegvault/internal/ui"
)

// Verify re-encrypts the vaulted original name in memory and compares it
// with the external artifact.
func (s *Services) Verify(name, external string) error {
	if err := s.gate.Require("verify"); err != nil {
		return err
	}

	res := s.verifier.VerifyAgainstExternal(name, external, s.cfg.Peg, s.cfg.MaxBytes)
	if res.Err != nil {
		return res.Err
	}

	return s.reportText(res, "vault:"+name, external)
}

// Compare compares two files, by digest when Binary is set and byte by byte otherwise.
func (s *Services) Compare(a, b string) error {
	if s.cfg.Binary {
		res := s.verifier.CompareBinary(a, b)
		if err := errors.Join(res.ErrA, res.ErrB); err != nil {
			return err
		}

		s.printf("%s  %s  %s\n", ui.Highlight.Sprint(res.DigestA), humanizeSize(res.SizeA), ui.Path.Sprint(a))
		s.printf("%s  %s  %s\n", ui.Highlight.Sprint(res.DigestB), humanizeSize(res.SizeB), ui.Path.Sprint(b))

		if !res.Identical() {
			return fmt.Errorf("%s and %s: %w", a, b, ErrMismatch)
		}

		s.printf("%s\n", ui.Success.Sprint("identical"))

		return nil
	}

	res := s.verifier.CompareText(a, b, s.cfg.MaxBytes)
	if res.Err != nil {
		return res.Err
	}

	return s.reportText(res, a, b)
}

func (s *Services) reportText(res integrity.TextResult, a, b string) error {
	if res.Truncated {
		s.warn("comparison limited to the first %d bytes", s.cfg.MaxBytes)
	}

	s.printf("Match: %s\n", ui.Highlight.Sprintf("%.2f%%", res.MatchPercentage))

	if res.Identical() {
		s.printf("%s\n", ui.Success.Sprint("identical"))

		return nil
	}

	if res.PrefixMatch() {
		return fmt.Errorf("%s and %s match in the first %d bytes only: %w", a, b, s.cfg.MaxBytes, ErrInconclusive)
	}

	s.printf("First difference at byte %s\n", ui.Highlight.Sprint(res.FirstDiffOffset))

	return fmt.Errorf("%s and %s: %w", a, b, ErrMismatch)
}

// Digest prints the SHA-256 of each file in sha256sum format.
func (s *Services) Digest(files []string) error {
	var failures []error

	for _, res := range s.verifier.DigestAll(files, s.cfg.Parallel) {
		if res.Err != nil {
			failures = append(failures, res.Err)
			fmt.Fprintln(s.errOut, ui.Error.Sprint(res.Err))

			continue
		}

		fmt.Fprintf(s.out, "%s  %s\n", res.Digest, res.Path)
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d file(s) could not be hashed: %w", len(failures), len(files), errors.Join(failures...))
	}

	return nil
}
