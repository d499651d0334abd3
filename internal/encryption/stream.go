package encryption

import (
	"errors"
	"fmt"
	"io"

	pverrors "github.com/idelchi/pegvault/internal/errors"
)

// Transform streams r through the shift into w using buf as the read chunk.
// Each chunk is shifted in place and written before the next read, so buf
// holds transformed bytes afterwards.
// It returns the number of bytes written.
func Transform(r io.Reader, w io.Writer, peg int, mode Mode, buf []byte) (int64, error) {
	var total int64

	for {
		n, err := r.Read(buf)
		if n > 0 {
			Shift(buf[:n], buf[:n], peg, mode)

			m, werr := w.Write(buf[:n])
			total += int64(m)

			if werr != nil {
				return total, fmt.Errorf("%w: %w", pverrors.ErrWrite, werr)
			}

			if m != n {
				return total, fmt.Errorf("%w: %w", pverrors.ErrWrite, io.ErrShortWrite)
			}
		}

		if errors.Is(err, io.EOF) {
			return total, nil
		}

		if err != nil {
			return total, fmt.Errorf("%w after %d bytes: %w", pverrors.ErrRead, total, err)
		}
	}
}
