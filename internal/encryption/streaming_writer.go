package encryption

import (
	"fmt"
	"io"

	pverrors "github.com/idelchi/pegvault/internal/errors"
)

// Writer shifts everything written to it before passing it on.
// It never modifies the caller's slice.
type Writer struct {
	w    io.Writer
	peg  int
	mode Mode
	buf  []byte
}

// NewWriter returns a Writer transforming into w with at most chunkSize
// bytes per underlying write.
func NewWriter(w io.Writer, peg int, mode Mode, chunkSize int) *Writer {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return &Writer{w: w, peg: peg, mode: mode, buf: make([]byte, chunkSize)}
}

// Write implements io.Writer.
func (sw *Writer) Write(data []byte) (int, error) {
	written := 0

	for len(data) > 0 {
		n := min(len(data), len(sw.buf))

		Shift(sw.buf[:n], data[:n], sw.peg, sw.mode)

		m, err := sw.w.Write(sw.buf[:n])
		written += m

		if err != nil {
			return written, fmt.Errorf("%w: %w", pverrors.ErrWrite, err)
		}

		if m != n {
			return written, fmt.Errorf("%w: %w", pverrors.ErrWrite, io.ErrShortWrite)
		}

		data = data[n:]
	}

	return written, nil
}
