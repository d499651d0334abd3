package encryption

// Shift writes the transform of src into dst, which must be at least as long.
// dst and src may be the same slice.
func Shift(dst, src []byte, peg int, mode Mode) {
	delta := byte(peg % 256) //nolint:gosec // reduced modulo 256
	if mode == Decrypt {
		delta = -delta
	}

	for i, b := range src {
		dst[i] = b + delta
	}
}

// Apply returns the transform of data as a new slice, leaving data untouched.
func Apply(data []byte, peg int, mode Mode) []byte {
	out := make([]byte, len(data))
	Shift(out, data, peg, mode)

	return out
}
