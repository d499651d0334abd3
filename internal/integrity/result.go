package integrity

// NoDifference is the FirstDiffOffset of identical contents.
const NoDifference int64 = -1

// TextResult is the outcome of a byte-by-byte comparison.
type TextResult struct {
	// Readable is false when either side could not be loaded.
	Readable bool

	ContentA string
	ContentB string

	// MatchPercentage is the number of equal positions in the overlap
	// divided by the longer length, times 100.
	MatchPercentage float64

	// FirstDiffOffset is the first differing position, or NoDifference.
	FirstDiffOffset int64

	// Truncated is set when either side was cut at the size limit.
	Truncated bool

	Err error
}

// Identical reports whether both sides were loaded in full and are equal.
// Equal prefixes of truncated contents are not identical.
func (r TextResult) Identical() bool {
	return r.Readable && !r.Truncated && r.FirstDiffOffset == NoDifference
}

// PrefixMatch reports whether the loaded prefixes are equal.
func (r TextResult) PrefixMatch() bool {
	return r.Readable && r.FirstDiffOffset == NoDifference
}

// BinaryResult is the outcome of comparing two files by size and digest.
type BinaryResult struct {
	ExistsA bool
	ExistsB bool

	SizeA int64
	SizeB int64

	DigestA string
	DigestB string

	SizesMatch   bool
	DigestsMatch bool

	ErrA error
	ErrB error
}

// Identical reports whether both files exist with equal digests.
func (r BinaryResult) Identical() bool {
	return r.SizesMatch && r.DigestsMatch
}

// DigestResult is the digest of one file in a batch.
type DigestResult struct {
	Path   string
	Digest string
	Err    error
}
