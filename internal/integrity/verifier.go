package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/pegvault/internal/encryption"
	pverrors "github.com/idelchi/pegvault/internal/errors"
	"github.com/idelchi/pegvault/internal/history"
	"github.com/idelchi/pegvault/internal/validate"
	"github.com/idelchi/pegvault/internal/vault"
)

const digestChunkSize = 32 * 1024

// Verifier computes digests and comparisons and records them in the history.
type Verifier struct {
	log       *history.Log
	store     *vault.Store
	validator *validate.Validator
	buffers   sync.Pool
}

// New returns a Verifier. store is only needed by VerifyAgainstExternal.
func New(log *history.Log, store *vault.Store, validator *validate.Validator) *Verifier {
	v := &Verifier{log: log, store: store, validator: validator}
	v.buffers.New = func() any {
		buf := make([]byte, digestChunkSize)

		return &buf
	}

	return v
}

// Digest returns the lowercase hex SHA-256 of the file at path.
// An empty file has a valid digest; failures wrap ErrDigest.
func (v *Verifier) Digest(path string) (string, error) {
	sum, err := v.digest(path)
	if err != nil {
		v.log.Note(history.EventHashError, "Failed to hash %s: %v", path, err)

		return "", fmt.Errorf("digest of %q: %w: %w", path, pverrors.ErrDigest, err)
	}

	return sum, nil
}

func (v *Verifier) digest(path string) (string, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", err //nolint:wrapcheck // wrapped by Digest
	}
	defer file.Close()

	buf, _ := v.buffers.Get().(*[]byte) //nolint:errcheck // only *[]byte is stored
	defer v.buffers.Put(buf)

	hash := sha256.New()
	if _, err := io.CopyBuffer(hash, file, *buf); err != nil {
		return "", err //nolint:wrapcheck // wrapped by Digest
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// DigestAll hashes paths on up to parallel workers.
// Results keep the order of paths; failures are reported per entry.
func (v *Verifier) DigestAll(paths []string, parallel int) []DigestResult {
	results := make([]DigestResult, len(paths))

	group := errgroup.Group{}
	group.SetLimit(max(1, parallel))

	for i, path := range paths {
		group.Go(func() error {
			sum, err := v.Digest(path)
			results[i] = DigestResult{Path: path, Digest: sum, Err: err}

			return nil
		})
	}

	_ = group.Wait() //nolint:errcheck // workers report through results

	return results
}

// CompareBinary compares two files by existence, size and digest.
// It never fails outright: per-side problems are reported in the result.
func (v *Verifier) CompareBinary(a, b string) BinaryResult {
	var res BinaryResult

	res.ExistsA, res.SizeA, res.DigestA, res.ErrA = v.describe(a)
	res.ExistsB, res.SizeB, res.DigestB, res.ErrB = v.describe(b)

	res.SizesMatch = res.ExistsA && res.ExistsB && res.SizeA == res.SizeB
	res.DigestsMatch = res.DigestA != "" && res.DigestA == res.DigestB

	v.log.Note(history.EventCompareBinary, "%s vs %s: sizes match: %t, digests match: %t",
		a, b, res.SizesMatch, res.DigestsMatch)

	return res
}

func (v *Verifier) describe(path string) (exists bool, size int64, sum string, err error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, 0, "", fmt.Errorf("%q: %w", path, pverrors.ErrNotFound)
	}

	if err != nil {
		return false, 0, "", fmt.Errorf("%q: %w: %w", path, pverrors.ErrRead, err)
	}

	if !info.Mode().IsRegular() {
		return true, 0, "", fmt.Errorf("%q: %w", path, pverrors.ErrNotRegular)
	}

	sum, err = v.Digest(path)

	return true, info.Size(), sum, err
}

// CompareText loads at most maxBytes of each file and compares them.
// maxBytes <= 0 loads the whole files.
func (v *Verifier) CompareText(a, b string, maxBytes int64) TextResult {
	dataA, cutA, errA := readPrefix(a, maxBytes)
	dataB, cutB, errB := readPrefix(b, maxBytes)

	if err := errors.Join(errA, errB); err != nil {
		v.log.Note(history.EventCompareText, "%s vs %s: unreadable: %v", a, b, err)

		return TextResult{FirstDiffOffset: NoDifference, Err: err}
	}

	res := v.CompareContents(dataA, dataB, a, b)
	res.Truncated = cutA || cutB

	return res
}

// CompareContents compares two in-memory buffers. The labels name the sides
// in the history record.
func (v *Verifier) CompareContents(a, b []byte, labelA, labelB string) TextResult {
	pct, offset := Similarity(a, b)

	v.log.Note(history.EventCompareText, "%s vs %s: %.2f%% match, first difference at %d",
		labelA, labelB, pct, offset)

	return TextResult{
		Readable:        true,
		ContentA:        string(a),
		ContentB:        string(b),
		MatchPercentage: pct,
		FirstDiffOffset: offset,
	}
}

// VerifyAgainstExternal encrypts the vaulted original name in memory with peg
// and compares the result to the external file. Nothing is written to disk
// apart from the history record.
func (v *Verifier) VerifyAgainstExternal(name, external string, peg int, maxBytes int64) TextResult {
	fail := func(err error) TextResult {
		v.log.Note(history.EventVerify, "%s vs %s (pegs: %d): failed: %v", name, external, peg, err)

		return TextResult{FirstDiffOffset: NoDifference, Err: err}
	}

	if err := v.validator.Peg(peg); err != nil {
		return fail(err)
	}

	limit := maxBytes
	if limit > 0 {
		limit++
	} else {
		limit = 1<<63 - 1
	}

	plain, err := v.store.ReadPrefix(name, limit)
	if err != nil {
		return fail(err)
	}

	cutVault := maxBytes > 0 && int64(len(plain)) > maxBytes
	if cutVault {
		plain = plain[:maxBytes]
	}

	encrypted, cutExternal, err := readPrefix(external, maxBytes)
	if err != nil {
		return fail(err)
	}

	res := v.CompareContents(encryption.Apply(plain, peg, encryption.Encrypt), encrypted, "vault:"+name, external)
	res.Truncated = cutVault || cutExternal

	v.log.Note(history.EventVerify, "%s vs %s (pegs: %d): %.2f%% match", name, external, peg, res.MatchPercentage)

	return res
}

// readPrefix reads at most limit bytes of path and reports whether more were available.
func readPrefix(path string, limit int64) ([]byte, bool, error) {
	file, err := os.Open(filepath.Clean(path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, fmt.Errorf("%q: %w", path, pverrors.ErrNotFound)
	}

	if err != nil {
		return nil, false, fmt.Errorf("opening %q: %w: %w", path, pverrors.ErrRead, err)
	}
	defer file.Close()

	var reader io.Reader = file
	if limit > 0 {
		reader = io.LimitReader(file, limit+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, false, fmt.Errorf("reading %q: %w: %w", path, pverrors.ErrRead, err)
	}

	if limit > 0 && int64(len(data)) > limit {
		return data[:limit], true, nil
	}

	return data, false, nil
}
