package encryption_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/idelchi/pegvault/internal/encryption"
	pverrors "github.com/idelchi/pegvault/internal/errors"
)

// chunkRecorder records the size of every write it receives.
type chunkRecorder struct {
	bytes.Buffer
	sizes []int
}

func (c *chunkRecorder) Write(p []byte) (int, error) {
	c.sizes = append(c.sizes, len(p))

	return c.Buffer.Write(p)
}

func TestTransformChunks(t *testing.T) {
	t.Parallel()

	input := strings.Repeat("0123456789", 10)

	var out chunkRecorder

	n, err := encryption.Transform(strings.NewReader(input), &out, 3, encryption.Encrypt, make([]byte, 16))
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}

	if n != int64(len(input)) {
		t.Errorf("Transform() wrote %d bytes, want %d", n, len(input))
	}

	for _, s := range out.sizes {
		if s > 16 {
			t.Errorf("write of %d bytes exceeds the chunk size", s)
		}
	}

	want := encryption.Apply([]byte(input), 3, encryption.Encrypt)
	if !bytes.Equal(out.Bytes(), want) {
		t.Error("streamed output differs from the in-memory transform")
	}
}

func TestTransformReusesBuffer(t *testing.T) {
	data := []byte(strings.Repeat("0123456789", 100))
	buf := make([]byte, 64)
	r := bytes.NewReader(data)

	allocs := testing.AllocsPerRun(10, func() {
		r.Reset(data)

		if _, err := encryption.Transform(r, io.Discard, 7, encryption.Encrypt, buf); err != nil {
			t.Fatal(err)
		}
	})

	if allocs != 0 {
		t.Errorf("Transform() allocated %.0f times per run, want 0", allocs)
	}
}

func TestTransformSingleByteChunks(t *testing.T) {
	t.Parallel()

	input := []byte{0, 1, 127, 128, 254, 255}

	var out bytes.Buffer

	if _, err := encryption.Transform(iotest.OneByteReader(bytes.NewReader(input)), &out, 255,
		encryption.Encrypt, make([]byte, 1)); err != nil {
		t.Fatalf("Transform() error: %v", err)
	}

	if !bytes.Equal(out.Bytes(), encryption.Apply(input, 255, encryption.Encrypt)) {
		t.Errorf("Transform() = %v, want %v", out.Bytes(), encryption.Apply(input, 255, encryption.Encrypt))
	}
}

func TestTransformReadError(t *testing.T) {
	t.Parallel()

	failing := io.MultiReader(strings.NewReader("abc"), iotest.ErrReader(errors.New("disk gone")))

	var out bytes.Buffer

	n, err := encryption.Transform(failing, &out, 1, encryption.Encrypt, make([]byte, 8))
	if !errors.Is(err, pverrors.ErrRead) || !errors.Is(err, pverrors.ErrIO) {
		t.Fatalf("Transform() = %v, want ErrRead", err)
	}

	if n != 3 {
		t.Errorf("bytes written before failure = %d, want 3", n)
	}
}

type failingWriter struct{ after int }

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.after <= 0 {
		return 0, errors.New("device full")
	}

	f.after--

	return len(p), nil
}

func TestTransformWriteError(t *testing.T) {
	t.Parallel()

	_, err := encryption.Transform(strings.NewReader(strings.Repeat("x", 64)), &failingWriter{after: 1},
		1, encryption.Encrypt, make([]byte, 8))
	if !errors.Is(err, pverrors.ErrWrite) {
		t.Fatalf("Transform() = %v, want ErrWrite", err)
	}
}

func TestWriterDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	w := encryption.NewWriter(&out, 200, encryption.Decrypt, 4)
	data := []byte("abcdefghij")

	n, err := w.Write(data)
	if err != nil || n != len(data) {
		t.Fatalf("Write() = %d, %v", n, err)
	}

	if string(data) != "abcdefghij" {
		t.Errorf("Write modified its input: %q", data)
	}

	if !bytes.Equal(out.Bytes(), encryption.Apply(data, 200, encryption.Decrypt)) {
		t.Error("writer output differs from Apply")
	}
}
