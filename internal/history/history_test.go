package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func fixedClock() func() time.Time {
	stamp := time.Date(2024, 5, 1, 10, 12, 44, 0, time.Local)

	return func() time.Time { return stamp }
}

func TestLogLineFormats(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.md")

	log := New(path, zerolog.Nop())
	log.now = fixedClock()

	if err := log.Operation(KindEncrypt, "notes.txt", "enc_notes.txt", 5); err != nil {
		t.Fatalf("Operation() error: %v", err)
	}

	if err := log.Event(EventVaultStore, "Moved to vault: notes.txt"); err != nil {
		t.Fatalf("Event() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading history: %v", err)
	}

	want := "ENCRYPT: notes.txt -> enc_notes.txt (pegs: 5) | 2024-05-01 10:12:44\n" +
		"EVENT (VAULT_STORE): Moved to vault: notes.txt | 2024-05-01 10:12:44\n"

	if string(data) != want {
		t.Errorf("history content =\n%s\nwant\n%s", data, want)
	}
}

func TestLogOnlyGrows(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "history.md")

	log := New(path, zerolog.Nop())

	for i := range 3 {
		if err := log.Eventf(EventVerify, "round %d", i); err != nil {
			t.Fatalf("Eventf() error: %v", err)
		}
	}

	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading history: %v", err)
	}

	if err := log.Event(EventVerify, "round 3"); err != nil {
		t.Fatalf("Event() error: %v", err)
	}

	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading history: %v", err)
	}

	if !strings.HasPrefix(string(second), string(first)) {
		t.Error("existing history content was rewritten")
	}

	if got := strings.Count(string(second), "\n"); got != 4 {
		t.Errorf("line count = %d, want 4", got)
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.md")

	log := New(path, zerolog.Nop())
	log.now = fixedClock()

	_ = log.Operation(KindDecrypt, "dir/enc_a b.txt", "dir/a b.txt", 255)
	_ = log.Event(EventVaultFail, "Failed to move a.txt to vault post-encryption.")

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		t.Fatalf("opening history: %v", err)
	}

	_, _ = f.WriteString("garbage line\n\n")
	f.Close()

	records, skipped, err := log.Records()
	if err != nil {
		t.Fatalf("Records() error: %v", err)
	}

	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}

	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	op := records[0]
	if op.Event || op.Kind != KindDecrypt || op.Input != "dir/enc_a b.txt" || op.Output != "dir/a b.txt" || op.Peg != 255 {
		t.Errorf("operation record = %+v", op)
	}

	if !op.Time.Equal(fixedClock()()) {
		t.Errorf("operation time = %v", op.Time)
	}

	ev := records[1]
	if !ev.Event || ev.Kind != EventVaultFail || ev.Details != "Failed to move a.txt to vault post-encryption." {
		t.Errorf("event record = %+v", ev)
	}
}

func TestRecordsMissingFile(t *testing.T) {
	t.Parallel()

	records, skipped, err := New(filepath.Join(t.TempDir(), "none.md"), zerolog.Nop()).Records()
	if err != nil || skipped != 0 || records != nil {
		t.Errorf("Records() = %v, %d, %v; want nil, 0, nil", records, skipped, err)
	}
}

func TestNoteReportsFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")

	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder

	log := New(filepath.Join(blocker, "history.md"), zerolog.New(&buf))
	log.Note(EventVaultFail, "moving %s", "a.txt")

	if !strings.Contains(buf.String(), "could not record history event") {
		t.Errorf("expected a warning, got %q", buf.String())
	}

	var nilLog *Log
	nilLog.Note(EventVerify, "ignored")
}

func TestEventFlattensLineBreaks(t *testing.T) {
	t.Parallel()

	log := New(filepath.Join(t.TempDir(), "history.md"), zerolog.Nop())

	if err := log.Event(EventCompareText, "first failure\nsecond failure"); err != nil {
		t.Fatal(err)
	}

	records, skipped, err := log.Records()
	if err != nil || skipped != 0 || len(records) != 1 {
		t.Fatalf("Records() = %v, %d, %v", records, skipped, err)
	}

	if records[0].Details != "first failure; second failure" {
		t.Errorf("details = %q", records[0].Details)
	}
}
