package history

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Log appends records to a history file.
type Log struct {
	path   string
	now    func() time.Time
	logger zerolog.Logger
	mu     sync.Mutex
}

// New returns a Log writing to path. The file is created on first append.
// Appends that fail inside Note are reported to logger.
func New(path string, logger zerolog.Logger) *Log {
	return &Log{path: path, now: time.Now, logger: logger}
}

// Path returns the history file path.
func (l *Log) Path() string {
	return l.path
}

// Operation appends an operation record.
func (l *Log) Operation(kind, input, output string, peg int) error {
	return l.append(Record{Kind: kind, Input: input, Output: output, Peg: peg, Time: l.now()})
}

// Event appends an event record. Line breaks in details are flattened so
// every record stays on one line.
func (l *Log) Event(category, details string) error {
	details = strings.ReplaceAll(details, "\n", "; ")

	return l.append(Record{Event: true, Kind: category, Details: details, Time: l.now()})
}

// Eventf appends an event record with formatted details.
func (l *Log) Eventf(category, format string, args ...any) error {
	return l.Event(category, fmt.Sprintf(format, args...))
}

// Note appends an event record for callers that must not fail on audit errors.
// A failed append is reported as a warning on the diagnostic logger.
func (l *Log) Note(category, format string, args ...any) {
	if l == nil {
		return
	}

	if err := l.Eventf(category, format, args...); err != nil {
		l.logger.Warn().Err(err).Str("category", category).Msg("could not record history event")
	}
}

func (l *Log) append(rec Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating history directory: %w", err)
		}
	}

	//nolint:gosec // history file location is configured by the user
	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("opening history file %q: %w", l.path, err)
	}

	if _, err := file.WriteString(rec.String() + "\n"); err != nil {
		file.Close() //nolint:errcheck,gosec // write error takes precedence

		return fmt.Errorf("appending to history file %q: %w", l.path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing history file %q: %w", l.path, err)
	}

	return nil
}

// Records reads every record in the history file.
// A missing file yields no records. Malformed lines are skipped and counted.
func (l *Log) Records() (records []Record, skipped int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 0, nil
	}

	if err != nil {
		return nil, 0, fmt.Errorf("opening history file %q: %w", l.path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		rec, err := ParseLine(line)
		if err != nil {
			skipped++

			continue
		}

		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return records, skipped, fmt.Errorf("reading history file %q: %w", l.path, err)
	}

	return records, skipped, nil
}
