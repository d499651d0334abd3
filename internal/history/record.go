package history

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// TimeLayout is the timestamp layout used in history lines.
const TimeLayout = "2006-01-02 15:04:05"

// Operation kinds.
const (
	KindEncrypt = "ENCRYPT"
	KindDecrypt = "DECRYPT"
)

// Event categories.
const (
	EventEncryptFail   = "ENCRYPT_FAIL"
	EventDecryptFail   = "DECRYPT_FAIL"
	EventVaultStore    = "VAULT_STORE"
	EventVaultFail     = "VAULT_FAIL"
	EventVaultRetrieve = "VAULT_RETRIEVE"
	EventRetrieveFail  = "RETRIEVE_FAIL"
	EventVaultRemove   = "VAULT_REMOVE"
	EventVaultCreate   = "VAULT_CREATE"
	EventConfigError   = "CONFIG_ERROR"
	EventHashError     = "HASH_ERROR"
	EventLoadFail      = "LOAD_FAIL"
	EventCompareBinary = "COMPARE_BINARY"
	EventCompareText   = "COMPARE_STRINGS"
	EventVerify        = "VERIFY"
	EventAdminDenied   = "ADMIN_DENIED"
)

// Record is one parsed history line.
type Record struct {
	// Event is true for event lines, false for operation lines.
	Event bool

	// Kind is the operation kind (ENCRYPT, DECRYPT) or the event category.
	Kind string

	// Input, Output and Peg are set for operation lines.
	Input  string
	Output string
	Peg    int

	// Details is set for event lines.
	Details string

	Time time.Time
}

// String renders the record in its on-disk format, without the trailing newline.
func (r Record) String() string {
	stamp := r.Time.Format(TimeLayout)

	if r.Event {
		return fmt.Sprintf("EVENT (%s): %s | %s", r.Kind, r.Details, stamp)
	}

	return fmt.Sprintf("%s: %s -> %s (pegs: %d) | %s", r.Kind, r.Input, r.Output, r.Peg, stamp)
}

// ErrMalformed is returned by ParseLine for lines in neither format.
var ErrMalformed = errors.New("malformed history line")

var (
	eventLine     = regexp.MustCompile(`^EVENT \(([^)]*)\): (.*) \| (\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})$`)
	operationLine = regexp.MustCompile(`^([A-Z_]+): (.*) -> (.*) \(pegs: (-?\d+)\) \| (\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})$`)
)

// ParseLine parses a single history line.
func ParseLine(line string) (Record, error) {
	if m := eventLine.FindStringSubmatch(line); m != nil {
		stamp, err := time.ParseInLocation(TimeLayout, m[3], time.Local)
		if err != nil {
			return Record{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		return Record{Event: true, Kind: m[1], Details: m[2], Time: stamp}, nil
	}

	if m := operationLine.FindStringSubmatch(line); m != nil {
		peg, err := strconv.Atoi(m[4])
		if err != nil {
			return Record{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		stamp, err := time.ParseInLocation(TimeLayout, m[5], time.Local)
		if err != nil {
			return Record{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		return Record{Kind: m[1], Input: m[2], Output: m[3], Peg: peg, Time: stamp}, nil
	}

	return Record{}, fmt.Errorf("%w: %q", ErrMalformed, line)
}
