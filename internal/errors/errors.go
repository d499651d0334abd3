package errors

import "errors"

// Categories.
var (
	// ErrValidation groups errors detected before any destructive action starts.
	ErrValidation = errors.New("validation error")

	// ErrIO groups open, read and write failures.
	ErrIO = errors.New("i/o error")

	// ErrCollision groups naming collisions and re-encryption attempts.
	ErrCollision = errors.New("collision error")

	// ErrHash groups digest failures.
	ErrHash = errors.New("hash error")

	// ErrConfig groups installation layout problems.
	ErrConfig = errors.New("configuration error")
)

// Input file errors.
var (
	// ErrNotFound indicates the input path does not exist.
	ErrNotFound = newError(ErrValidation, "file does not exist")

	// ErrNotRegular indicates the input path is not a regular file.
	ErrNotRegular = newError(ErrValidation, "not a regular file")

	// ErrEmpty indicates the input file has zero length.
	ErrEmpty = newError(ErrValidation, "file is empty")

	// ErrExtension indicates the file name is not allowed by the extension policy.
	ErrExtension = newError(ErrValidation, "file name not allowed by extension policy")
)

// Output file errors.
var (
	// ErrSameAsInput indicates the output denotes the same file as the input.
	ErrSameAsInput = newError(ErrValidation, "output file cannot be the same as the input file")

	// ErrParentMissing indicates the output's parent directory does not exist.
	ErrParentMissing = newError(ErrValidation, "output directory does not exist")

	// ErrParentNotDir indicates the output's parent path is not a directory.
	ErrParentNotDir = newError(ErrValidation, "output parent is not a directory")

	// ErrNotWritable indicates the output directory rejected a test write.
	ErrNotWritable = newError(ErrValidation, "output directory is not writable")
)

// Parameter errors.
var (
	// ErrPegOutOfRange indicates the shift key is outside the configured bounds.
	ErrPegOutOfRange = newError(ErrValidation, "peg value out of range")

	// ErrOutputRequired indicates no output path was given and none could be derived.
	ErrOutputRequired = newError(ErrValidation, "output path required")

	// ErrAccessDenied indicates the admin password was missing or wrong.
	ErrAccessDenied = newError(ErrValidation, "admin access denied")
)

// Transform errors.
var (
	// ErrRead indicates the input could not be read to the end.
	ErrRead = newError(ErrIO, "read error")

	// ErrWrite indicates the output could not be written.
	ErrWrite = newError(ErrIO, "write error")
)

// Vault errors.
var (
	// ErrAlreadyProcessed indicates the input already carries the encrypted marker
	// or is a recorded encrypted artifact.
	ErrAlreadyProcessed = newError(ErrCollision, "file appears to be already encrypted")

	// ErrNameCollision indicates a file with the same base name is already vaulted.
	ErrNameCollision = newError(ErrCollision, "a file with this name already exists in the vault")

	// ErrNotAVault indicates the vault path exists but is not a directory.
	ErrNotAVault = newError(ErrConfig, "vault path exists but is not a directory")

	// ErrSourceInvalid indicates the file to vault is not a regular file.
	ErrSourceInvalid = newError(ErrValidation, "source is not a valid file to move")

	// ErrMoveFailed indicates the rename into the vault failed.
	ErrMoveFailed = newError(ErrIO, "failed to move file into the vault")

	// ErrVaultEntryNotFound indicates no vault entry has the requested name.
	ErrVaultEntryNotFound = newError(ErrValidation, "file not found in the vault")

	// ErrDestinationInvalid indicates the retrieval destination failed validation.
	ErrDestinationInvalid = newError(ErrValidation, "invalid retrieval destination")

	// ErrCopyFailed indicates the copy out of the vault failed.
	ErrCopyFailed = newError(ErrIO, "failed to copy file out of the vault")
)

// Integrity errors.
var (
	// ErrDigest indicates a file could not be hashed.
	ErrDigest = newError(ErrHash, "failed to calculate digest")
)

// categorized is a sentinel that also matches its category.
type categorized struct {
	msg      string
	category error
}

func newError(category error, msg string) error {
	return &categorized{msg: msg, category: category}
}

func (e *categorized) Error() string { return e.msg }

// Is reports whether target is the error's category.
func (e *categorized) Is(target error) bool {
	return target == e.category
}

// Category returns the upper-case category name of err,
// or "UNKNOWN" if err belongs to none.
func Category(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "VALIDATION"
	case errors.Is(err, ErrCollision):
		return "COLLISION"
	case errors.Is(err, ErrHash):
		return "HASH"
	case errors.Is(err, ErrConfig):
		return "CONFIG"
	case errors.Is(err, ErrIO):
		return "IO"
	default:
		return "UNKNOWN"
	}
}
