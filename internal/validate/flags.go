package validate

// Flags selects which checks Operation applies.
type Flags struct {
	CheckInput             bool
	CheckOutput            bool
	CheckPeg               bool
	OutputDiffersFromInput bool
	CheckExtension         bool
}

// DefaultFlags enables every check.
func DefaultFlags() Flags {
	return Flags{
		CheckInput:             true,
		CheckOutput:            true,
		CheckPeg:               true,
		OutputDiffersFromInput: true,
		CheckExtension:         true,
	}
}

// DecryptFlags skips the input file checks, for inputs the caller has
// already validated or produced itself.
func DecryptFlags() Flags {
	flags := DefaultFlags()
	flags.CheckInput = false
	flags.CheckExtension = false

	return flags
}
