package encryption

// Mode selects the direction of the shift.
type Mode byte

const (
	// Encrypt adds the peg to every byte.
	Encrypt Mode = iota
	// Decrypt subtracts the peg from every byte.
	Decrypt
)

// String returns the history kind for the mode.
func (m Mode) String() string {
	if m == Decrypt {
		return "DECRYPT"
	}

	return "ENCRYPT"
}
