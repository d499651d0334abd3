package integrity

// Similarity compares a and b position by position.
// Both empty is a full match with no difference; one empty is no match.
// When the overlap matches but the lengths differ, the first difference is
// the shorter length.
func Similarity(a, b []byte) (percentage float64, firstDiff int64) {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 100, NoDifference
	}

	overlap := min(len(a), len(b))
	firstDiff = NoDifference
	matches := 0

	for i := range overlap {
		if a[i] == b[i] {
			matches++

			continue
		}

		if firstDiff == NoDifference {
			firstDiff = int64(i)
		}
	}

	if firstDiff == NoDifference && len(a) != len(b) {
		firstDiff = int64(overlap)
	}

	return float64(matches) / float64(longest) * 100, firstDiff
}
