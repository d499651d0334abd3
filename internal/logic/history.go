package logic

import (
	"fmt"
	"strings"
)

// History prints the recorded operations and events, optionally only those
// of one kind or category and only the last tail entries.
func (s *Services) History(category string, tail int) error {
	records, skipped, err := s.log.Records()
	if err != nil {
		return err
	}

	if category != "" {
		kept := records[:0]

		for _, r := range records {
			if strings.EqualFold(r.Kind, category) {
				kept = append(kept, r)
			}
		}

		records = kept
	}

	if tail > 0 && len(records) > tail {
		records = records[len(records)-tail:]
	}

	for _, r := range records {
		fmt.Fprintln(s.out, r.String())
	}

	if skipped > 0 {
		s.warn("%d malformed line(s) in %s were skipped", skipped, s.log.Path())
	}

	return nil
}
