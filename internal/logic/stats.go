package logic

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

func (s *Services) printStats(scanned, excluded, processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(s.errOut, "\nStats\n")
	fmt.Fprintf(s.errOut, "  Scanned:   %d\n", scanned)
	fmt.Fprintf(s.errOut, "  Excluded:  %d\n", excluded)
	fmt.Fprintf(s.errOut, "  Processed: %d\n", processed)
	fmt.Fprintf(s.errOut, "  Errors:    %d\n", errored)
	fmt.Fprintf(s.errOut, "  Size:      %s\n", humanizeSize(totalSize))
	fmt.Fprintf(s.errOut, "  Duration:  %s\n", duration.Round(time.Millisecond))
}

func humanizeSize(size int64) string {
	return humanize.IBytes(uint64(max(0, size))) //nolint:gosec // clamped to non-negative
}
