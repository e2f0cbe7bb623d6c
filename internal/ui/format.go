package ui

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatBytes renders a byte count as a binary-scaled human value (MiB, GiB).
func FormatBytes(n uint64) string {
	return humanize.IBytes(n)
}

// FormatRate renders a per-interval byte delta as a throughput readout.
func FormatRate(bytesPerInterval float64, interval float64) string {
	if interval <= 0 {
		interval = 1
	}
	perSecond := bytesPerInterval / interval
	if perSecond < 0 {
		perSecond = 0
	}
	return humanize.IBytes(uint64(perSecond)) + "/s"
}

// FormatPercent renders a percentage with one decimal place.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatMemory renders usage against a limit, or bare usage when the limit
// is zero (unlimited allocation).
func FormatMemory(used, limit uint64) string {
	if limit == 0 {
		return humanize.IBytes(used)
	}
	return humanize.IBytes(used) + " / " + humanize.IBytes(limit)
}
