package pipeline

import (
	"time"

	"github.com/ccollicutt/productetl/pkg/record"
)

// Summary counts rows over a whole run.
// RowsRead always equals RowsTransformed + RowsSkipped.
type Summary struct {
	// RowsRead is the number of data lines read, excluding the header.
	RowsRead int

	// RowsTransformed is the number of lines written to the output.
	RowsTransformed int

	// RowsSkipped is the number of lines rejected by the parser.
	RowsSkipped int
}

// Balanced reports whether every read row was either transformed or skipped.
func (s Summary) Balanced() bool {
	return s.RowsRead == s.RowsTransformed+s.RowsSkipped
}

// Result is the outcome of one run.
type Result struct {
	Summary Summary

	// Skips breaks RowsSkipped down by rejection reason.
	Skips map[record.Reason]int

	// Lines holds the output lines, header first, as handed to the sink.
	Lines []string

	Metadata Metadata
}

// Metadata provides context about a run.
type Metadata struct {
	// Input is the name of the line source.
	Input string

	// Output is the name of the line sink.
	Output string

	// InputMissing is set when the run stopped because the input did not exist.
	InputMissing bool

	// Written is set when the sink accepted the output lines.
	Written bool

	// StartTime is when the run began.
	StartTime time.Time

	// EndTime is when the run completed.
	EndTime time.Time
}

// Duration returns how long the run took.
func (m Metadata) Duration() time.Duration {
	return m.EndTime.Sub(m.StartTime)
}
