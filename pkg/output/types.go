// Package output provides formatting for run reports.
package output

import (
	"time"

	"github.com/ccollicutt/productetl/pkg/pipeline"
	"github.com/ccollicutt/productetl/pkg/record"
)

// Report is the complete run output.
type Report struct {
	// Summary holds the row counters.
	Summary Summary

	// Skips lists skipped rows per rejection reason, omitting zero counts.
	Skips []SkipCount

	// Metadata provides context about the run.
	Metadata Metadata
}

// Summary holds the row counters of a run.
type Summary struct {
	RowsRead        int
	RowsTransformed int
	RowsSkipped     int
}

// SkipCount is the number of rows skipped for one reason.
type SkipCount struct {
	Reason string
	Count  int
}

// Metadata provides context about the run.
type Metadata struct {
	// Input is the input file path.
	Input string

	// Output is the output file path.
	Output string

	// Written is set when the output file was written.
	Written bool

	// Errors holds file-level error messages reported during the run.
	Errors []string

	// StartedAt is when the run began.
	StartedAt time.Time

	// Duration is how long the run took.
	Duration time.Duration
}

// NewReport creates a Report from a pipeline result and the run error, if any.
func NewReport(result *pipeline.Result, runErr error) *Report {
	report := &Report{
		Summary: Summary{
			RowsRead:        result.Summary.RowsRead,
			RowsTransformed: result.Summary.RowsTransformed,
			RowsSkipped:     result.Summary.RowsSkipped,
		},
		Metadata: Metadata{
			Input:     result.Metadata.Input,
			Output:    result.Metadata.Output,
			Written:   result.Metadata.Written,
			StartedAt: result.Metadata.StartTime,
			Duration:  result.Metadata.Duration(),
		},
	}

	for _, reason := range record.Reasons {
		if n := result.Skips[reason]; n > 0 {
			report.Skips = append(report.Skips, SkipCount{Reason: string(reason), Count: n})
		}
	}

	if runErr != nil {
		report.Metadata.Errors = []string{runErr.Error()}
	}

	return report
}

// HasIssues returns true if rows were skipped or the run reported an error.
func (r *Report) HasIssues() bool {
	return r.Summary.RowsSkipped > 0 || len(r.Metadata.Errors) > 0
}
