package output

import (
	"context"
	"fmt"
	"io"
)

// TextFormatter formats reports as the plain line-per-counter summary.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Rows read: %d\nRows transformed: %d\nRows skipped: %d\n",
		report.Summary.RowsRead,
		report.Summary.RowsTransformed,
		report.Summary.RowsSkipped); err != nil {
		return err
	}

	if f.opts.Quiet {
		return nil
	}

	if _, err := fmt.Fprintf(w, "Output file: %s\n", report.Metadata.Output); err != nil {
		return err
	}

	if f.opts.Verbose {
		for _, skip := range report.Skips {
			fmt.Fprintf(w, "  skipped (%s): %d\n", skip.Reason, skip.Count)
		}
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}
