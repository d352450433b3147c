package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter formats reports as indented JSON.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format renders the report as JSON. Quiet emits only the counters;
// the skip breakdown is included in verbose mode only.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	switch {
	case f.opts.Quiet:
		return enc.Encode(report.Summary)
	case f.opts.Verbose:
		return enc.Encode(report)
	default:
		trimmed := *report
		trimmed.Skips = nil
		return enc.Encode(&trimmed)
	}
}
