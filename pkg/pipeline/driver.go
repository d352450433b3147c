// Package pipeline runs the extract-transform-load pass over a product catalog.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ccollicutt/productetl/internal/ctxlog"
	"github.com/ccollicutt/productetl/pkg/lineio"
	"github.com/ccollicutt/productetl/pkg/record"
	"github.com/ccollicutt/productetl/pkg/rules"
)

var (
	// ErrInputMissing means the input did not exist and nothing was read or written.
	ErrInputMissing = errors.New("input does not exist")

	// ErrRead means reading stopped early; rows read before the failure were still written.
	ErrRead = errors.New("reading input failed")

	// ErrWrite means the sink rejected the output; the summary is still valid.
	ErrWrite = errors.New("writing output failed")
)

// Driver reads catalog lines, applies the business rules and writes the result.
type Driver struct {
	logger *slog.Logger
}

// Option configures driver behavior.
type Option func(*Driver)

// WithLogger sets the logger used for per-row and per-run messages.
// Without it the logger is taken from the Run context.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// NewDriver creates a driver.
func NewDriver(opts ...Option) *Driver {
	d := &Driver{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run performs one pass: skip the header, parse and transform each
// remaining line, then hand the header plus every transformed line to sink.
//
// The returned Result is never nil. The error, if any, wraps ErrInputMissing,
// ErrRead or ErrWrite. A missing input short-circuits the run before the sink
// is touched; in every other case the sink is written, even with zero rows.
func (d *Driver) Run(ctx context.Context, source lineio.Source, sink lineio.Sink) (*Result, error) {
	logger := d.logger
	if logger == nil {
		logger = ctxlog.FromContext(ctx)
	}

	result := &Result{
		Skips: make(map[record.Reason]int),
		Lines: []string{Header},
		Metadata: Metadata{
			Input:     source.Name(),
			Output:    sink.Name(),
			StartTime: time.Now(),
		},
	}
	defer func() {
		result.Metadata.EndTime = time.Now()
	}()

	if !source.Exists() {
		result.Metadata.InputMissing = true
		return result, fmt.Errorf("%w: %s", ErrInputMissing, source.Name())
	}
	defer source.Close()

	readErr := d.consume(ctx, logger, source, result)

	var writeErr error
	if err := sink.WriteLines(ctx, result.Lines); err != nil {
		writeErr = fmt.Errorf("%w: %w", ErrWrite, err)
	} else {
		result.Metadata.Written = true
	}

	logger.Debug("run finished",
		"input", result.Metadata.Input,
		"output", result.Metadata.Output,
		"rows_read", result.Summary.RowsRead,
		"rows_transformed", result.Summary.RowsTransformed,
		"rows_skipped", result.Summary.RowsSkipped)

	return result, errors.Join(readErr, writeErr)
}

// consume reads every line from source into result. A read failure ends the
// loop and is returned wrapped in ErrRead; rows already processed are kept.
func (d *Driver) consume(ctx context.Context, logger *slog.Logger, source lineio.Source, result *Result) error {
	// The first line is a header and is discarded without inspection.
	if _, err := source.Next(ctx); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrRead, err)
	}

	for {
		line, err := source.Next(ctx)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrRead, err)
		}

		result.Summary.RowsRead++

		parsed := record.Parse(line.Content)
		if !parsed.OK() {
			result.Summary.RowsSkipped++
			result.Skips[parsed.Rejection.Reason]++
			logger.Debug("row skipped",
				"source", line.Source,
				"line", line.LineNum,
				"reason", string(parsed.Rejection.Reason),
				"detail", parsed.Rejection.Detail)
			continue
		}

		result.Lines = append(result.Lines, FormatLine(rules.Transform(parsed.Record)))
		result.Summary.RowsTransformed++
	}
}
