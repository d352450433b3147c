package lineio

import "context"

// Source provides sequential access to the lines of one input.
// Implementations must be safe for sequential access (not concurrent).
type Source interface {
	// Name identifies the input, typically its path.
	Name() string

	// Exists reports whether the input can be resolved at all.
	// Callers check it before the first Next.
	Exists() bool

	// Next returns the next line.
	// Returns io.EOF when no more lines are available.
	Next(ctx context.Context) (*Line, error)

	// Close releases any resources held by the source.
	Close() error
}

// Sink persists a complete set of output lines.
type Sink interface {
	// Name identifies the destination, typically its path.
	Name() string

	// WriteLines writes all lines in order, replacing previous content.
	WriteLines(ctx context.Context, lines []string) error
}
