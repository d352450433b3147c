package lineio

import (
	"context"
	"io"
)

// MemorySource implements Source over a fixed slice of lines.
type MemorySource struct {
	name  string
	lines []string
	index int
}

// NewMemorySource creates a Source that yields lines in order.
func NewMemorySource(name string, lines ...string) *MemorySource {
	return &MemorySource{name: name, lines: lines}
}

// Name returns the name given at construction.
func (m *MemorySource) Name() string {
	return m.name
}

// Exists always returns true.
func (m *MemorySource) Exists() bool {
	return true
}

// Next returns the next line, or io.EOF once all lines are consumed.
func (m *MemorySource) Next(_ context.Context) (*Line, error) {
	if m.index >= len(m.lines) {
		return nil, io.EOF
	}
	m.index++
	return &Line{
		Content: m.lines[m.index-1],
		Source:  m.name,
		LineNum: m.index,
	}, nil
}

// Close is a no-op.
func (m *MemorySource) Close() error {
	return nil
}

// MemorySink implements Sink by keeping the written lines in memory.
type MemorySink struct {
	name   string
	lines  []string
	writes int
}

// NewMemorySink creates an empty in-memory Sink.
func NewMemorySink(name string) *MemorySink {
	return &MemorySink{name: name}
}

// Name returns the name given at construction.
func (m *MemorySink) Name() string {
	return m.name
}

// WriteLines replaces the stored lines with a copy of lines.
func (m *MemorySink) WriteLines(_ context.Context, lines []string) error {
	m.lines = append([]string(nil), lines...)
	m.writes++
	return nil
}

// Lines returns the lines from the most recent write.
func (m *MemorySink) Lines() []string {
	return m.lines
}

// Writes returns how many times WriteLines was called.
func (m *MemorySink) Writes() int {
	return m.writes
}

// WriteTo writes the stored lines to w, one per line.
func (m *MemorySink) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, line := range m.lines {
		n, err := io.WriteString(w, line+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
