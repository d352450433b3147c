// Package lineio provides line-oriented input sources and output sinks.
package lineio

// Line is a raw input line.
type Line struct {
	// Content is the line text without its terminator.
	Content string

	// Source is the name of the input this line came from.
	Source string

	// LineNum is the 1-based line number in the source.
	LineNum int
}

// maxLineSize bounds a single input line.
const maxLineSize = 1024 * 1024
