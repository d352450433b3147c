package lineio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
)

// FileSource implements Source for a file on disk.
// The file is opened on the first call to Next and closed at EOF, on a
// read error, or by Close, whichever comes first.
type FileSource struct {
	path string

	file    *os.File
	scanner *bufio.Scanner
	lineNum int
	done    bool
}

// NewFileSource creates a Source that reads lines from path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the file path.
func (s *FileSource) Name() string {
	return s.path
}

// Exists reports whether path resolves to anything on disk.
func (s *FileSource) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Next returns the next line of the file.
// Returns io.EOF once the file is exhausted.
func (s *FileSource) Next(_ context.Context) (*Line, error) {
	if s.done {
		return nil, io.EOF
	}

	if s.scanner == nil {
		if err := s.open(); err != nil {
			s.done = true
			return nil, err
		}
	}

	if s.scanner.Scan() {
		s.lineNum++
		return &Line{
			Content: s.scanner.Text(),
			Source:  s.path,
			LineNum: s.lineNum,
		}, nil
	}

	s.done = true
	scanErr := s.scanner.Err()
	closeErr := s.closeFile()
	if scanErr != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, scanErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("closing %s: %w", s.path, closeErr)
	}
	return nil, io.EOF
}

// Close releases the file handle if it is still open.
func (s *FileSource) Close() error {
	s.done = true
	return s.closeFile()
}

func (s *FileSource) open() error {
	f, err := os.Open(s.path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening input file %s: %w", s.path, err)
	}

	s.file = f
	s.scanner = bufio.NewScanner(f)
	s.scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	s.lineNum = 0

	return nil
}

func (s *FileSource) closeFile() error {
	if s.file != nil {
		err := s.file.Close()
		s.file = nil
		return err
	}
	return nil
}

// FileSink implements Sink by writing a file on disk.
type FileSink struct {
	path string
	perm os.FileMode
}

// NewFileSink creates a Sink that writes to path, truncating existing content.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path, perm: 0o644}
}

// Name returns the file path.
func (s *FileSink) Name() string {
	return s.path
}

// WriteLines writes each line followed by a newline. The file handle is
// released before returning, including on failure.
func (s *FileSink) WriteLines(_ context.Context, lines []string) (err error) {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, s.perm) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", s.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file %s: %w", s.path, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			return fmt.Errorf("writing %s: %w", s.path, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing %s: %w", s.path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}

	return nil
}
