package mdp

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// Read parses the parameter file at path.
//
// A file that cannot be opened or read is a fatal error. Everything else,
// including duplicate names, is reported to sink and parsing continues.
func Read(path string, sink Sink, opts ...Option) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}
	defer f.Close()

	return Parse(f, path, sink, opts...)
}

// Parse reads parameter lines from r. filename is used for diagnostics only.
func Parse(r io.Reader, filename string, sink Sink, opts ...Option) (*Store, error) {
	s := New(opts...)
	s.logger.Debug("reading mdp file", "file", filename)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if sink != nil {
			sink.SetLine(filename, lineNo)
		}

		name, value, kind := SplitLine(scanner.Text())
		switch kind {
		case LineEmpty:
			continue
		case LineAssignment:
		default:
			s.logger.Debug("line ignored", "file", filename, "line", lineNo, "reason", kind.String())
			continue
		}

		if s.Find(name) >= 0 {
			s.report(sink, true, fmt.Sprintf("Parameter \"%s\" doubly defined", name))
			continue
		}
		e := s.appendEntry(name)
		e.Value = value
		e.HasValue = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w %s: line %d: %w", ErrRead, filename, lineNo+1, err)
	}

	s.logger.Debug("done reading mdp file", "file", filename, "entries", len(s.entries))
	return s, nil
}

// report sends msg to sink, or to the store logger when sink is nil.
func (s *Store) report(sink Sink, isError bool, msg string) {
	switch {
	case sink == nil:
		s.logger.Warn(msg)
	case isError:
		sink.Error(msg)
	default:
		sink.Warning(msg)
	}
}
