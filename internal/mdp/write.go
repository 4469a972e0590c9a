package mdp

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/natefinch/atomic"

	"github.com/roach88/mdp/internal/banner"
	"github.com/roach88/mdp/internal/warn"
)

// nameWidth is the fixed width of the name column in written files.
const nameWidth = 24

// headerSettings configure the commented preamble of written files.
var headerSettings = banner.Settings{
	LinePrefix:        ";\t",
	GeneratedByHeader: true,
}

type writeConfig struct {
	banner banner.Printer
}

// WriteOption configures Write and WriteTo.
type WriteOption func(*writeConfig)

// WithBanner sets the header printer. Default: banner.Default().
func WithBanner(p banner.Printer) WriteOption {
	return func(c *writeConfig) {
		c.banner = p
	}
}

// Write writes the store to path, replacing the file atomically.
//
// The file is always written first. Afterwards, if sink holds any hard
// error (from reading, accessors, or unknown keys with haltOnUnknown set),
// Write returns a *warn.FatalError.
func Write(path string, s *Store, haltOnUnknown bool, sink Sink, opts ...WriteOption) error {
	var buf bytes.Buffer
	if err := s.render(&buf, path, haltOnUnknown, sink, opts); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}
	return checkSink(sink)
}

// WriteTo is Write for an arbitrary writer. name is passed to the banner.
func WriteTo(w io.Writer, name string, s *Store, haltOnUnknown bool, sink Sink, opts ...WriteOption) error {
	if err := s.render(w, name, haltOnUnknown, sink, opts); err != nil {
		return err
	}
	return checkSink(sink)
}

func (s *Store) render(w io.Writer, name string, haltOnUnknown bool, sink Sink, opts []WriteOption) error {
	cfg := writeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.banner == nil {
		cfg.banner = banner.Default()
	}

	s.sortByAccess()

	if err := cfg.banner.Print(w, name, headerSettings); err != nil {
		return fmt.Errorf("%w %s: header: %w", ErrWrite, name, err)
	}

	for _, e := range s.entries {
		var err error
		switch {
		case e.Set && isCommentName(e.Name):
			_, err = fmt.Fprintf(w, "%-*s\n", nameWidth, e.Name)
		case e.Set:
			_, err = fmt.Fprintf(w, "%-*s = %s\n", nameWidth, e.Name, e.Value)
		case !e.Obsolete:
			s.report(sink, haltOnUnknown, fmt.Sprintf("Unknown left-hand '%s' in parameter file", e.Name))
		}
		if err != nil {
			return fmt.Errorf("%w %s: %w", ErrWrite, name, err)
		}
	}
	return nil
}

// sortByAccess orders entries by access order. Untouched entries are
// numbered after the highest access order, keeping their relative order.
func (s *Store) sortByAccess() {
	highest := 0
	for _, e := range s.entries {
		highest = max(highest, e.AccessOrder)
	}
	next := highest + 1
	for _, e := range s.entries {
		if e.AccessOrder == 0 {
			e.AccessOrder = next
			next++
		}
	}
	s.counter = max(s.counter, next)

	slices.SortStableFunc(s.entries, func(a, b *Entry) int {
		return cmp.Compare(a.AccessOrder, b.AccessOrder)
	})
}

// isCommentName reports whether name is a comment-as-key entry: it starts
// with the comment sign, or has it in second place after a leading
// character such as a newline.
func isCommentName(name string) bool {
	if name == "" {
		return false
	}
	return name[0] == CommentSign || (len(name) > 2 && name[1] == CommentSign)
}

func checkSink(sink Sink) error {
	if sink == nil || sink.Errors() == 0 {
		return nil
	}
	fatal := &warn.FatalError{Errors: sink.Errors()}
	if c, ok := sink.(interface{ Warnings() int }); ok {
		fatal.Warnings = c.Warnings()
	}
	return fatal
}
