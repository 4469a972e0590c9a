package mdp

import (
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
)

// Sentinel errors for fatal I/O conditions.
var (
	ErrOpen  = errors.New("mdp: cannot open file")
	ErrRead  = errors.New("mdp: cannot read file")
	ErrWrite = errors.New("mdp: cannot write file")
)

// Sink receives diagnostics while a file is read, queried and written.
//
// SetLine is called before each input line is processed so later messages
// can cite file and line. Errors reports how many hard errors were recorded;
// the writer consults it after the output is on disk.
type Sink interface {
	SetLine(file string, line int)
	Warning(msg string)
	Error(msg string)
	Errors() int
}

// Entry is one parameter record.
type Entry struct {
	Name     string // Name as written, case preserved
	Value    string // Value, meaningful only when HasValue is true
	HasValue bool   // false means no value assigned yet
	Set      bool   // read by an accessor or inserted by one
	Obsolete bool   // migrated away without a replacement

	// AccessOrder is 0 until the first touch, then the store counter value
	// at that touch. It drives output ordering only.
	AccessOrder int

	key string
}

// Store is the ordered collection of entries for one parameter file.
//
// Not safe for concurrent use: one caller owns a store for its whole
// read, query, write lifecycle.
type Store struct {
	entries []*Entry
	counter int
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for trace and fallback diagnostics.
// Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		counter: 1,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Entries returns the entries in current store order.
// The slice is a copy; the entries are shared.
func (s *Store) Entries() []*Entry {
	out := make([]*Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Find returns the index of the first entry whose name matches, or -1.
func (s *Store) Find(name string) int {
	key := NameKey(name)
	for i, e := range s.entries {
		if e.key == key {
			return i
		}
	}
	return -1
}

// Lookup returns the first entry whose name matches.
// It does not touch the entry.
func (s *Store) Lookup(name string) (*Entry, bool) {
	i := s.Find(name)
	if i < 0 {
		return nil, false
	}
	return s.entries[i], true
}

// MarkSet touches an existing entry without reading its value.
// Returns false and changes nothing when name is absent.
func (s *Store) MarkSet(name string) bool {
	i := s.Find(name)
	if i < 0 {
		return false
	}
	s.mark(s.entries[i])
	return true
}

// touch finds or appends name, marks it set and stamps its access order.
// created reports whether the entry was appended by this call.
func (s *Store) touch(name string) (e *Entry, created bool) {
	i := s.Find(name)
	if i < 0 {
		e = s.appendEntry(name)
		created = true
	} else {
		e = s.entries[i]
	}
	s.mark(e)
	s.logger.Debug("parameter requested", "order", e.AccessOrder, "name", e.Name)
	return e, created
}

func (s *Store) mark(e *Entry) {
	e.AccessOrder = s.counter
	s.counter++
	e.Set = true
}

func (s *Store) appendEntry(name string) *Entry {
	e := &Entry{Name: name, key: NameKey(name)}
	s.entries = append(s.entries, e)
	return e
}

// NameKey returns the identity key of a parameter name: case folded, with
// '-' and '_' removed.
func NameKey(name string) string {
	stripped := strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return -1
		}
		return r
	}, name)
	return cases.Fold().String(stripped)
}

// SameName reports whether two names identify the same parameter.
func SameName(a, b string) bool {
	return NameKey(a) == NameKey(b)
}
