package warn

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sentinel errors returned by Check and CheckWarnings.
var (
	ErrInputErrors     = errors.New("errors in input file(s)")
	ErrTooManyWarnings = errors.New("too many warnings")
)

// Severity classifies a diagnostic.
type Severity int

const (
	SevNote    Severity = iota // Informational, never fatal
	SevWarning                 // Counted against the warning limit
	SevError                   // Makes Check fail
)

func (s Severity) String() string {
	switch s {
	case SevNote:
		return "NOTE"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// MarshalJSON renders the severity as its lower-case name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(s.String()))
}

// UnmarshalJSON accepts the names written by MarshalJSON.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, sev := range []Severity{SevNote, SevWarning, SevError} {
		if strings.EqualFold(name, sev.String()) {
			*s = sev
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", name)
}

// Diagnostic is one recorded message.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Seq      int      `json:"seq"` // 1-based count within its severity
	File     string   `json:"file,omitempty"`
	Line     int      `json:"line,omitempty"`
	Message  string   `json:"message"`
}

// Location formats the file/line context, e.g. "file a.mdp, line 3".
func (d Diagnostic) Location() string {
	switch {
	case d.File == "":
		return ""
	case d.Line > 0:
		return fmt.Sprintf("file %s, line %d", d.File, d.Line)
	default:
		return "file " + d.File
	}
}

func (d Diagnostic) String() string {
	if loc := d.Location(); loc != "" {
		return fmt.Sprintf("%s %d [%s]:\n%s", d.Severity, d.Seq, loc, indent(d.Message))
	}
	return fmt.Sprintf("%s %d:\n%s", d.Severity, d.Seq, indent(d.Message))
}

func indent(msg string) string {
	lines := strings.Split(strings.TrimRight(msg, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}

// Summary holds per-severity totals.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Notes    int `json:"notes"`
}

// Collector records diagnostics with file and line context.
// Not safe for concurrent use.
type Collector struct {
	file        string
	line        int
	out         io.Writer
	maxWarnings int
	diags       []Diagnostic
	summary     Summary
}

// Option configures a Collector.
type Option func(*Collector)

// WithOutput echoes every diagnostic to w as it is recorded.
func WithOutput(w io.Writer) Option {
	return func(c *Collector) {
		c.out = w
	}
}

// WithMaxWarnings sets the warning limit used by CheckWarnings.
// A negative limit disables the check. Default: -1.
func WithMaxWarnings(n int) Option {
	return func(c *Collector) {
		c.maxWarnings = n
	}
}

// New creates a Collector.
func New(opts ...Option) *Collector {
	c := &Collector{maxWarnings: -1}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetLine sets the context attached to subsequent diagnostics.
// A line <= 0 means the whole file.
func (c *Collector) SetLine(file string, line int) {
	c.file = file
	c.line = line
}

// Note records an informational message.
func (c *Collector) Note(msg string) {
	c.summary.Notes++
	c.add(SevNote, c.summary.Notes, msg)
}

// Warning records a warning.
func (c *Collector) Warning(msg string) {
	c.summary.Warnings++
	c.add(SevWarning, c.summary.Warnings, msg)
}

// Error records an error. Processing continues; Check reports it later.
func (c *Collector) Error(msg string) {
	c.summary.Errors++
	c.add(SevError, c.summary.Errors, msg)
}

func (c *Collector) add(sev Severity, seq int, msg string) {
	d := Diagnostic{
		Severity: sev,
		Seq:      seq,
		File:     c.file,
		Line:     c.line,
		Message:  strings.TrimRight(msg, "\n"),
	}
	c.diags = append(c.diags, d)
	if c.out != nil {
		fmt.Fprintf(c.out, "\n%s\n\n", d)
	}
}

// Errors returns the number of errors recorded.
func (c *Collector) Errors() int { return c.summary.Errors }

// Warnings returns the number of warnings recorded.
func (c *Collector) Warnings() int { return c.summary.Warnings }

// Summary returns the per-severity totals.
func (c *Collector) Summary() Summary { return c.summary }

// Diagnostics returns all diagnostics in the order they were recorded.
func (c *Collector) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), c.diags...)
}

// BySeverity returns the diagnostics of one severity in record order.
func (c *Collector) BySeverity(sev Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range c.diags {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// Check returns a *FatalError when any error has been recorded.
func (c *Collector) Check() error {
	if c.summary.Errors == 0 {
		return nil
	}
	return &FatalError{Errors: c.summary.Errors, Warnings: c.summary.Warnings}
}

// CheckWarnings fails when the warning count exceeds the limit.
func (c *Collector) CheckWarnings() error {
	if c.maxWarnings < 0 || c.summary.Warnings <= c.maxWarnings {
		return nil
	}
	return fmt.Errorf("%w: %d warning(s), maximum is %d",
		ErrTooManyWarnings, c.summary.Warnings, c.maxWarnings)
}

// FormatText renders all diagnostics followed by a one-line summary.
func (c *Collector) FormatText() string {
	var b strings.Builder
	for _, d := range c.diags {
		b.WriteString(d.String())
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "%d error(s), %d warning(s), %d note(s)\n",
		c.summary.Errors, c.summary.Warnings, c.summary.Notes)
	return b.String()
}

// FatalError reports that a pass finished with errors recorded.
type FatalError struct {
	Errors   int
	Warnings int
}

func (e *FatalError) Error() string {
	msg := fmt.Sprintf("There were %d error(s) in input file(s)", e.Errors)
	if e.Warnings > 0 {
		msg += fmt.Sprintf(" and %d warning(s)", e.Warnings)
	}
	return msg
}

// Unwrap lets errors.Is match ErrInputErrors.
func (e *FatalError) Unwrap() error {
	return ErrInputErrors
}
