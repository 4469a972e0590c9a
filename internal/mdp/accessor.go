package mdp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Accessors read a parameter and insert it with its default when it is
// missing. Every call stamps the entry's access order, so the order of
// accessor calls is the order of the written file.

// Int returns name as an int.
//
// A missing entry is inserted with def. A value with trailing non-numeric
// text reports an error to sink and returns the parsed leading digits.
func (s *Store) Int(name string, def int, sink Sink) int {
	e, created := s.touch(name)
	if created {
		e.Value = strconv.Itoa(def)
		e.HasValue = true
		return def
	}
	v, ok := parseIntPrefix(e.Value, strconv.IntSize)
	if !ok {
		s.report(sink, true, notIntegerMessage(e))
	}
	return int(v)
}

// Int64 is Int for 64-bit values.
func (s *Store) Int64(name string, def int64, sink Sink) int64 {
	e, created := s.touch(name)
	if created {
		e.Value = strconv.FormatInt(def, 10)
		e.HasValue = true
		return def
	}
	v, ok := parseIntPrefix(e.Value, 64)
	if !ok {
		s.report(sink, true, notIntegerMessage(e))
	}
	return v
}

// Real returns name as a float64.
//
// Defaults are stored in C %g form (six significant digits). Trailing
// garbage is reported to sink and the parsed prefix is returned.
func (s *Store) Real(name string, def float64, sink Sink) float64 {
	e, created := s.touch(name)
	if created {
		e.Value = FormatReal(def)
		e.HasValue = true
		return def
	}
	v, ok := parseFloatPrefix(e.Value)
	if !ok {
		s.report(sink, true, fmt.Sprintf(
			"Right hand side '%s' for parameter '%s' in parameter file is not a real value",
			e.Value, e.Name))
	}
	return v
}

// String returns the value of name verbatim, inserting def when missing.
func (s *Store) String(name, def string) string {
	e, created := s.touch(name)
	if created {
		e.Value = def
		e.HasValue = true
		return def
	}
	return e.Value
}

// OptionalString is String with an absent default: a missing entry is
// inserted without a value and ("", false) is returned.
func (s *Store) OptionalString(name string) (string, bool) {
	e, created := s.touch(name)
	if created {
		return "", false
	}
	return e.Value, e.HasValue
}

// FormatReal formats v the way C's "%g" does.
func FormatReal(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func notIntegerMessage(e *Entry) string {
	return fmt.Sprintf(
		"Right hand side '%s' for parameter '%s' in parameter file is not an integer value",
		e.Value, e.Name)
}

// parseIntPrefix parses the longest leading decimal integer of s, like
// strtol in base 10. ok is false when anything follows the digits.
// Out of range values clamp to the bitSize limits.
func parseIntPrefix(s string, bitSize int) (int64, bool) {
	t := strings.TrimLeft(s, " \t\n\v\f\r")
	n := 0
	if n < len(t) && (t[n] == '+' || t[n] == '-') {
		n++
	}
	start := n
	for n < len(t) && isDigit(t[n]) {
		n++
	}
	if n == start {
		return 0, s == ""
	}
	v, _ := strconv.ParseInt(t[:n], 10, bitSize)
	return v, n == len(t)
}

// parseFloatPrefix parses the longest leading floating point number of s,
// like strtod, including hexadecimal forms such as 0x1A or 0x1.8p3.
// ok is false when anything follows the number.
func parseFloatPrefix(s string) (float64, bool) {
	t := strings.TrimLeft(s, " \t\n\v\f\r")
	n := floatPrefixLen(t)
	if n == 0 {
		return 0, s == ""
	}
	num := t[:n]
	if isHexPrefix(strings.TrimLeft(num, "+-")) && !strings.ContainsAny(num, "pP") {
		num += "p0"
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, n == len(t)
}

func floatPrefixLen(t string) int {
	n := 0
	if n < len(t) && (t[n] == '+' || t[n] == '-') {
		n++
	}

	rest := strings.ToLower(t[n:])
	switch {
	case strings.HasPrefix(rest, "infinity"):
		return n + len("infinity")
	case strings.HasPrefix(rest, "inf"), strings.HasPrefix(rest, "nan"):
		return n + 3
	}

	if isHexPrefix(t[n:]) {
		if end := hexFloatLen(t, n+2); end > 0 {
			return end
		}
	}

	digits := 0
	for n < len(t) && isDigit(t[n]) {
		n++
		digits++
	}
	if n < len(t) && t[n] == '.' {
		n++
		for n < len(t) && isDigit(t[n]) {
			n++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}

	if n < len(t) && (t[n] == 'e' || t[n] == 'E') {
		m := n + 1
		if m < len(t) && (t[m] == '+' || t[m] == '-') {
			m++
		}
		expStart := m
		for m < len(t) && isDigit(t[m]) {
			m++
		}
		if m > expStart {
			n = m
		}
	}
	return n
}

// hexFloatLen returns the end of the hexadecimal mantissa and optional
// binary exponent starting at i, or 0 when no hex digit follows "0x".
func hexFloatLen(t string, i int) int {
	n := i
	digits := 0
	for n < len(t) && isHexDigit(t[n]) {
		n++
		digits++
	}
	if n < len(t) && t[n] == '.' {
		n++
		for n < len(t) && isHexDigit(t[n]) {
			n++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}

	if n < len(t) && (t[n] == 'p' || t[n] == 'P') {
		m := n + 1
		if m < len(t) && (t[m] == '+' || t[m] == '-') {
			m++
		}
		expStart := m
		for m < len(t) && isDigit(t[m]) {
			m++
		}
		if m > expStart {
			n = m
		}
	}
	return n
}

func isHexPrefix(s string) bool {
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
