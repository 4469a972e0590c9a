package mdp

import (
	"fmt"
	"strings"
)

// EnumSet is the ordered vocabulary of an enumerated parameter.
// The first name is the default and the fallback for invalid values.
//
// T is usually a caller-defined int type whose constants follow the same
// order as the names:
//
//	type Integrator int
//	const (IntegratorMD Integrator = iota; IntegratorSD)
//	var integrators = mdp.NewEnumSet[Integrator]("md", "sd")
type EnumSet[T ~int] struct {
	names []string
}

// NewEnumSet creates a set from names in index order.
// Panics if names is empty.
func NewEnumSet[T ~int](names ...string) EnumSet[T] {
	if len(names) == 0 {
		panic("mdp: enum set needs at least one name")
	}
	return EnumSet[T]{names: append([]string(nil), names...)}
}

// Len returns the number of variants.
func (es EnumSet[T]) Len() int {
	return len(es.names)
}

// Name returns the canonical spelling of v, or "" when v is out of range.
func (es EnumSet[T]) Name(v T) string {
	if int(v) < 0 || int(v) >= len(es.names) {
		return ""
	}
	return es.names[v]
}

// Names returns the variants in order.
func (es EnumSet[T]) Names() []string {
	return append([]string(nil), es.names...)
}

// Index returns the variant matching value under the name-equality rule.
func (es EnumSet[T]) Index(value string) (T, bool) {
	key := NameKey(value)
	for i, n := range es.names {
		if NameKey(n) == key {
			return T(i), true
		}
	}
	return 0, false
}

// Enum returns the variant of set selected by parameter name.
//
// A missing entry is inserted with the first variant. An invalid value is
// reported (to sink as an error, or to the store logger when sink is nil),
// replaced by the first variant in the store, and the first variant is
// returned.
func Enum[T ~int](s *Store, name string, set EnumSet[T], sink Sink) T {
	e, created := s.touch(name)
	if created {
		e.Value = set.names[0]
		e.HasValue = true
		return 0
	}

	if v, ok := set.Index(e.Value); ok {
		return v
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Invalid enum '%s' for variable %s, using '%s'\n", e.Value, name, set.names[0])
	b.WriteString("Next time use one of:")
	for _, n := range set.names {
		fmt.Fprintf(&b, " '%s'", n)
	}
	s.report(sink, true, b.String())

	e.Value = set.names[0]
	e.HasValue = true
	return 0
}
