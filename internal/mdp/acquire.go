package mdp

import "fmt"

// Kind is the type a parameter is read as.
type Kind int

const (
	KindInt Kind = iota
	KindInt64
	KindReal
	KindString
	KindEnum
	// KindComment is a comment-as-key entry with no value. The writer
	// emits its name as a bare comment line.
	KindComment
)

var kindNames = [...]string{"int", "int64", "real", "string", "enum", "comment"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, bool) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// Param describes one parameter request: its name, type and default.
// Only the default field matching Kind is used. For KindEnum, Values lists
// the variants and the first one is the default.
type Param struct {
	Name   string
	Kind   Kind
	Int    int64
	Real   float64
	String string
	Values []string
}

// Value is the result of Acquire. Only the fields matching Kind are set;
// for enums both Index and String are filled.
type Value struct {
	Name   string
	Kind   Kind
	Int    int64
	Real   float64
	String string
	Index  int
}

// Acquire reads p from the store, inserting its default when missing.
//
// Acquire mutates the store exactly like the typed accessors: it marks the
// entry set, stamps its access order and may rewrite an invalid enum value.
// Diagnostics go to sink.
func (s *Store) Acquire(p Param, sink Sink) Value {
	v := Value{Name: p.Name, Kind: p.Kind}
	switch p.Kind {
	case KindInt:
		v.Int = int64(s.Int(p.Name, int(p.Int), sink))
	case KindInt64:
		v.Int = s.Int64(p.Name, p.Int, sink)
	case KindReal:
		v.Real = s.Real(p.Name, p.Real, sink)
	case KindString:
		v.String = s.String(p.Name, p.String)
	case KindEnum:
		set := NewEnumSet[int](p.Values...)
		v.Index = Enum(s, p.Name, set, sink)
		v.String = set.Name(v.Index)
	case KindComment:
		v.String, _ = s.OptionalString(p.Name)
	default:
		panic(fmt.Sprintf("mdp: unknown parameter kind %d", int(p.Kind)))
	}
	return v
}
