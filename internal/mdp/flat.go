package mdp

// KeyValue is one name/value pair of the flat mapping.
type KeyValue struct {
	Name  string
	Value string
}

// Flat returns every entry as a name/value pair in store order. Absent
// values map to "". Before a write the store order is file order, followed
// by entries inserted by accessors.
func (s *Store) Flat() []KeyValue {
	out := make([]KeyValue, 0, len(s.entries))
	for _, e := range s.entries {
		v := ""
		if e.HasValue {
			v = e.Value
		}
		out = append(out, KeyValue{Name: e.Name, Value: v})
	}
	return out
}
