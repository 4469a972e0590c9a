package defs

import "github.com/roach88/mdp/internal/mdp"

// Apply migrates s and then reads every parameter in declaration order,
// inserting defaults for the missing ones. Diagnostics go to sink.
//
// After Apply, writing s emits the parameters in declaration order and
// reports everything else in the file as unknown.
func (set *Set) Apply(s *mdp.Store, sink mdp.Sink) []mdp.Value {
	s.Migrate(set.Migrations)

	values := make([]mdp.Value, 0, len(set.Params))
	for _, p := range set.Params {
		values = append(values, s.Acquire(p, sink))
	}
	return values
}

// Names returns the parameter names in declaration order.
func (set *Set) Names() []string {
	out := make([]string, len(set.Params))
	for i, p := range set.Params {
		out[i] = p.Name
	}
	return out
}
