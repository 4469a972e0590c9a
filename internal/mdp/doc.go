// Package mdp reads, queries, migrates and rewrites MDP parameter files.
//
// An MDP file is plain text with one `name = value` directive per line.
// Everything after `;` is a comment. Names are matched case-insensitively
// and ignore `-` and `_`, so `nstxout`, `NSTXOUT` and `nst-xout` are the same
// parameter.
//
// # Lifecycle
//
// A Store is owned by a single caller for one read, query, write pass:
//
//	sink := warn.New()
//	st, err := mdp.Read("grompp.mdp", sink)
//	nsteps := st.Int("nsteps", 0, sink)
//	integrator := mdp.Enum(st, "integrator", integrators, sink)
//	err = mdp.Write("mdout.mdp", st, false, sink)
//
// Accessors are mutating: a parameter missing from the file is inserted with
// its default, and every accessor call records the access order used by the
// writer. The written file therefore lists parameters in the order the
// program asked for them, followed by nothing else: entries that were never
// asked for are reported as unknown instead of being written.
//
// # Diagnostics
//
// Malformed input never aborts a pass. Duplicates, unparsable numbers,
// invalid enum values and unknown keys are funneled to a Sink, and only the
// writer turns accumulated errors into a failure, after the output file has
// been written.
package mdp
