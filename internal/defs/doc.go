// Package defs loads parameter definitions written in CUE and runs them
// against a parameter store.
//
// A definitions file lists, in order, the parameters a consumer reads,
// with their types and defaults, plus the renamed and obsolete keys of
// older file versions:
//
//	param: integrator: {type: "enum", values: ["md", "sd", "bd"]}
//	param: nsteps:     {type: "int", default: 0}
//	param: out:        {type: "comment", text: "OUTPUT CONTROL"}
//	renamed: nstxtcout: "nstxout-compressed"
//	obsolete: ["cpp"]
//
// Load compiles such a file into a Set. Set.Apply migrates a store and
// then reads every parameter in declaration order, which fixes the order
// of the rewritten file.
package defs
