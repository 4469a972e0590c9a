// Package warn collects diagnostics produced while processing input files.
//
// A Collector tracks the current file and line, counts notes, warnings and
// errors, and optionally echoes each diagnostic as it arrives:
//
//	WARNING 1 [file grompp.mdp, line 12]:
//	  Unknown left-hand 'nstlog' in parameter file
//
// Processing never stops on a diagnostic. Callers inspect the totals once a
// pass is complete: Check fails when any error was recorded and
// CheckWarnings fails when warnings exceed the configured maximum.
package warn
