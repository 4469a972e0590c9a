package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/mdp/internal/config"
	"github.com/roach88/mdp/internal/defs"
	"github.com/roach88/mdp/internal/mdp"
	"github.com/roach88/mdp/internal/warn"
)

// inputFlags are the diagnostics flags shared by check and normalize.
// They override the config file only when given on the command line.
type inputFlags struct {
	Defs          string
	HaltOnUnknown bool
	MaxWarnings   int
}

func (in *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&in.Defs, "defs", "", "CUE parameter definitions file")
	cmd.Flags().BoolVar(&in.HaltOnUnknown, "halt-on-unknown", false, "treat unknown keys as errors")
	cmd.Flags().IntVar(&in.MaxWarnings, "max-warnings", -1, "fail when there are more warnings (-1: no limit)")
}

// resolve overlays the changed flags on cfg.
func (in *inputFlags) resolve(cmd *cobra.Command, cfg config.Config) inputFlags {
	out := inputFlags{
		Defs:          cfg.Defs,
		HaltOnUnknown: cfg.HaltOnUnknown,
		MaxWarnings:   cfg.MaxWarnings,
	}
	if flagChanged(cmd, "defs") {
		out.Defs = in.Defs
	}
	if flagChanged(cmd, "halt-on-unknown") {
		out.HaltOnUnknown = in.HaltOnUnknown
	}
	if flagChanged(cmd, "max-warnings") {
		out.MaxWarnings = in.MaxWarnings
	}
	return out
}

// begin loads the settings and builds the formatter for a command.
// On error the formatter is still usable for reporting it.
func begin(opts *RootOptions, cmd *cobra.Command) (*OutputFormatter, config.Config, error) {
	cfg, err := opts.settings(cmd)
	return newFormatter(opts, cmd), cfg, err
}

// loadDefs loads the definitions file, or returns nil when path is empty.
func loadDefs(f *OutputFormatter, path string) (*defs.Set, error) {
	if path == "" {
		return nil, nil
	}
	set, err := defs.Load(path)
	if err != nil {
		return nil, err
	}
	f.VerboseLog("Loaded %d parameter definition(s) from %s", len(set.Params), path)
	return set, nil
}

// Report is the diagnostics part of every command result.
type Report struct {
	Valid       bool              `json:"valid"`
	Summary     warn.Summary      `json:"summary"`
	Diagnostics []warn.Diagnostic `json:"diagnostics,omitempty"`
}

func newReport(sink *warn.Collector) Report {
	return Report{
		Valid:       sink.Errors() == 0,
		Summary:     sink.Summary(),
		Diagnostics: sink.Diagnostics(),
	}
}

// verdict returns the error that fails a command: recorded errors first,
// then the warning limit.
func verdict(sink *warn.Collector) error {
	if err := sink.Check(); err != nil {
		return err
	}
	return sink.CheckWarnings()
}

// finish writes the diagnostics and the result and turns a failing
// verdict into an ExitError. In text mode diagnostics go to the error
// writer and okLine, or the failure, to the output writer.
func finish(f *OutputFormatter, sink *warn.Collector, data any, okLine string) error {
	err := verdict(sink)

	if f.Format == "json" {
		if err != nil {
			code := errorCode(err)
			if encErr := f.Failure(code, err.Error(), data); encErr != nil {
				return encErr
			}
			return WrapExitError(ExitFailure, code, err)
		}
		return f.Success(data)
	}

	printDiagnostics(f, sink)
	if err != nil {
		fmt.Fprintf(f.Writer, "✗ %v\n", err)
		return WrapExitError(ExitFailure, errorCode(err), err)
	}
	fmt.Fprintf(f.Writer, "✓ %s\n", okLine)
	return nil
}

// printDiagnostics writes the diagnostic report, if there is anything to
// report, to the error writer.
func printDiagnostics(f *OutputFormatter, sink *warn.Collector) {
	if len(sink.Diagnostics()) == 0 {
		return
	}
	fmt.Fprint(f.GetErrWriter(), sink.FormatText())
}

// newStoreOptions returns the store options for a command.
func newStoreOptions(opts *RootOptions, cmd *cobra.Command) []mdp.Option {
	return []mdp.Option{mdp.WithLogger(opts.logger(cmd))}
}
