package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/mdp/internal/banner"
	"github.com/roach88/mdp/internal/mdp"
	"github.com/roach88/mdp/internal/warn"
)

// CheckResult is the result of the check command.
type CheckResult struct {
	File    string `json:"file"`
	Entries int    `json:"entries"`
	Report
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &inputFlags{}

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Report problems in a parameter file",
		Long: `Read a parameter file and report duplicate entries.

With --defs, every defined parameter is also read with its type, so
malformed numbers and invalid enum values are reported, and entries the
definitions do not know are reported as unknown (as errors with
--halt-on-unknown).

Exits 1 when errors were found or the warning limit was exceeded.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, flags, args[0], cmd)
		},
	}
	flags.register(cmd)

	return cmd
}

func runCheck(opts *RootOptions, flags *inputFlags, path string, cmd *cobra.Command) error {
	formatter, cfg, err := begin(opts, cmd)
	if err != nil {
		return fail(formatter, err)
	}
	in := flags.resolve(cmd, cfg)

	set, err := loadDefs(formatter, in.Defs)
	if err != nil {
		return fail(formatter, err)
	}

	sink := warn.New(warn.WithMaxWarnings(in.MaxWarnings))
	st, err := mdp.Read(path, sink, newStoreOptions(opts, cmd)...)
	if err != nil {
		return fail(formatter, err)
	}
	formatter.VerboseLog("Read %d entries from %s", st.Len(), path)

	if set != nil {
		set.Apply(st, sink)
		// Rendering reports the unknown keys; the output itself is not needed.
		// A *warn.FatalError is left to verdict.
		err := mdp.WriteTo(io.Discard, path, st, in.HaltOnUnknown, sink, mdp.WithBanner(&banner.Context{}))
		if errors.Is(err, mdp.ErrWrite) {
			return fail(formatter, err)
		}
	}

	result := CheckResult{
		File:    path,
		Entries: st.Len(),
		Report:  newReport(sink),
	}
	return finish(formatter, sink, result,
		fmt.Sprintf("%s: %d entries, %d warning(s)", path, result.Entries, sink.Warnings()))
}
