package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/roach88/mdp/internal/export"
	"github.com/roach88/mdp/internal/mdp"
	"github.com/roach88/mdp/internal/warn"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	To     string
	Output string
}

// ExportResult is the result of the export command when writing a file.
type ExportResult struct {
	Input   string `json:"input"`
	Output  string `json:"output"`
	Format  string `json:"format"`
	Entries int    `json:"entries"`
	Report
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export <file> --to <format>",
		Short: "Convert a parameter file to another format",
		Long: fmt.Sprintf(`Convert the name/value pairs of a parameter file, in file order, to
another configuration format (%s). Values are exported as strings.

Without -o the converted document is written to stdout and only
diagnostics are printed, to stderr.`, strings.Join(export.Formats(), ", ")),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.To, "to", "json", "output format ("+strings.Join(export.Formats(), "|")+")")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func runExport(opts *RootOptions, eopts *ExportOptions, path string, cmd *cobra.Command) error {
	formatter, _, err := begin(opts, cmd)
	if err != nil {
		return fail(formatter, err)
	}

	format, err := export.ParseFormat(eopts.To)
	if err != nil {
		return failFlag(formatter, "%v", err)
	}

	sink := warn.New()
	st, err := mdp.Read(path, sink, newStoreOptions(opts, cmd)...)
	if err != nil {
		return fail(formatter, err)
	}

	kvs := st.Flat()
	data, err := export.Marshal(format, kvs)
	if err != nil {
		return fail(formatter, err)
	}

	if eopts.Output == "" {
		if _, err := formatter.Writer.Write(data); err != nil {
			return fail(formatter, fmt.Errorf("%w stdout: %w", mdp.ErrWrite, err))
		}
		printDiagnostics(formatter, sink)
		if err := verdict(sink); err != nil {
			return WrapExitError(ExitFailure, errorCode(err), err)
		}
		return nil
	}

	if err := atomic.WriteFile(eopts.Output, bytes.NewReader(data)); err != nil {
		return fail(formatter, fmt.Errorf("%w %s: %w", mdp.ErrWrite, eopts.Output, err))
	}

	result := ExportResult{
		Input:   path,
		Output:  eopts.Output,
		Format:  format.String(),
		Entries: len(kvs),
		Report:  newReport(sink),
	}
	return finish(formatter, sink, result,
		fmt.Sprintf("exported %d entries to %s (%s)", len(kvs), eopts.Output, format))
}
