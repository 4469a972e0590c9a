package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/mdp/internal/banner"
	"github.com/roach88/mdp/internal/mdp"
	"github.com/roach88/mdp/internal/warn"
)

// NormalizeOptions holds flags for the normalize command.
type NormalizeOptions struct {
	inputFlags
	Output   string
	Renames  []string // "old=new"
	Obsolete []string
	MarkAll  bool
}

// NormalizeResult is the result of the normalize command.
type NormalizeResult struct {
	Input    string `json:"input"`
	Output   string `json:"output"`
	Entries  int    `json:"entries"`
	Migrated int    `json:"migrated"`
	Report
}

// NewNormalizeCommand creates the normalize command.
func NewNormalizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NormalizeOptions{}

	cmd := &cobra.Command{
		Use:   "normalize <file> -o <output>",
		Short: "Rewrite a parameter file in canonical form",
		Long: `Read a parameter file, migrate renamed and obsolete keys, and write it
back with a generated header and aligned "name = value" lines.

With --defs, parameters are written in definition order, missing ones are
added with their defaults and entries the definitions do not know are
reported as unknown and dropped. --mark-all keeps those entries, after
the defined ones. Without --defs every entry is kept in file order.

The output is always written. Exits 1 afterwards when errors were found
or the warning limit was exceeded.

Example:
  mdp normalize run.mdp -o run.norm.mdp
  mdp normalize old.mdp -o new.mdp --defs md.cue --rename nstxtcout=nstxout-compressed --obsolete cpp`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(rootOpts, opts, args[0], cmd)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (required)")
	cmd.Flags().StringArrayVar(&opts.Renames, "rename", nil, "rename a key, as old=new (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Obsolete, "obsolete", nil, "drop an obsolete key (repeatable)")
	cmd.Flags().BoolVar(&opts.MarkAll, "mark-all", false, "keep entries the definitions do not request")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runNormalize(opts *RootOptions, nopts *NormalizeOptions, path string, cmd *cobra.Command) error {
	formatter, cfg, err := begin(opts, cmd)
	if err != nil {
		return fail(formatter, err)
	}
	in := nopts.resolve(cmd, cfg)

	migrations, err := parseMigrations(nopts.Renames, nopts.Obsolete)
	if err != nil {
		return failFlag(formatter, "%v", err)
	}

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

	sink.SetLine(path, 0)
	warnRenameCollisions(st, migrations, sink)
	migrated := st.Migrate(migrations)
	if migrated > 0 {
		sink.Note(fmt.Sprintf("Migrated %d renamed or obsolete entry(ies)", migrated))
	}
	if set != nil {
		set.Apply(st, sink)
	}
	if set == nil || nopts.MarkAll {
		for _, e := range st.Entries() {
			if !e.Set && !e.Obsolete {
				st.MarkSet(e.Name)
			}
		}
	}

	err = mdp.Write(nopts.Output, st, in.HaltOnUnknown, sink, mdp.WithBanner(banner.Default()))
	if errors.Is(err, mdp.ErrWrite) {
		return fail(formatter, err)
	}
	formatter.VerboseLog("Wrote %s", nopts.Output)

	result := NormalizeResult{
		Input:    path,
		Output:   nopts.Output,
		Entries:  countWritten(st),
		Migrated: migrated,
		Report:   newReport(sink),
	}
	return finish(formatter, sink, result,
		fmt.Sprintf("wrote %s: %d entries, %d warning(s)", nopts.Output, result.Entries, sink.Warnings()))
}

// parseMigrations turns --rename and --obsolete values into migrations,
// renames first.
func parseMigrations(renames, obsolete []string) ([]mdp.Migration, error) {
	var out []mdp.Migration
	for _, r := range renames {
		oldName, newName, ok := strings.Cut(r, "=")
		oldName, newName = strings.TrimSpace(oldName), strings.TrimSpace(newName)
		if !ok || oldName == "" || newName == "" {
			return nil, fmt.Errorf("invalid --rename %q: want old=new", r)
		}
		out = append(out, mdp.Migration{Old: oldName, New: newName})
	}
	for _, name := range obsolete {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, errors.New("invalid --obsolete: empty name")
		}
		out = append(out, mdp.Migration{Old: name})
	}
	return out, nil
}

// warnRenameCollisions reports renames whose new name is already in the
// store. Both entries survive the rename and only the first is written.
func warnRenameCollisions(st *mdp.Store, migrations []mdp.Migration, sink *warn.Collector) {
	for _, m := range migrations {
		if m.New == "" {
			continue
		}
		old, ok := st.Lookup(m.Old)
		if !ok {
			continue
		}
		if cur, ok := st.Lookup(m.New); ok && cur != old {
			sink.Warning(fmt.Sprintf("Renaming '%s' to '%s' duplicates the existing entry '%s'",
				old.Name, m.New, cur.Name))
		}
	}
}

// countWritten counts the entries the writer emitted as name = value lines.
func countWritten(st *mdp.Store) int {
	n := 0
	for _, e := range st.Entries() {
		if e.Set && e.HasValue {
			n++
		}
	}
	return n
}
