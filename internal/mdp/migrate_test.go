package mdp

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mdp/internal/warn"
)

func TestReplaceRenames(t *testing.T) {
	st := parse(t, "title = x\nunconstrained_start = yes\n", nil)

	n := st.Replace("unconstrained-start", "continuation")
	assert.Equal(t, 1, n)

	_, ok := st.Lookup("unconstrained_start")
	assert.False(t, ok)

	e, ok := st.Lookup("continuation")
	require.True(t, ok)
	assert.Equal(t, "continuation", e.Name)
	assert.Equal(t, "yes", e.Value)
	assert.False(t, e.Set)
	assert.Equal(t, 0, e.AccessOrder)
}

func TestReplaceMissingIsNoop(t *testing.T) {
	st := parse(t, "title = x\n", nil)
	assert.Zero(t, st.Replace("nstxtcout", "nstxout-compressed"))
	assert.Equal(t, []string{"title"}, names(st.Entries()))
}

func TestReplaceObsolete(t *testing.T) {
	sink := warn.New()
	st := parse(t, "title = x\ncpp = /lib/cpp\nnsteps = 5\n", sink)

	assert.Equal(t, 1, st.Replace("cpp", ""))
	e, _ := st.Lookup("cpp")
	assert.True(t, e.Obsolete)

	st.String("title", "")
	st.Int("nsteps", 0, sink)

	var out bytes.Buffer
	require.NoError(t, WriteTo(&out, "out.mdp", st, true, sink, WithBanner(fixedBanner)))
	assert.NotContains(t, out.String(), "cpp")
	assert.Zero(t, sink.Warnings())
	assert.Zero(t, sink.Errors())
}

func TestMigrate(t *testing.T) {
	st := parse(t, "nstxtcout = 100\nxtc-grps = System\ntitle = x\n", nil)

	n := st.Migrate([]Migration{
		{Old: "nstxtcout", New: "nstxout-compressed"},
		{Old: "xtc_grps", New: "compressed-x-grps"},
		{Old: "title", New: ""},
		{Old: "nothing", New: "else"},
	})
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"nstxout-compressed", "compressed-x-grps", "title"}, names(st.Entries()))
	assert.Equal(t, 100, st.Int("nstxout_compressed", 0, nil))
}

func TestReplaceOntoExistingNameWarns(t *testing.T) {
	var logs bytes.Buffer
	st, err := Parse(strings.NewReader("a = 1\nb = 2\nc = 3\n"), "test.mdp", nil,
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	require.NoError(t, err)

	assert.Equal(t, 1, st.Replace("b", "c"))
	assert.Equal(t, []string{"a", "c", "c"}, names(st.Entries()))
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "old=b new=c")

	e, ok := st.Lookup("c")
	require.True(t, ok)
	assert.Equal(t, "2", e.Value, "the renamed entry comes first in file order")
}
