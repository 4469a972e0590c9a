package mdp

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mdp/internal/warn"
)

func assertGolden(t *testing.T, name string, got []byte) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, got)
}

func TestWriteOrdersByAccess(t *testing.T) {
	sink := warn.New()
	st := parse(t, "c = 3\nz = 26\na = 1\nx = 9\n", sink)

	st.Int("a", 0, sink)
	st.Int("b", 2, sink)
	st.Int("c", 0, sink)

	var out bytes.Buffer
	require.NoError(t, WriteTo(&out, "out.mdp", st, false, sink, WithBanner(fixedBanner)))
	assertGolden(t, "ordering", out.Bytes())

	assert.Zero(t, sink.Errors())
	assert.Equal(t, []string{
		"Unknown left-hand 'z' in parameter file",
		"Unknown left-hand 'x' in parameter file",
	}, messages(sink.BySeverity(warn.SevWarning)))

	// Untouched entries are numbered after the last access.
	z, _ := st.Lookup("z")
	x, _ := st.Lookup("x")
	assert.Equal(t, 4, z.AccessOrder)
	assert.Equal(t, 5, x.AccessOrder)
	assert.Equal(t, []string{"a", "b", "c", "z", "x"}, names(st.Entries()))
}

func TestWriteCommentEntries(t *testing.T) {
	st := New(WithLogger(quietLogger()))
	sink := warn.New()

	st.Acquire(Param{Name: "; RUN CONTROL", Kind: KindComment}, sink)
	st.String("integrator", "md")
	st.Int("nsteps", 1000, sink)
	st.Acquire(Param{Name: "\n; OUTPUT CONTROL", Kind: KindComment}, sink)
	st.Int("nstxout", 0, sink)

	var out bytes.Buffer
	require.NoError(t, WriteTo(&out, "out.mdp", st, true, sink, WithBanner(fixedBanner)))
	assertGolden(t, "comments", out.Bytes())
	assert.Zero(t, sink.Warnings())
}

func TestWriteUnknownStrict(t *testing.T) {
	sink := warn.New()
	st := parse(t, "nsteps = 10\nbogus = 1\n", sink)
	st.Int("nsteps", 0, sink)

	var out bytes.Buffer
	err := WriteTo(&out, "out.mdp", st, true, sink, WithBanner(fixedBanner))

	var fatal *warn.FatalError
	require.ErrorAs(t, err, &fatal)
	assert.Equal(t, 1, fatal.Errors)
	assert.True(t, errors.Is(err, warn.ErrInputErrors))
	assert.Equal(t, []string{"Unknown left-hand 'bogus' in parameter file"},
		messages(sink.BySeverity(warn.SevError)))

	assert.Contains(t, out.String(), "nsteps", "output is produced before the error is returned")
	assert.NotContains(t, out.String(), "bogus")
}

func TestWriteUnknownWithoutSink(t *testing.T) {
	st := parse(t, "bogus = 1\n", nil)

	var out bytes.Buffer
	assert.NoError(t, WriteTo(&out, "out.mdp", st, true, nil, WithBanner(fixedBanner)))
}

func TestWriteReportsEarlierErrors(t *testing.T) {
	sink := warn.New()
	st := parse(t, "nsteps = ten\n", sink)
	st.Int("nsteps", 0, sink)

	var out bytes.Buffer
	err := WriteTo(&out, "out.mdp", st, false, sink, WithBanner(fixedBanner))
	var fatal *warn.FatalError
	require.ErrorAs(t, err, &fatal)
	assert.Equal(t, "There were 1 error(s) in input file(s)", fatal.Error())
}

func TestWriteRoundTrip(t *testing.T) {
	src := strings.Join([]string{
		"; leading comments in the source are not preserved",
		"nsteps     = 500000",
		"dt         = 0.002",
		"ref_t      = 300 300",
		"integrator = md",
		"title      = Protein in water",
		"",
	}, "\n")
	st := parse(t, src, nil)

	st.String("title", "")
	st.String("integrator", "")
	st.MarkSet("dt")
	st.MarkSet("nsteps")
	st.String("ref-t", "")
	st.String("include", "")

	var out bytes.Buffer
	sink := warn.New()
	require.NoError(t, WriteTo(&out, "out.mdp", st, true, sink, WithBanner(fixedBanner)))
	assertGolden(t, "roundtrip", out.Bytes())

	again := parse(t, out.String(), nil)
	assert.Equal(t, []KeyValue{
		{Name: "title", Value: "Protein in water"},
		{Name: "integrator", Value: "md"},
		{Name: "dt", Value: "0.002"},
		{Name: "nsteps", Value: "500000"},
		{Name: "ref_t", Value: "300 300"},
	}, again.Flat(), "the empty include line is dropped on reread")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.mdp")

	sink := warn.New()
	st := parse(t, "nsteps = 10\n", sink)
	st.Int("nsteps", 0, sink)

	require.NoError(t, Write(path, st, true, sink, WithBanner(fixedBanner)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte(";\tFile '"+path+"' was generated\n")))
	assert.Contains(t, string(data), "nsteps                   = 10\n")
}

func TestWriteFileStrictStillWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mdp")

	sink := warn.New()
	st := parse(t, "nsteps = 10\nbogus = 2\n", sink)
	st.Int("nsteps", 0, sink)

	err := Write(path, st, true, sink, WithBanner(fixedBanner))
	var fatal *warn.FatalError
	require.ErrorAs(t, err, &fatal)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestWriteUnwritablePath(t *testing.T) {
	st := New(WithLogger(quietLogger()))
	err := Write(filepath.Join(t.TempDir(), "missing", "out.mdp"), st, false, nil, WithBanner(fixedBanner))
	assert.ErrorIs(t, err, ErrWrite)
}

func TestIsCommentName(t *testing.T) {
	assert.True(t, isCommentName("; RUN CONTROL"))
	assert.True(t, isCommentName("\n; OUTPUT"))
	assert.False(t, isCommentName("\n;"))
	assert.False(t, isCommentName("title"))
	assert.False(t, isCommentName(""))
}
