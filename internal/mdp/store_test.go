package mdp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameKey(t *testing.T) {
	assert.Equal(t, NameKey("nstxout"), NameKey("NSTXOUT"))
	assert.Equal(t, NameKey("nstxout-compressed"), NameKey("nstxout_compressed"))
	assert.Equal(t, NameKey("nstxoutcompressed"), NameKey("NstXout-Compressed"))
	assert.NotEqual(t, NameKey("nstxout"), NameKey("nstvout"))
	assert.True(t, SameName("Tau-T", "tau_t"))
}

func TestFind(t *testing.T) {
	st := parse(t, "Integrator = md\nnsteps = 10\ntau_t = 0.1\n", nil)

	assert.Equal(t, 0, st.Find("integrator"))
	assert.Equal(t, 1, st.Find("NSTEPS"))
	assert.Equal(t, 2, st.Find("tau-t"))
	assert.Equal(t, -1, st.Find("dt"))

	e, ok := st.Lookup("INTEGRATOR")
	require.True(t, ok)
	assert.Equal(t, "Integrator", e.Name)
	assert.Equal(t, "md", e.Value)
	assert.False(t, e.Set, "lookup must not touch")
	assert.Zero(t, e.AccessOrder)
}

func TestMarkSet(t *testing.T) {
	st := parse(t, "a = 1\nb = 2\n", nil)

	assert.True(t, st.MarkSet("b"))
	assert.True(t, st.MarkSet("a"))
	assert.False(t, st.MarkSet("missing"))
	assert.Equal(t, 2, st.Len(), "MarkSet must not insert")

	a, _ := st.Lookup("a")
	b, _ := st.Lookup("b")
	assert.True(t, a.Set)
	assert.True(t, b.Set)
	assert.Equal(t, 1, b.AccessOrder)
	assert.Equal(t, 2, a.AccessOrder)
}

func TestTouchCounterAdvancesOnHitAndMiss(t *testing.T) {
	st := New(WithLogger(quietLogger()))

	e1, created := st.touch("x")
	assert.True(t, created)
	e2, created := st.touch("X")
	assert.False(t, created)
	assert.Same(t, e1, e2)
	e3, _ := st.touch("y")

	assert.Equal(t, 2, e1.AccessOrder)
	assert.Equal(t, 3, e3.AccessOrder)
	assert.True(t, e3.Set)
	assert.False(t, e3.HasValue)
}

func TestEntriesIsACopy(t *testing.T) {
	st := parse(t, "a = 1\nb = 2\n", nil)

	entries := st.Entries()
	entries[0] = nil

	assert.Equal(t, []string{"a", "b"}, names(st.Entries()))
}
