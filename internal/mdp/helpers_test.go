package mdp

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/mdp/internal/banner"
	"github.com/roach88/mdp/internal/warn"
)

// fixedBanner prints a header with no host, user or time details so
// written output is stable.
var fixedBanner = &banner.Context{Program: "mdp test", Version: "0.0.0"}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parse(t *testing.T, src string, sink Sink) *Store {
	t.Helper()
	st, err := Parse(strings.NewReader(src), "test.mdp", sink, WithLogger(quietLogger()))
	require.NoError(t, err)
	return st
}

func names(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func messages(diags []warn.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}
	return out
}
