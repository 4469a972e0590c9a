package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/pelletier/go-toml/v2"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/mdp/internal/mdp"
)

var sample = []mdp.KeyValue{
	{Name: "title", Value: "Protein <in> water & ions"},
	{Name: "integrator", Value: "md"},
	{Name: "nsteps", Value: "500000"},
	{Name: "ld-seed", Value: "-1"},
	{Name: "gen_vel", Value: "yes"},
	{Name: "include", Value: ""},
	{Name: "_hidden", Value: "1e-3"},
}

func sampleNames() []string {
	out := make([]string, len(sample))
	for i, kv := range sample {
		out[i] = kv.Name
	}
	return out
}

func TestJSONGolden(t *testing.T) {
	got, err := JSON(sample)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "sample_json", got)
}

func TestJSONKeepsOrder(t *testing.T) {
	got, err := JSON(sample)
	require.NoError(t, err)

	dec := json.NewDecoder(bytes.NewReader(got))
	tok, err := dec.Token()
	require.NoError(t, err)
	require.Equal(t, json.Delim('{'), tok)

	var keys []string
	for dec.More() {
		k, err := dec.Token()
		require.NoError(t, err)
		keys = append(keys, k.(string))
		_, err = dec.Token()
		require.NoError(t, err)
	}
	assert.Equal(t, sampleNames(), keys)
}

func TestJSONEmpty(t *testing.T) {
	got, err := JSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(got))
}

func TestJSONNFC(t *testing.T) {
	// "e" + combining acute accent composes to U+00E9.
	got, err := JSON([]mdp.KeyValue{{Name: "title", Value: "cafe\u0301"}})
	require.NoError(t, err)
	assert.Equal(t, "{\"title\":\"caf\u00e9\"}\n", string(got))
}

func TestJSONLineSeparators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"actual separators", "a\u2028b\u2029c", "\"a\u2028b\u2029c\""},
		{"literal escape text", `see \u2028`, `"see \\u2028"`},
		{"mixed", "x \\u2028 y \u2028", "\"x \\\\u2028 y \u2028\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := marshalString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))

			var back string
			require.NoError(t, json.Unmarshal(got, &back))
			assert.Equal(t, tt.input, back)
		})
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	got, err := YAML(sample)
	require.NoError(t, err)

	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal(got, &doc))
	require.Len(t, doc.Content, 1)
	m := doc.Content[0]
	require.Equal(t, yaml.MappingNode, m.Kind)
	require.Len(t, m.Content, 2*len(sample))

	for i, kv := range sample {
		assert.Equal(t, kv.Name, m.Content[2*i].Value)
		assert.Equal(t, kv.Value, m.Content[2*i+1].Value)
	}

	var flat map[string]any
	require.NoError(t, yaml.Unmarshal(got, &flat))
	assert.Equal(t, "yes", flat["gen_vel"], "values stay strings")
	assert.Equal(t, "500000", flat["nsteps"])
}

func TestTOMLRoundTrip(t *testing.T) {
	got, err := TOML(sample)
	require.NoError(t, err)

	var back map[string]string
	require.NoError(t, toml.Unmarshal(got, &back))
	assert.Len(t, back, len(sample))
	for _, kv := range sample {
		assert.Equal(t, kv.Value, back[kv.Name], kv.Name)
	}

	// One line per pair, in store order.
	lines := bytes.Split(bytes.TrimSuffix(got, []byte("\n")), []byte("\n"))
	require.Len(t, lines, len(sample))
	assert.True(t, bytes.HasPrefix(lines[0], []byte("title")))
	assert.True(t, bytes.HasPrefix(lines[3], []byte("ld-seed")))
}

func TestCUERoundTrip(t *testing.T) {
	got, err := CUE(sample)
	require.NoError(t, err)

	v := cuecontext.New().CompileBytes(got, cue.Filename("export.cue"))
	require.NoError(t, v.Err(), string(got))

	iter, err := v.Fields()
	require.NoError(t, err)
	var keys []string
	for iter.Next() {
		keys = append(keys, iter.Label())
		s, err := iter.Value().String()
		require.NoError(t, err)
		assert.Equal(t, sample[len(keys)-1].Value, s)
	}
	assert.Equal(t, sampleNames(), keys, "the _hidden name is quoted and stays a regular field")
}

func TestCUELabels(t *testing.T) {
	got, err := CUE([]mdp.KeyValue{
		{Name: "nsteps", Value: "1"},
		{Name: "ref-t", Value: "300"},
		{Name: "if", Value: "x"},
	})
	require.NoError(t, err)
	assert.Contains(t, string(got), `nsteps:`)
	assert.Contains(t, string(got), `"ref-t":`)
	assert.Contains(t, string(got), `"if":`)
}

func TestParseFormat(t *testing.T) {
	for _, name := range Formats() {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, name, f.String())
	}

	f, err := ParseFormat(" YML ")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("ini")
	assert.ErrorContains(t, err, `unknown export format "ini"`)
	assert.Equal(t, "Format(9)", Format(9).String())
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, []mdp.KeyValue{{Name: "a", Value: "1"}}))
	assert.Equal(t, "{\"a\":\"1\"}\n", buf.String())

	_, err := Marshal(Format(9), nil)
	assert.Error(t, err)
}
