package format

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Zeta  string   `json:"zeta"`
	Alpha int      `json:"alpha"`
	Date  string   `json:"date"`
	Tags  []string `json:"tags"`
	Ok    bool     `json:"ok"`
}

type textPayload struct{ Name string }

func (p textPayload) Text() string { return "name: " + p.Name }

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, map[string]any{"data": sample{Zeta: "z", Alpha: 1}}, "", false))
	assert.Equal(t, `{"data":{"zeta":"z","alpha":1,"date":"","tags":null,"ok":false}}`+"\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, []int{1}, "json", true))
	assert.Equal(t, "[\n  1\n]\n", buf.String())
}

func TestWriteYAML_KeepsFieldOrderAndQuotesAmbiguousStrings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	v := sample{Zeta: "z", Alpha: 2, Date: "2024-01-05", Tags: []string{"a", "true"}, Ok: true}
	require.NoError(t, Write(&buf, v, "yaml", false))
	assert.Equal(t, "zeta: z\nalpha: 2\ndate: \"2024-01-05\"\ntags:\n  - a\n  - \"true\"\nok: true\n", buf.String())
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, map[string]any{"data": textPayload{Name: "x"}}, "text", false))
	assert.Equal(t, "name: x\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, map[string]any{"data": "plain"}, "text", false))
	assert.Equal(t, "plain\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, map[string]any{"data": map[string]int{"n": 1}}, "text", false))
	assert.Equal(t, "n: 1\n", buf.String())
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := Write(&bytes.Buffer{}, 1, "edn", false)
	assert.EqualError(t, err, "unknown format: edn (expected json|yaml|text)")
}
