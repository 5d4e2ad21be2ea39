package format

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/jsonv/validator"
)

func sampleResults() []Result {
	return []Result{
		{Name: "a.json", Err: validator.Check([]byte(`{"a": 1}`))},
		{Name: "b.json", Err: validator.Check([]byte(`[1,]`)), Elapsed: 1500 * time.Nanosecond},
		{Name: "c.json", Err: errors.New("read input: boom")},
	}
}

func TestResult(t *testing.T) {
	results := sampleResults()

	assert.True(t, results[0].Valid())
	assert.Equal(t, "", results[0].Position())

	assert.False(t, results[1].Valid())
	assert.Equal(t, "1:3", results[1].Position())
	syntaxErr, ok := results[1].SyntaxError()
	require.True(t, ok)
	assert.Equal(t, validator.TrailingSeparator, syntaxErr.Kind)

	_, ok = results[2].SyntaxError()
	assert.False(t, ok)
}

func TestTextEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewTextEncoder(&buf).DisableColor()
	require.NoError(t, enc.Encode(sampleResults()))

	want := "a.json: ok\n" +
		"b.json:1:3: trailing ','\n" +
		"c.json: read input: boom\n"
	assert.Equal(t, want, buf.String())
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(sampleResults()))

	var got []map[string]any
	require.NoError(t, stdjson.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)

	assert.Equal(t, "a.json", got[0]["name"])
	assert.Equal(t, true, got[0]["valid"])
	assert.NotContains(t, got[0], "error")
	assert.NotContains(t, got[0], "elapsedNs")

	assert.Equal(t, false, got[1]["valid"])
	assert.Equal(t, float64(1500), got[1]["elapsedNs"])
	errObj, ok := got[1]["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "trailing ','", errObj["message"])
	assert.Equal(t, "trailing-separator", errObj["kind"])
	assert.Equal(t, map[string]any{
		"offset": float64(2),
		"line":   float64(1),
		"column": float64(3),
	}, errObj["position"])

	errObj, ok = got[2]["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "read input: boom", errObj["message"])
	assert.NotContains(t, errObj, "kind")
	assert.NotContains(t, errObj, "position")
}

func TestTableEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableEncoder(&buf).Encode(sampleResults()))

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "POSITION")
	assert.Contains(t, out, "a.json")
	assert.Contains(t, out, "trailing ','")
	assert.Contains(t, out, "1:3")
	assert.Contains(t, out, "1.5µs")
	assert.Contains(t, out, "read input: boom")
}

func TestNewEncoder(t *testing.T) {
	var buf bytes.Buffer
	for _, name := range []string{"text", "json", "table"} {
		enc, err := NewEncoder(name, &buf)
		require.NoError(t, err, name)
		assert.NotNil(t, enc, name)
	}

	_, err := NewEncoder("yaml", &buf)
	assert.EqualError(t, err, "unknown format: yaml")
}
