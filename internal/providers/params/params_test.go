package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	p := map[string]any{"path": "/a", "empty": "", "num": 1.0}

	got, err := String(p, "path", true)
	require.NoError(t, err)
	assert.Equal(t, "/a", got)

	_, err = String(p, "missing", true)
	assert.EqualError(t, err, "missing parameter required")

	got, err = String(p, "missing", false)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	_, err = String(p, "empty", true)
	assert.Error(t, err)

	_, err = String(p, "num", false)
	assert.EqualError(t, err, "num must be string")
}

func TestInt(t *testing.T) {
	p := map[string]any{"a": 3.0, "b": 2.5, "c": "x", "d": 7}

	v, err := Int(p, "a", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	v, err = Int(p, "d", 0)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	v, err = Int(p, "missing", 42)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = Int(p, "b", 0)
	assert.Error(t, err)
	_, err = Int(p, "c", 0)
	assert.Error(t, err)
}

func TestResults(t *testing.T) {
	ok, err := Success(map[string]any{"x": 1})
	require.NoError(t, err)
	assert.True(t, ok.Success)

	bad, err := Failuref("no such %s", "file")
	require.NoError(t, err)
	assert.False(t, bad.Success)
	assert.Equal(t, "no such file", *bad.Error)

	assert.True(t, Bool(map[string]any{"gzip": true}, "gzip", false))
	assert.False(t, Bool(map[string]any{"gzip": "yes"}, "gzip", false))
}
