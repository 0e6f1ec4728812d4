package fieldpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	doc := map[string]any{
		"name": "Asha Mehta",
		"address": map[string]any{
			"city":    "Pune",
			"pinCode": "411001",
		},
	}

	tests := []struct {
		name   string
		path   string
		want   any
		wantOK bool
	}{
		{"top level", "name", "Asha Mehta", true},
		{"nested", "address.city", "Pune", true},
		{"missing leaf", "address.state", nil, false},
		{"missing branch", "banking.ifsc", nil, false},
		{"through scalar", "name.first", nil, false},
		{"empty path", "", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Get(doc, tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetPreservesSiblings(t *testing.T) {
	doc := map[string]any{
		"a": map[string]any{
			"b": "old",
			"c": "keep",
		},
	}

	updated, err := Set(doc, "a.b", "new")
	require.NoError(t, err)

	inner := updated["a"].(map[string]any)
	assert.Equal(t, "new", inner["b"])
	assert.Equal(t, "keep", inner["c"])

	// original untouched
	assert.Equal(t, "old", doc["a"].(map[string]any)["b"])
}

func TestSetDeepPath(t *testing.T) {
	updated, err := Set(map[string]any{}, "a.b.c.d.e", 42)
	require.NoError(t, err)

	got, ok := Get(updated, "a.b.c.d.e")
	require.True(t, ok)
	assert.Equal(t, 42, got)
}

func TestSetCreatesIntermediates(t *testing.T) {
	updated, err := Set(map[string]any{"x": 1}, "address.city", "Pune")
	require.NoError(t, err)
	assert.Equal(t, 1, updated["x"])

	got, ok := Get(updated, "address.city")
	require.True(t, ok)
	assert.Equal(t, "Pune", got)
}

func TestSetThroughScalarFails(t *testing.T) {
	_, err := Set(map[string]any{"name": "x"}, "name.first", "y")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty([]any{}))
	assert.True(t, IsEmpty([]string{}))
	assert.True(t, IsEmpty(map[string]any{}))

	assert.False(t, IsEmpty("value"))
	assert.False(t, IsEmpty(0))
	assert.False(t, IsEmpty(0.0))
	assert.False(t, IsEmpty(false))
	assert.False(t, IsEmpty([]any{"x"}))
}
