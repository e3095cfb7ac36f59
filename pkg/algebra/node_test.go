package algebra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("Scalars are literals", func(t *testing.T) {
		for _, v := range []any{"hello", float64(42), true, nil} {
			n, err := Decode(v)
			require.NoError(t, err)
			assert.Equal(t, Literal{Value: v}, n)
		}
	})

	t.Run("Mapping with @op is an invocation", func(t *testing.T) {
		n, err := Decode(map[string]any{
			"@op":  "Value",
			"args": map[string]any{"name": "city"},
		})
		require.NoError(t, err)

		inv, ok := n.(Invocation)
		require.True(t, ok)
		assert.Equal(t, "Value", inv.Op)
		assert.Equal(t, Literal{Value: "city"}, inv.Args["name"])
	})

	t.Run("Mapping without @op is an opaque literal", func(t *testing.T) {
		doc := map[string]any{
			"nested": map[string]any{"@op": "Value", "args": map[string]any{}},
		}
		n, err := Decode(doc)
		require.NoError(t, err)

		// No recursive descent: the nested invocation stays data.
		assert.Equal(t, Literal{Value: doc}, n)
	})

	t.Run("Missing args defaults to empty", func(t *testing.T) {
		n, err := Decode(map[string]any{"@op": "STRUUID"})
		require.NoError(t, err)
		inv, ok := n.(Invocation)
		require.True(t, ok)
		assert.Empty(t, inv.Args)
	})

	t.Run("Non-string @op is a hard error", func(t *testing.T) {
		_, err := Decode(map[string]any{"@op": float64(1)})
		assert.Error(t, err)
	})

	t.Run("Empty @op is a hard error", func(t *testing.T) {
		_, err := Decode(map[string]any{"@op": ""})
		assert.Error(t, err)
	})

	t.Run("Extra keys are a hard error", func(t *testing.T) {
		_, err := Decode(map[string]any{"@op": "Value", "args": map[string]any{}, "extra": 1})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "extra")
	})

	t.Run("Non-mapping args is a hard error", func(t *testing.T) {
		_, err := Decode(map[string]any{"@op": "Value", "args": []any{}})
		assert.Error(t, err)
	})

	t.Run("Malformed nested argument propagates", func(t *testing.T) {
		_, err := Decode(map[string]any{
			"@op":  "Execute",
			"args": map[string]any{"operation": map[string]any{"@op": false}},
		})
		assert.Error(t, err)
	})

	t.Run("Sequences decode element-wise", func(t *testing.T) {
		n, err := Decode([]any{"a", map[string]any{"@op": "STRUUID"}})
		require.NoError(t, err)

		seq, ok := n.(Sequence)
		require.True(t, ok)
		require.Len(t, seq, 2)
		assert.Equal(t, Literal{Value: "a"}, seq[0])
		_, ok = seq[1].(Invocation)
		assert.True(t, ok)
	})
}

func TestDecodeJSON(t *testing.T) {
	n, err := DecodeJSON([]byte(`{"@op":"Value","args":{"name":"$x"}}`))
	require.NoError(t, err)
	inv, ok := n.(Invocation)
	require.True(t, ok)
	assert.Equal(t, "Value", inv.Op)

	_, err = DecodeJSON([]byte(`{"@op":`))
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	doc := map[string]any{
		"@op": "Concat",
		"args": map[string]any{
			"values": []any{"a", map[string]any{"@op": "STRUUID", "args": map[string]any{}}},
		},
	}
	n, err := Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, doc, Encode(n))
}
