package ops

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStr(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"string", "hello", "hello"},
		{"boolean", true, "true"},
		{"whole number", float64(7), "7"},
		{"binding map", map[string]any{"type": "uri", "value": "http://example.org/"}, "http://example.org/"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := opStr(context.Background(), callWith(map[string]any{"value": tc.in}))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestConcat(t *testing.T) {
	got, err := opConcat(context.Background(), callWith(map[string]any{
		"values": []any{"a", map[string]any{"type": "literal", "value": "b"}, "c"},
	}))
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestReplace(t *testing.T) {
	t.Run("Basic replacement", func(t *testing.T) {
		got, err := opReplace(context.Background(), callWith(map[string]any{
			"value":       "abracadabra",
			"pattern":     "bra",
			"replacement": "*",
		}))
		require.NoError(t, err)
		assert.Equal(t, "a*cada*", got)
	})

	t.Run("Group references", func(t *testing.T) {
		got, err := opReplace(context.Background(), callWith(map[string]any{
			"value":       "darted",
			"pattern":     "^(.*?)d(.*)$",
			"replacement": "$1c$2",
		}))
		require.NoError(t, err)
		assert.Equal(t, "carted", got)
	})

	t.Run("Case-insensitive flag", func(t *testing.T) {
		got, err := opReplace(context.Background(), callWith(map[string]any{
			"value":       "Hello World",
			"pattern":     "hello",
			"replacement": "bye",
			"flags":       "i",
		}))
		require.NoError(t, err)
		assert.Equal(t, "bye World", got)
	})

	t.Run("Unsupported flag fails", func(t *testing.T) {
		_, err := opReplace(context.Background(), callWith(map[string]any{
			"value":       "x",
			"pattern":     "x",
			"replacement": "y",
			"flags":       "g",
		}))
		assert.Error(t, err)
	})

	t.Run("Invalid pattern fails", func(t *testing.T) {
		_, err := opReplace(context.Background(), callWith(map[string]any{
			"value":       "x",
			"pattern":     "(",
			"replacement": "y",
		}))
		assert.Error(t, err)
	})
}

func TestEncodeForURI(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"100% organic", "100%25%20organic"},
		{"~wilma", "~wilma"},
		{"a/b?c=d", "a%2Fb%3Fc%3Dd"},
		{"plain-text_1.2", "plain-text_1.2"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := opEncodeForURI(context.Background(), callWith(map[string]any{"value": tc.in}))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSTRUUID(t *testing.T) {
	got, err := opSTRUUID(context.Background(), callWith(nil))
	require.NoError(t, err)

	_, err = uuid.Parse(got.(string))
	assert.NoError(t, err)
}
