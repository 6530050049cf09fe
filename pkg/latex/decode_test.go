package latex

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```\n", `{"a":1}`},
		{"leading prose", "Voici le cours :\n{\"a\":1}\nBonne lecture", `{"a":1}`},
		{"no object", "juste du texte", "juste du texte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.raw))
		})
	}
}

func TestDecode(t *testing.T) {
	doc, err := Decode(`{"n": 3, "s": "x"}`)
	require.NoError(t, err)
	assert.Equal(t, json.Number("3"), doc["n"])
	assert.Equal(t, "x", doc["s"])

	_, err = Decode(`["not", "an", "object"]`)
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = Decode(`{"broken": "\q"}`)
	assert.Error(t, err)
}
