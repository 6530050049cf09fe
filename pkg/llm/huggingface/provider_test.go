package huggingface

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	var seen chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer hf-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&seen))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"réponse"}}]}`))
	}))
	defer srv.Close()

	p := NewHuggingFaceProvider("hf-key", srv.URL, "mistral", 0)
	out, err := p.Generate(context.Background(), "système", []llm.ContentBlock{llm.TextBlock{Text: "leçon"}}, llm.WithMaxTokens(100))
	require.NoError(t, err)

	assert.Equal(t, "réponse", out)
	assert.Equal(t, "mistral", seen.Model)
	assert.Equal(t, 100, seen.MaxTokens)
	require.Len(t, seen.Messages, 2)
	assert.Equal(t, "leçon", seen.Messages[1].Content)
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{"rate limited", 429, `{"error":"rate limit"}`, func(t *testing.T, err error) {
			var pe *llm.ProviderError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, 429, pe.StatusCode)
		}},
		{"api error", 200, `{"error":{"message":"bad model"}}`, func(t *testing.T, err error) {
			assert.ErrorContains(t, err, "bad model")
		}},
		{"no choices", 200, `{"choices":[]}`, func(t *testing.T, err error) {
			assert.ErrorContains(t, err, "empty choices")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHuggingFaceProvider("", srv.URL, "m", 0).Generate(context.Background(), "", nil)
			tt.check(t, err)
		})
	}
}
