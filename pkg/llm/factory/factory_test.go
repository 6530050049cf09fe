package factory

import (
	"testing"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/llm/gemini"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/llm/huggingface"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider(ProviderConfig{Provider: "gemini", Model: "gemini-2.0-flash", APIKeys: []string{"k"}})
	require.NoError(t, err)
	assert.IsType(t, &gemini.GeminiProvider{}, p)

	p, err = NewLLMProvider(ProviderConfig{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	require.IsType(t, &ollama.OllamaProvider{}, p)
	assert.Equal(t, "http://localhost:11434", p.(*ollama.OllamaProvider).BaseURL)

	p, err = NewLLMProvider(ProviderConfig{Provider: "huggingface", APIKeys: []string{"hf"}})
	require.NoError(t, err)
	assert.IsType(t, &huggingface.HuggingFaceProvider{}, p)

	_, err = NewLLMProvider(ProviderConfig{Provider: "gemini"})
	assert.ErrorIs(t, err, gemini.ErrNoAPIKey)

	_, err = NewLLMProvider(ProviderConfig{Provider: "openai"})
	assert.ErrorContains(t, err, "unsupported LLM provider")
}
