package integration

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/pkg/logger"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/ai/invoke"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/ai/pipeline"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/ai/prompt"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/llm"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	defaultOllamaBaseURL = "http://localhost:11434"
	defaultOllamaModel   = "gemma:2b"
)

func ollamaOrSkip(t *testing.T) (string, string) {
	t.Helper()
	if os.Getenv("OLLAMA_INTEGRATION") != "true" {
		t.Skip("Skipping Ollama integration test: set OLLAMA_INTEGRATION=true")
	}

	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	model := os.Getenv("OLLAMA_MODEL")
	if model == "" {
		model = defaultOllamaModel
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(baseURL + "/api/tags")
	if err != nil {
		t.Skipf("Ollama not reachable at %s: %v", baseURL, err)
	}
	resp.Body.Close()
	return baseURL, model
}

func TestOllamaCoordinatedGeneration(t *testing.T) {
	baseURL, model := ollamaOrSkip(t)

	provider := ollama.NewOllamaProvider(baseURL, model, 0)
	coordinator := invoke.NewCoordinator(provider, logger.NewNopLogger(), invoke.Config{MaxRetries: 1, BaseDelay: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	out := coordinator.Invoke(ctx, prompt.SystemInstruction, []llm.ContentBlock{
		llm.TextBlock{Text: "Titre : Dérivation\nNiveau : 1bac\nRédige uniquement une courte introduction."},
	})
	require.Equal(t, invoke.Success, out.Kind, out.Message())
	assert.NotEmpty(t, out.RawText)

	md, _, err := pipeline.ToMarkdown(out.RawText)
	require.NoError(t, err)
	assert.NotEmpty(t, md)
}
