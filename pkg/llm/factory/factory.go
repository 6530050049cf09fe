package factory

import (
	"fmt"
	"time"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/llm"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/llm/gemini"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/llm/huggingface"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/llm/ollama"
)

type ProviderConfig struct {
	Provider string // "gemini", "ollama", "huggingface"
	Model    string
	BaseURL  string
	APIKeys  []string
	Timeout  time.Duration
}

func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "gemini", "":
		pool, err := gemini.NewKeyPool(cfg.APIKeys)
		if err != nil {
			return nil, err
		}
		return gemini.NewGeminiProvider(cfg.BaseURL, cfg.Model, pool, cfg.Timeout), nil
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model, cfg.Timeout), nil
	case "huggingface":
		key := ""
		if len(cfg.APIKeys) > 0 {
			key = cfg.APIKeys[0]
		}
		return huggingface.NewHuggingFaceProvider(key, cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
