package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Storage  StorageConfig
	Cache    CacheConfig
	Events   EventsConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider       string // "gemini", "ollama" or "huggingface"
	LLMModel          string
	GeminiBaseURL     string
	GeminiAPIKeys     []string
	OllamaBaseURL     string
	HuggingFaceAPIKey string
	MaxRetries        int
	RetryBaseDelay    time.Duration
	RetrySafetyMargin time.Duration
	RequestTimeout    time.Duration
	SectionPrefix     string
	ExchangeLogPath   string
}

type StorageConfig struct {
	Driver          string // "local" or "gcs"
	Root            string
	Bucket          string
	CredentialsFile string
}

type CacheConfig struct {
	ReferenceTTL time.Duration
	RenderTTL    time.Duration
}

type EventsConfig struct {
	ContentTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:          getEnv("LLM_MODEL", "gemini-2.0-flash"),
			GeminiBaseURL:     getEnv("GEMINI_BASE_URL", ""),
			GeminiAPIKeys:     geminiKeys(),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			HuggingFaceAPIKey: getEnv("HUGGINGFACE_API_KEY", ""),
			MaxRetries:        getEnvAsInt("AI_MAX_RETRIES", 3),
			RetryBaseDelay:    getEnvAsDuration("AI_RETRY_BASE_DELAY", 15*time.Second),
			RetrySafetyMargin: getEnvAsDuration("AI_RETRY_SAFETY_MARGIN", 2*time.Second),
			RequestTimeout:    getEnvAsDuration("AI_REQUEST_TIMEOUT", 180*time.Second),
			SectionPrefix:     getEnv("RENDER_SECTION_PREFIX", "##"),
			ExchangeLogPath:   getEnv("AI_EXCHANGE_LOG_PATH", "ai_exchange.log"),
		},
		Storage: StorageConfig{
			Driver:          getEnv("STORAGE_DRIVER", "local"),
			Root:            getEnv("STORAGE_ROOT", "./public"),
			Bucket:          getEnv("GCS_BUCKET", ""),
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		},
		Cache: CacheConfig{
			ReferenceTTL: getEnvAsDuration("REFERENCE_CACHE_TTL", 5*time.Minute),
			RenderTTL:    getEnvAsDuration("RENDER_CACHE_TTL", 24*time.Hour),
		},
		Events: EventsConfig{
			ContentTopic: getEnv("CONTENT_EVENTS_TOPIC", "LESSON_CONTENT_GENERATED"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GOOGLE_GEMINI_API_KEYS is a comma separated pool; a single GOOGLE_GEMINI_API_KEY still works.
func geminiKeys() []string {
	keys := getEnvAsList("GOOGLE_GEMINI_API_KEYS")
	if len(keys) == 0 {
		keys = getEnvAsList("GOOGLE_GEMINI_API_KEY")
	}
	return keys
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("20s") or plain seconds ("20").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := strings.TrimSpace(getEnv(key, ""))
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
