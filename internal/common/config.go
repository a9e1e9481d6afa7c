package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string           `toml:"environment"` // "development" or "production"
	Server      ServerConfig     `toml:"server"`
	LLM         LLMConfig        `toml:"llm"`
	Embeddings  EmbeddingsConfig `toml:"embeddings"`
	Retrieval   RetrievalConfig  `toml:"retrieval"`
	Storage     StorageConfig    `toml:"storage"`
	Logging     LoggingConfig    `toml:"logging"`
	App         AppConfig        `toml:"app"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// LLMConfig configures the completion provider. The provider is selected by
// model name prefix: "claude-*" Anthropic, "gemini-*" Google, "gpt-*" OpenAI.
type LLMConfig struct {
	Model           string  `toml:"model"`
	AnthropicAPIKey string  `toml:"anthropic_api_key"`
	GoogleAPIKey    string  `toml:"google_api_key"`
	OpenAIAPIKey    string  `toml:"openai_api_key"`
	Temperature     float32 `toml:"temperature"`
	MaxTokens       int     `toml:"max_tokens"`
	TopP            float32 `toml:"top_p"`
	Timeout         string  `toml:"timeout"` // e.g. "30s"
}

type EmbeddingsConfig struct {
	Model             string `toml:"model"`
	APIKey            string `toml:"api_key"` // OpenAI key; falls back to llm.openai_api_key
	Dimension         int    `toml:"dimension"`
	RequestsPerSecond int    `toml:"requests_per_second"` // outbound pacing, 0 disables
	Timeout           string `toml:"timeout"`
}

type RetrievalConfig struct {
	TopK            int `toml:"top_k"`
	MaxDocumentSize int `toml:"max_document_size"` // per-document truncation in the context block
}

type StorageConfig struct {
	VectorType string       `toml:"vector_type"` // "qdrant" or "memory"
	Qdrant     QdrantConfig `toml:"qdrant"`
	Badger     BadgerConfig `toml:"badger"`
}

type QdrantConfig struct {
	URL        string `toml:"url"`
	Collection string `toml:"collection"`
	APIKey     string `toml:"api_key"`
	Timeout    string `toml:"timeout"`
}

// BadgerConfig represents BadgerDB-specific configuration for the feedback log
type BadgerConfig struct {
	Path           string `toml:"path"`
	ResetOnStartup bool   `toml:"reset_on_startup"`
}

type LoggingConfig struct {
	Level       string   `toml:"level"`        // "debug", "info", "warn", "error"
	Output      []string `toml:"output"`       // "stdout", "file"
	ClientDebug bool     `toml:"client_debug"` // enable client-side debug logging
}

type AppConfig struct {
	DemoMode bool `toml:"demo_mode"` // force the built-in knowledge base even when providers initialize
}

// NewDefaultConfig returns the built-in defaults, overridable by config
// file, environment, and CLI flags in that order.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "0.0.0.0",
		},
		LLM: LLMConfig{
			Model:       "gpt-3.5-turbo",
			Temperature: 0.7,
			MaxTokens:   500,
			TopP:        0.95,
			Timeout:     "30s",
		},
		Embeddings: EmbeddingsConfig{
			Model:             "text-embedding-3-small",
			Dimension:         1536,
			RequestsPerSecond: 10,
			Timeout:           "15s",
		},
		Retrieval: RetrievalConfig{
			TopK:            3,
			MaxDocumentSize: 2000,
		},
		Storage: StorageConfig{
			VectorType: "memory",
			Qdrant: QdrantConfig{
				URL:        "http://localhost:6333",
				Collection: "docuassist",
				Timeout:    "10s",
			},
			Badger: BadgerConfig{
				Path: "./data/feedback",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
		App: AppConfig{
			DemoMode: false,
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env. Later files override earlier
// files; environment variables override all files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("DOCUASSIST_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("DOCUASSIST_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("DOCUASSIST_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// LLM configuration
	if model := os.Getenv("DOCUASSIST_LLM_MODEL"); model != "" {
		config.LLM.Model = model
	}
	if temp := os.Getenv("DOCUASSIST_LLM_TEMPERATURE"); temp != "" {
		if t, err := strconv.ParseFloat(temp, 32); err == nil {
			config.LLM.Temperature = float32(t)
		}
	}
	if maxTokens := os.Getenv("DOCUASSIST_LLM_MAX_TOKENS"); maxTokens != "" {
		if mt, err := strconv.Atoi(maxTokens); err == nil {
			config.LLM.MaxTokens = mt
		}
	}

	// Embeddings configuration
	if model := os.Getenv("DOCUASSIST_EMBEDDING_MODEL"); model != "" {
		config.Embeddings.Model = model
	}
	if dim := os.Getenv("DOCUASSIST_EMBEDDING_DIMENSION"); dim != "" {
		if d, err := strconv.Atoi(dim); err == nil {
			config.Embeddings.Dimension = d
		}
	}

	// Retrieval configuration
	if topK := os.Getenv("DOCUASSIST_TOP_K"); topK != "" {
		if k, err := strconv.Atoi(topK); err == nil {
			config.Retrieval.TopK = k
		}
	}

	// Storage configuration
	if vectorType := os.Getenv("DOCUASSIST_VECTOR_TYPE"); vectorType != "" {
		config.Storage.VectorType = vectorType
	}
	if url := os.Getenv("DOCUASSIST_QDRANT_URL"); url != "" {
		config.Storage.Qdrant.URL = url
	}
	if collection := os.Getenv("DOCUASSIST_QDRANT_COLLECTION"); collection != "" {
		config.Storage.Qdrant.Collection = collection
	}
	if badgerPath := os.Getenv("DOCUASSIST_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// Logging configuration
	if level := os.Getenv("DOCUASSIST_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	// App configuration
	if demo := os.Getenv("DOCUASSIST_DEMO_MODE"); demo != "" {
		if d, err := strconv.ParseBool(demo); err == nil {
			config.App.DemoMode = d
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	// Command-line flags have highest priority
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// ResolveAPIKey resolves a provider API key with environment variable
// priority: named env vars first, then the config fallback.
func ResolveAPIKey(envNames []string, configFallback string) (string, error) {
	for _, name := range envNames {
		if v := os.Getenv(name); v != "" {
			return v, nil
		}
	}
	if configFallback != "" {
		return configFallback, nil
	}
	return "", fmt.Errorf("API key not found (checked %v and config)", envNames)
}

// IsProduction returns true when running with a production environment tag.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
