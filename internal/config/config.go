// Package config loads helpdesk CLI configuration from a TOML file with
// environment overrides. Credentials never live in the config file; they
// are read from the environment, optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
	"github.com/fluffyai/helpdesk-cli/internal/logger"
)

// Defaults for a fresh installation.
const (
	DefaultEmbeddingProvider = "ollama"
	DefaultEmbeddingModel    = "all-minilm"
	DefaultOllamaURL         = "http://localhost:11434"
	DefaultLLMModel          = "moonshot-v1-8k"
	DefaultLLMBaseURL        = "https://api.moonshot.cn/v1"
	DefaultKnowledgeDir      = "knowledge_base"
	DefaultCollection        = "helpdesk_docs"
)

// Config is the full helpdesk CLI configuration.
type Config struct {
	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Ingest    IngestConfig    `toml:"ingest"`
	Chat      ChatConfig      `toml:"chat"`

	// DataDir holds the vector collection and session database.
	// Defaults to ~/.helpdesk/data.
	DataDir string `toml:"data_dir"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	// Provider is "ollama" or "openai".
	Provider string `toml:"provider"`
	Model    string `toml:"model"`

	// BaseURL is the provider endpoint. When empty, each provider's own
	// default applies (http://localhost:11434 for ollama).
	BaseURL string `toml:"base_url"`
}

// LLMConfig configures the completion provider. Any OpenAI-compatible
// endpoint works; the default is Moonshot.
type LLMConfig struct {
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`
}

// IngestConfig configures the ingestion pipeline.
type IngestConfig struct {
	KnowledgeDir string `toml:"knowledge_dir"`
	ChunkSize    int    `toml:"chunk_size"`
	Overlap      int    `toml:"overlap"`
}

// ChatConfig configures conversation sampling.
// Temperature is a pointer so an explicit 0.0 in the file is kept as a
// deterministic setting rather than mistaken for "unset".
type ChatConfig struct {
	Temperature *float64 `toml:"temperature"`
	MaxTokens   int      `toml:"max_tokens"`
	TopK        int      `toml:"top_k"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Embedding: EmbeddingConfig{
			Provider: DefaultEmbeddingProvider,
			Model:    DefaultEmbeddingModel,
		},
		LLM: LLMConfig{
			Model:   DefaultLLMModel,
			BaseURL: DefaultLLMBaseURL,
		},
		Ingest: IngestConfig{
			KnowledgeDir: DefaultKnowledgeDir,
		},
		Chat: ChatConfig{
			Temperature: floatPtr(0.7),
			MaxTokens:   1024,
			TopK:        3,
		},
	}
}

// Load reads the config file at path, applying defaults for anything the
// file omits. A missing file yields the defaults. If path is empty,
// ~/.helpdesk/config.toml is used.
func Load(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".helpdesk", "config.toml")
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No config file at %s, using defaults", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrInvalidConfig, path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the config as TOML, creating parent directories as needed.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// applyDefaults fills in zero values left by a partial config file.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = d.Embedding.Provider
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = d.Embedding.Model
	}
	if c.LLM.Model == "" {
		c.LLM.Model = d.LLM.Model
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = d.LLM.BaseURL
	}
	if c.Ingest.KnowledgeDir == "" {
		c.Ingest.KnowledgeDir = d.Ingest.KnowledgeDir
	}
	if c.Chat.Temperature == nil {
		c.Chat.Temperature = d.Chat.Temperature
	}
	if c.Chat.MaxTokens == 0 {
		c.Chat.MaxTokens = d.Chat.MaxTokens
	}
	if c.Chat.TopK == 0 {
		c.Chat.TopK = d.Chat.TopK
	}
}

// Validate reports configuration that cannot work at all.
func (c *Config) Validate() error {
	switch c.Embedding.Provider {
	case "ollama", "openai":
	default:
		return fmt.Errorf("%w: unknown embedding provider %q", domain.ErrInvalidConfig, c.Embedding.Provider)
	}
	if t := c.Chat.Temperature; t != nil && (*t < 0 || *t > 2) {
		return fmt.Errorf("%w: temperature %v out of range [0, 2]", domain.ErrInvalidConfig, *t)
	}
	return nil
}

func floatPtr(v float64) *float64 {
	return &v
}

// LoadEnv seeds the process environment from a .env file in the working
// directory, then normalizes proxy variables. Missing .env is fine.
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to load .env: %v", err)
	}
	NormalizeProxyEnv()
}

// APIKey returns the completion provider credential from the environment.
// MOONSHOT_API_KEY takes precedence; OPENAI_API_KEY is the fallback so
// the same key works for any OpenAI-compatible endpoint.
func APIKey() string {
	if key := os.Getenv("MOONSHOT_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("OPENAI_API_KEY")
}

// proxyVars are the environment variables checked for socks:// URLs.
var proxyVars = []string{"all_proxy", "ALL_PROXY", "http_proxy", "HTTP_PROXY", "https_proxy", "HTTPS_PROXY"}

// NormalizeProxyEnv rewrites socks:// proxy URLs to socks5:// in the
// process environment. The HTTP transport only recognizes the latter
// scheme and would otherwise fail on every request.
func NormalizeProxyEnv() {
	for _, name := range proxyVars {
		val := os.Getenv(name)
		if strings.HasPrefix(val, "socks://") {
			normalized := "socks5://" + strings.TrimPrefix(val, "socks://")
			os.Setenv(name, normalized)
			logger.Debug("Normalized %s to %s", name, normalized)
		}
	}
}
