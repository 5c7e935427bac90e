package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the embedding provider.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// ChunkerConfig configures how ingested files are split into documents.
type ChunkerConfig struct {
	Type              string `yaml:"type"`
	SentencesPerChunk int    `yaml:"sentences_per_chunk"`
	OverlapSentences  int    `yaml:"overlap_sentences"`
}

// CorpusConfig selects the corpus store and the ingest inputs.
type CorpusConfig struct {
	Type   string   `yaml:"type"`   // memory or sqlite
	Path   string   `yaml:"path"`   // sqlite database path
	Inputs []string `yaml:"inputs"` // .txt / .jsonl files or globs to ingest
}

// GeneratorConfig configures the generative backend.
type GeneratorConfig struct {
	Backend     string `yaml:"backend"` // ollama or none
	BaseURL     string `yaml:"base_url"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// RetrieverConfig configures retrieval defaults.
type RetrieverConfig struct {
	TopK      int `yaml:"top_k"`
	CacheSize int `yaml:"cache_size"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Embedder  EmbedderConfig  `yaml:"embedder"`
	Chunker   ChunkerConfig   `yaml:"chunker"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Generator GeneratorConfig `yaml:"generator"`
	Retriever RetrieverConfig `yaml:"retriever"`
	Server    ServerConfig    `yaml:"server"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/lexai/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnvOverrides(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lexai", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Embedder:  EmbedderConfig{Type: "tfidf"},
		Chunker:   ChunkerConfig{Type: "sentence", SentencesPerChunk: 5, OverlapSentences: 1},
		Corpus:    CorpusConfig{Type: "memory"},
		Generator: GeneratorConfig{Backend: "ollama", Model: "phi3:latest", TimeoutSecs: 6},
		Retriever: RetrieverConfig{TopK: 2, CacheSize: 512},
		Server:    ServerConfig{Addr: ":8000"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Chunker.SentencesPerChunk == 0 {
		cfg.Chunker.SentencesPerChunk = 5
	}
	if cfg.Retriever.TopK == 0 {
		cfg.Retriever.TopK = 2
	}
	if cfg.Retriever.CacheSize == 0 {
		cfg.Retriever.CacheSize = 512
	}
	if cfg.Generator.Backend == "" {
		cfg.Generator.Backend = "ollama"
	}
	if cfg.Generator.Model == "" {
		cfg.Generator.Model = "phi3:latest"
	}
	if cfg.Generator.TimeoutSecs == 0 {
		cfg.Generator.TimeoutSecs = 6
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8000"
	}
	if cfg.Embedder.Type == "openai" && cfg.Embedder.OpenAI != nil {
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.Embedder.OpenAI.TimeoutSecs = 30
		}
	}
}

// applyEnvOverrides lets deployment environments tune the hot knobs without
// editing the config file.
func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("LEXAI_MODEL"); v != "" {
		cfg.Generator.Model = v
	}
	if v, ok := envInt("LEXAI_GEN_TIMEOUT"); ok {
		cfg.Generator.TimeoutSecs = v
	}
	if v, ok := envInt("LEXAI_CACHE_SIZE"); ok {
		cfg.Retriever.CacheSize = v
	}
	if v, ok := envInt("LEXAI_TOP_K"); ok {
		cfg.Retriever.TopK = v
	}
	if v := os.Getenv("LEXAI_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
