package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the document Q&A service.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
	Answer    AnswerConfig    `yaml:"answer"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Ingest    IngestConfig    `yaml:"ingest"`
	Cache     CacheConfig     `yaml:"cache"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes"`
}

// Storage backends.
const (
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// StorageConfig holds persistence configuration.
type StorageConfig struct {
	Backend      string `yaml:"backend"` // "bolt", "memory"
	DataDir      string `yaml:"data_dir"`
	MaxDocuments int    `yaml:"max_documents"` // 0 = unlimited
}

// ChunkingConfig holds chunk window configuration. Sizes are in characters.
type ChunkingConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK         int     `yaml:"top_k"`
	MaxTopK      int     `yaml:"max_top_k"`
	MaxFetch     int     `yaml:"max_fetch"`
	Metric       string  `yaml:"metric"`      // "l2", "cosine"
	Diversifier  string  `yaml:"diversifier"` // "keyword", "none", "mmr"
	MMRLambda    float64 `yaml:"mmr_lambda"`
	DedupJaccard float64 `yaml:"dedup_jaccard"` // mmr only
	PreviewLen   int     `yaml:"preview_len"`
}

// AnswerConfig holds answer synthesis configuration.
type AnswerConfig struct {
	Mode string `yaml:"mode"` // "auto", "summary", "keyword"
}

// EmbeddingConfig holds embedding configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`    // "openai", "ollama", "openai-compatible", "hash"
	Model     string `yaml:"model"`       // e.g., "text-embedding-3-small"
	APIKeyEnv string `yaml:"api_key_env"` // Environment variable for API key
	BaseURL   string `yaml:"base_url"`
	Dimension int    `yaml:"dimension"`
	BatchSize int    `yaml:"batch_size"`
}

// IngestConfig holds bulk ingest configuration for the CLI.
type IngestConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// CacheConfig holds answer cache configuration.
type CacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	MaxEntries int  `yaml:"max_entries"`
	TTLSeconds int  `yaml:"ttl_seconds"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console", "json"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8000",
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
				"http://localhost:5173",
				"http://127.0.0.1:5173",
			},
			MaxUploadBytes: 32 << 20,
		},
		Storage: StorageConfig{
			Backend:      BackendBolt,
			DataDir:      "storage",
			MaxDocuments: 0,
		},
		Chunking: ChunkingConfig{
			Size:    900,
			Overlap: 150,
		},
		Retrieve: RetrieveConfig{
			TopK:         6,
			MaxTopK:      10,
			MaxFetch:     20,
			Metric:       "l2",
			Diversifier:  "keyword",
			MMRLambda:    0.7,
			DedupJaccard: 0.9,
			PreviewLen:   300,
		},
		Answer: AnswerConfig{
			Mode: "auto",
		},
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 1536,
			BatchSize: 100,
		},
		Ingest: IngestConfig{
			Includes: []string{"**/*.txt", "**/*.pdf", "**/*.docx"},
			Excludes: []string{"**/.git/**", "**/node_modules/**", "**/.docqa/**"},
		},
		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: 256,
			TTLSeconds: 600,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for docqa.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "docqa.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".docqa", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DBPath returns the path to the artifact database inside dataDir.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, "docqa.db")
}

// EnsureDataDir ensures the data directory exists.
func EnsureDataDir(dataDir string) error {
	return os.MkdirAll(dataDir, 0755)
}
