package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/xxxsen/common/logger"
)

// DefaultAllowedOrigin is the hosted frontend. Set ALLOWED_ORIGINS to "*" to
// accept any origin.
const DefaultAllowedOrigin = "https://skill-match-bot-frontend.onrender.com"

type Config struct {
	Port             int              `json:"port"`
	JWTSecret        string           `json:"jwt_secret"`
	JWTTTLHours      int              `json:"jwt_ttl_hours"`
	AllowedOrigins   []string         `json:"allowed_origins"`
	RateLimitSeconds int              `json:"rate_limit_seconds"`
	LogConfig        logger.LogConfig `json:"log_config"`
	Database         DatabaseConfig   `json:"database"`
	Cache            CacheConfig      `json:"cache"`
	Embedding        EmbeddingConfig  `json:"embedding"`
	Recommend        RecommendConfig  `json:"recommend"`
	Jobs             JobsConfig       `json:"jobs"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

func (d DatabaseConfig) Enabled() bool {
	return d.DSN != "" || d.Host != ""
}

type CacheConfig struct {
	URL        string `json:"url"`
	TTLSeconds int    `json:"ttl_seconds"`
}

type EmbeddingBackend struct {
	Provider string                 `json:"provider"`
	Model    string                 `json:"model"`
	Data     map[string]interface{} `json:"data"`
}

type EmbeddingConfig struct {
	EmbeddingBackend
	Fallbacks     []EmbeddingBackend `json:"fallbacks"`
	BatchSize     int                `json:"batch_size"`
	LRUSize       int                `json:"lru_size"`
	LRUTTLSeconds int                `json:"lru_ttl_seconds"`
	PersistCache  bool               `json:"persist_cache"`
	Breaker       bool               `json:"breaker"`
}

type RecommendConfig struct {
	Mode string `json:"mode"`
	TopK int    `json:"top_k"`
}

type JobsConfig struct {
	EmbeddingCacheCleanupSpec string `json:"embedding_cache_cleanup_spec"`
	EmbeddingCacheMaxAgeDays  int    `json:"embedding_cache_max_age_days"`
}

var defaultModels = map[string]string{
	"ollama": "all-minilm",
	"openai": "text-embedding-3-small",
	"gemini": "text-embedding-004",
	"hash":   "local",
}

// Load reads the optional JSON file, overlays environment variables (a .env
// file in the working directory is honoured) and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()
		if err := json.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}
	_ = godotenv.Load()
	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return nil, err
	}
	if err := finalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %w", err)
		}
		cfg.Port = port
	}
	if v := getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	if v := getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := getenv("REDIS_URL"); v != "" {
		cfg.Cache.URL = v
	}
	if v := getenv("EMBEDDING_PROVIDER"); v != "" {
		cfg.Embedding.Provider = v
	}
	if v := getenv("EMBEDDING_MODEL"); v != "" {
		cfg.Embedding.Model = v
	}
	if v := getenv("RECOMMEND_MODE"); v != "" {
		cfg.Recommend.Mode = v
	}
	setSecret := func(provider, key string) {
		v := getenv(key)
		if v == "" || !strings.EqualFold(cfg.Embedding.Provider, provider) {
			return
		}
		if cfg.Embedding.Data == nil {
			cfg.Embedding.Data = map[string]interface{}{}
		}
		cfg.Embedding.Data["api_key"] = v
	}
	setSecret("openai", "OPENAI_API_KEY")
	setSecret("gemini", "GEMINI_API_KEY")
	return nil
}

func finalize(cfg *Config) error {
	if cfg.Port == 0 {
		cfg.Port = 5001
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{DefaultAllowedOrigin}
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 1
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Cache.TTLSeconds <= 0 {
		cfg.Cache.TTLSeconds = 3600
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "ollama"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = defaultModels[strings.ToLower(cfg.Embedding.Provider)]
	}
	for i := range cfg.Embedding.Fallbacks {
		fb := &cfg.Embedding.Fallbacks[i]
		if fb.Model == "" {
			fb.Model = defaultModels[strings.ToLower(fb.Provider)]
		}
	}
	if cfg.Embedding.LRUSize == 0 {
		cfg.Embedding.LRUSize = 4096
	}
	if cfg.Embedding.LRUTTLSeconds <= 0 {
		cfg.Embedding.LRUTTLSeconds = 7200
	}
	if cfg.Recommend.Mode == "" {
		cfg.Recommend.Mode = "semantic"
	}
	if cfg.Recommend.TopK <= 0 {
		cfg.Recommend.TopK = 3
	}
	if cfg.Jobs.EmbeddingCacheMaxAgeDays <= 0 {
		cfg.Jobs.EmbeddingCacheMaxAgeDays = 30
	}
	if cfg.Jobs.EmbeddingCacheCleanupSpec == "" {
		cfg.Jobs.EmbeddingCacheCleanupSpec = "30 3 * * *"
	}

	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("port out of range: %d", cfg.Port)
	}
	switch strings.ToLower(cfg.Recommend.Mode) {
	case "semantic", "keyword":
	default:
		return fmt.Errorf("recommend.mode must be semantic or keyword")
	}
	if cfg.Database.Enabled() && cfg.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required when a database is configured")
	}
	if cfg.Database.DSN == "" && cfg.Database.Host != "" && cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
