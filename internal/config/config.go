// Package config loads the service configuration from YAML with
// environment variable overrides for deployment secrets.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default location when no path is given.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"logLevel"`

	// StorageBackend selects the profile store: memory, file, or postgres.
	StorageBackend string `yaml:"storageBackend"`
	DatabaseURL    string `yaml:"databaseURL"`
	DataDir        string `yaml:"dataDir"`

	// SessionBackend selects the token store: redis or jwt.
	SessionBackend    string `yaml:"sessionBackend"`
	RedisAddr         string `yaml:"redisAddr"`
	RedisPassword     string `yaml:"redisPassword"`
	JWTSecret         string `yaml:"jwtSecret"`
	SessionTTLMinutes int    `yaml:"sessionTTLMinutes"`

	// Provider selects the generation backend: openai-compat, gemini, or
	// ollama. An empty provider disables generation; every delegated call
	// degrades to its static fallback.
	Provider          string `yaml:"provider"`
	GenerationBaseURL string `yaml:"generationBaseURL"`
	GenerationAPIKey  string `yaml:"generationAPIKey"`
	GenerationModel   string `yaml:"generationModel"`

	ReplyWindow      int  `yaml:"replyWindow"`
	ClassifyTurns    int  `yaml:"classifyTurns"`
	IntensityScoring bool `yaml:"intensityScoring"`

	// ChatRateLimitPerMinute is enforced per profile on the chat endpoint.
	// Zero disables the limiter.
	ChatRateLimitPerMinute int `yaml:"chatRateLimitPerMinute"`

	MinioEndpoint  string `yaml:"minioEndpoint"`
	MinioAccessKey string `yaml:"minioAccessKey"`
	MinioSecretKey string `yaml:"minioSecretKey"`
	MinioBucket    string `yaml:"minioBucket"`
	MinioUseSSL    bool   `yaml:"minioUseSSL"`

	AMQPURL       string `yaml:"amqpURL"`
	QuotesBaseURL string `yaml:"quotesBaseURL"`
}

// Load reads config from path (defaults to config.yaml).
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)
	// Override with environment variables
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("GENERATION_API_KEY"); v != "" {
		cfg.GenerationAPIKey = v
	}
	if v := os.Getenv("GENERATION_MODEL"); v != "" {
		cfg.GenerationModel = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		cfg.MinioAccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		cfg.MinioSecretKey = v
	}
	if v := os.Getenv("AMQP_URL"); v != "" {
		cfg.AMQPURL = v
	}
	if v := os.Getenv("INTENSITY_SCORING"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.IntensityScoring = b
		}
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyDefaults(cfg *FileConfig) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.StorageBackend == "" {
		cfg.StorageBackend = "memory"
	}
	if cfg.SessionBackend == "" {
		cfg.SessionBackend = "jwt"
	}
	if cfg.SessionTTLMinutes <= 0 {
		cfg.SessionTTLMinutes = 60 * 24
	}
	if cfg.ReplyWindow <= 0 {
		cfg.ReplyWindow = 20
	}
	if cfg.ClassifyTurns <= 0 {
		cfg.ClassifyTurns = 6
	}
}

func validateConfig(cfg FileConfig) error {
	if cfg.Port == "" {
		return errors.New("config: port is required (set in config.yaml)")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown logLevel %q", cfg.LogLevel)
	}
	switch cfg.StorageBackend {
	case "memory":
	case "file":
		if cfg.DataDir == "" {
			return errors.New("config: dataDir is required for the file storage backend")
		}
	case "postgres":
		if cfg.DatabaseURL == "" {
			return errors.New("config: databaseURL is required for the postgres storage backend (set in config.yaml or DATABASE_URL)")
		}
	default:
		return fmt.Errorf("config: unknown storageBackend %q", cfg.StorageBackend)
	}
	switch cfg.SessionBackend {
	case "redis":
		if cfg.RedisAddr == "" {
			return errors.New("config: redisAddr is required for the redis session backend")
		}
	case "jwt":
		if len(cfg.JWTSecret) < 32 {
			return errors.New("config: jwtSecret must be at least 32 bytes for the jwt session backend (set in config.yaml or JWT_SECRET)")
		}
	default:
		return fmt.Errorf("config: unknown sessionBackend %q", cfg.SessionBackend)
	}
	switch cfg.Provider {
	case "":
	case "openai-compat", "gemini":
		if cfg.GenerationAPIKey == "" {
			return fmt.Errorf("config: generationAPIKey is required for the %s provider (set in config.yaml or GENERATION_API_KEY)", cfg.Provider)
		}
		if cfg.GenerationModel == "" {
			return errors.New("config: generationModel is required when a provider is set")
		}
	case "ollama":
		if cfg.GenerationModel == "" {
			return errors.New("config: generationModel is required when a provider is set")
		}
	default:
		return fmt.Errorf("config: unknown provider %q", cfg.Provider)
	}
	if cfg.ChatRateLimitPerMinute < 0 {
		return errors.New("config: chatRateLimitPerMinute must not be negative")
	}
	if cfg.ChatRateLimitPerMinute > 0 && cfg.RedisAddr == "" {
		return errors.New("config: redisAddr is required when chatRateLimitPerMinute is set")
	}
	if cfg.MinioEndpoint != "" && (cfg.MinioAccessKey == "" || cfg.MinioSecretKey == "" || cfg.MinioBucket == "") {
		return errors.New("config: minioAccessKey, minioSecretKey, and minioBucket are required when minioEndpoint is set")
	}
	return nil
}
