package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the tunehub server.
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Providers ProvidersConfig
}

type ServerConfig struct {
	Port               int
	Env                string
	RateLimitPerMinute int
}

// DataConfig locates the task tree that finetune records are written into.
type DataConfig struct {
	Dir         string
	CatalogPath string
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL string
}

// ProvidersConfig lists the fine-tuning backends to register and their settings.
type ProvidersConfig struct {
	Enabled []string
	OpenAI  OpenAIConfig
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

var knownProviders = map[string]bool{
	"openai": true,
}

// Load reads configuration from environment variables and returns a validated Config.
// Returns an error with a descriptive message if any required value is missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:               envInt("TUNEHUB_PORT", 8080),
			Env:                envString("TUNEHUB_ENV", "development"),
			RateLimitPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 60),
		},
		Data: DataConfig{
			Dir:         os.Getenv("TUNEHUB_DATA_DIR"),
			CatalogPath: os.Getenv("CATALOG_PATH"),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Providers: ProvidersConfig{
			Enabled: envList("FINETUNE_PROVIDERS", []string{"openai"}),
			OpenAI: OpenAIConfig{
				APIKey:  os.Getenv("OPENAI_API_KEY"),
				BaseURL: envString("OPENAI_BASE_URL", "https://api.openai.com"),
				Timeout: envDuration("OPENAI_TIMEOUT", 60*time.Second),
			},
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("TUNEHUB_DATA_DIR is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if len(c.Providers.Enabled) == 0 {
		return fmt.Errorf("FINETUNE_PROVIDERS must name at least one provider")
	}
	for _, p := range c.Providers.Enabled {
		if !knownProviders[p] {
			return fmt.Errorf("FINETUNE_PROVIDERS contains unknown provider %q; must be one of openai", p)
		}
		if p == "openai" && c.Providers.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when openai is enabled")
		}
	}

	if !strings.HasPrefix(c.Providers.OpenAI.BaseURL, "http://") && !strings.HasPrefix(c.Providers.OpenAI.BaseURL, "https://") {
		return fmt.Errorf("OPENAI_BASE_URL must start with http:// or https://, got %q", c.Providers.OpenAI.BaseURL)
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

// envList splits a comma-separated variable, dropping empty entries.
func envList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
