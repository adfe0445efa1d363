// Package config loads service settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the service.
type Config struct {
	Debug bool

	// DeepSeek chat-completions endpoint.
	DeepseekAPIKey  string
	DeepseekBaseURL string

	// HTTP API server.
	APIHost string
	APIPort int

	// Crawler behaviour.
	SearchBaseURL string
	NewsHomeURL   string
	MaxRetries    int
	Timeout       time.Duration
	DelayMin      time.Duration
	DelayMax      time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Debug:           envBool("DEBUG", false),
		DeepseekAPIKey:  os.Getenv("DEEPSEEK_API_KEY"),
		DeepseekBaseURL: envString("DEEPSEEK_BASE_URL", "https://api.deepseek.com/v1"),
		APIHost:         envString("API_HOST", "127.0.0.1"),
		APIPort:         envInt("API_PORT", 8000),
		SearchBaseURL:   envString("SEARCH_BASE_URL", "https://search.sina.com.cn/"),
		NewsHomeURL:     envString("NEWS_HOME_URL", "https://news.sina.com.cn/"),
		MaxRetries:      envInt("CRAWLER_MAX_RETRIES", 3),
		Timeout:         envSeconds("CRAWLER_TIMEOUT", 10*time.Second),
		DelayMin:        envSeconds("CRAWLER_DELAY_MIN", time.Second),
		DelayMax:        envSeconds("CRAWLER_DELAY_MAX", 3*time.Second),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIPort < 1 || c.APIPort > 65535 {
		return fmt.Errorf("API_PORT must be between 1 and 65535, got %d", c.APIPort)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("CRAWLER_MAX_RETRIES must be at least 1, got %d", c.MaxRetries)
	}
	if c.Timeout < time.Second {
		return fmt.Errorf("CRAWLER_TIMEOUT must be at least 1 second, got %s", c.Timeout)
	}
	if c.DelayMin < 0 {
		return fmt.Errorf("CRAWLER_DELAY_MIN must not be negative, got %s", c.DelayMin)
	}
	if c.DelayMax < c.DelayMin {
		return fmt.Errorf("CRAWLER_DELAY_MAX (%s) must not be less than CRAWLER_DELAY_MIN (%s)", c.DelayMax, c.DelayMin)
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// envSeconds reads a float number of seconds, matching the original
// deployment's CRAWLER_DELAY_* convention.
func envSeconds(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return time.Duration(f * float64(time.Second))
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	switch v {
	case "true", "1", "yes", "on", "True", "TRUE":
		return true
	}
	return false
}
