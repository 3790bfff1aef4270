// Package config reads all application configuration from the environment.
// Only this package calls os.Getenv.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the trader battle.
type Config struct {
	Env  string // development, staging, production
	Port string // results API port

	// Storage
	DataDir    string // flat dated JSON files live here
	ReportsDir string // rendered markdown reports

	// Game
	Agents []string // agent ids competing each week

	// External collaborators
	LLM    LLMConfig
	Prices PricesConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// LLMConfig holds the vendor API settings for pick generation.
type LLMConfig struct {
	Timeout time.Duration

	OpenAIKey      string
	OpenAIModel    string
	OpenAIURL      string
	AnthropicKey   string
	AnthropicModel string
	GeminiKey      string
	GeminiModel    string
	GrokKey        string
	GrokModel      string
	GrokURL        string
}

// PricesConfig holds price-provider settings.
type PricesConfig struct {
	// RequestsPerSec throttles calls to the Yahoo Finance chart API.
	RequestsPerSec float64
	Burst          int
	Timeout        time.Duration
}

// Load reads configuration from the environment, loading .env first when one
// is found near the working directory or the executable.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8089"),

		DataDir:    getEnv("DATA_DIR", "data"),
		ReportsDir: getEnv("REPORTS_DIR", "reports"),

		Agents: getEnvAsSlice("BATTLE_AGENTS", []string{"gpt", "gemini", "claude", "grok"}),

		LLM: LLMConfig{
			Timeout:        getEnvAsDuration("LLM_TIMEOUT", "90s"),
			OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o"),
			OpenAIURL:      getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			AnthropicKey:   getEnv("ANTHROPIC_API_KEY", ""),
			AnthropicModel: getEnv("CLAUDE_MODEL", "claude-3-5-sonnet-20241022"),
			GeminiKey:      getEnv("GEMINI_API_KEY", ""),
			GeminiModel:    getEnv("GEMINI_MODEL", "gemini-1.5-pro"),
			GrokKey:        getEnv("GROK_API_KEY", ""),
			GrokModel:      getEnv("GROK_MODEL", "grok-2-latest"),
			GrokURL:        getEnv("GROK_BASE_URL", "https://api.x.ai/v1"),
		},

		Prices: PricesConfig{
			RequestsPerSec: getEnvAsFloat("PRICE_RATE_LIMIT", 2.0),
			Burst:          getEnvAsInt("PRICE_RATE_BURST", 1),
			Timeout:        getEnvAsDuration("PRICE_TIMEOUT", "30s"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR must not be empty")
	}
	if len(c.Agents) == 0 {
		return fmt.Errorf("BATTLE_AGENTS must name at least one agent")
	}
	if c.Prices.RequestsPerSec <= 0 {
		return fmt.Errorf("PRICE_RATE_LIMIT must be positive")
	}
	return nil
}

// loadEnvFile tries .env in a few likely locations; silently gives up.
func loadEnvFile() {
	paths := []string{".env"}
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
