package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig
	OpenAI      OpenAIConfig
	HuggingFace HuggingFaceConfig
	Claude      ClaudeConfig
	Breaker     BreakerConfig
	Cache       CacheConfig
	Redis       RedisConfig
	Adapter     AdapterConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port             int
	MaxMessageLength int
	RateLimitRPS     float64
	RateLimitBurst   int
}

// OpenAIConfig holds configuration for the primary (paid) provider
type OpenAIConfig struct {
	Enabled bool
	APIKey  string
	Model   string
}

// HuggingFaceConfig holds configuration for the free-tier provider
type HuggingFaceConfig struct {
	Enabled bool
	APIKey  string
	Model   string
}

// ClaudeConfig holds configuration for the default conversational provider
type ClaudeConfig struct {
	APIKey string
	Model  string
}

// BreakerConfig holds circuit-breaker thresholds for the primary provider
type BreakerConfig struct {
	Threshold int
	Window    time.Duration
	Cooldown  time.Duration
}

// CacheConfig holds configuration for the reply cache
type CacheConfig struct {
	TTL     time.Duration
	MaxSize int
}

// RedisConfig holds configuration for the shared breaker store
type RedisConfig struct {
	URL       string
	KeyPrefix string
}

// AdapterConfig holds settings shared by all provider adapters
type AdapterConfig struct {
	Timeout time.Duration
	Retries int
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:             3000,
			MaxMessageLength: 2000,
			RateLimitRPS:     10,
			RateLimitBurst:   20,
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-3.5-turbo",
		},
		HuggingFace: HuggingFaceConfig{
			Model: "facebook/blenderbot-400M-distill",
		},
		Claude: ClaudeConfig{
			Model: "claude-3-haiku-20240307",
		},
		Breaker: BreakerConfig{
			Threshold: 5,
			Window:    60 * time.Second,
			Cooldown:  60 * time.Second,
		},
		Cache: CacheConfig{
			TTL:     30 * time.Second,
			MaxSize: 1024,
		},
		Redis: RedisConfig{
			KeyPrefix: "chatrelay:openai_cb",
		},
		Adapter: AdapterConfig{
			Timeout: 5 * time.Second,
			Retries: 2,
		},
	}
}

// Load builds the configuration from the environment. A .env file in the
// working directory is merged in first when present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	cfg.Server.Port = envInt("PORT", cfg.Server.Port)
	cfg.Server.MaxMessageLength = envInt("MAX_MESSAGE_LENGTH", cfg.Server.MaxMessageLength)
	cfg.Server.RateLimitRPS = envFloat("RATE_LIMIT_RPS", cfg.Server.RateLimitRPS)
	cfg.Server.RateLimitBurst = envInt("RATE_LIMIT_BURST", cfg.Server.RateLimitBurst)

	cfg.OpenAI.Enabled = envBool("USE_OPENAI", false)
	cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAI.Model = envString("OPENAI_MODEL", cfg.OpenAI.Model)

	cfg.HuggingFace.Enabled = envBool("USE_HUGGINGFACE", false)
	cfg.HuggingFace.APIKey = os.Getenv("HUGGINGFACE_API_KEY")
	cfg.HuggingFace.Model = envString("HUGGINGFACE_MODEL", cfg.HuggingFace.Model)

	cfg.Claude.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.Claude.Model = envString("CLAUDE_MODEL", cfg.Claude.Model)

	cfg.Breaker.Threshold = envInt("OPENAI_CB_THRESHOLD", cfg.Breaker.Threshold)
	cfg.Breaker.Window = envMillis("OPENAI_CB_WINDOW_MS", cfg.Breaker.Window)
	cfg.Breaker.Cooldown = envMillis("OPENAI_CB_COOLDOWN_MS", cfg.Breaker.Cooldown)

	cfg.Cache.TTL = envMillis("BOT_RESPONSE_CACHE_TTL_MS", cfg.Cache.TTL)
	cfg.Cache.MaxSize = envInt("BOT_RESPONSE_CACHE_SIZE", cfg.Cache.MaxSize)

	cfg.Redis.URL = os.Getenv("REDIS_URL")
	cfg.Redis.KeyPrefix = envString("REDIS_CB_PREFIX", cfg.Redis.KeyPrefix)

	cfg.Adapter.Timeout = envMillis("ADAPTER_TIMEOUT_MS", cfg.Adapter.Timeout)
	cfg.Adapter.Retries = envInt("NLP_RETRIES", cfg.Adapter.Retries)

	return cfg
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

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envMillis(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms < 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
