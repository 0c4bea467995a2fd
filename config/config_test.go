package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 2000, cfg.Server.MaxMessageLength)
	assert.False(t, cfg.OpenAI.Enabled)
	assert.Equal(t, 5, cfg.Breaker.Threshold)
	assert.Equal(t, time.Minute, cfg.Breaker.Window)
	assert.Equal(t, time.Minute, cfg.Breaker.Cooldown)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 5*time.Second, cfg.Adapter.Timeout)
	assert.Equal(t, "chatrelay:openai_cb", cfg.Redis.KeyPrefix)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("USE_OPENAI", "true")
	t.Setenv("OPENAI_CB_THRESHOLD", "3")
	t.Setenv("OPENAI_CB_WINDOW_MS", "15000")
	t.Setenv("ADAPTER_TIMEOUT_MS", "2500")
	t.Setenv("BOT_RESPONSE_CACHE_TTL_MS", "1000")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")

	cfg := Load()

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.True(t, cfg.OpenAI.Enabled)
	assert.Equal(t, 3, cfg.Breaker.Threshold)
	assert.Equal(t, 15*time.Second, cfg.Breaker.Window)
	assert.Equal(t, 2500*time.Millisecond, cfg.Adapter.Timeout)
	assert.Equal(t, time.Second, cfg.Cache.TTL)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("OPENAI_CB_WINDOW_MS", "-5")
	t.Setenv("USE_OPENAI", "maybe")

	cfg := Load()

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.Breaker.Window)
	assert.False(t, cfg.OpenAI.Enabled)
}
