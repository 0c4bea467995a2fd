package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyCache_HitWithinTTL(t *testing.T) {
	c := New(16, time.Minute)
	c.Set("compute:hello", "Hi there!")

	value, ok := c.Get("compute:hello")
	require.True(t, ok)
	assert.Equal(t, "Hi there!", value)
}

func TestReplyCache_MissAfterExpiry(t *testing.T) {
	c := New(16, 20*time.Millisecond)
	c.Set("compute:hello", "Hi there!")

	time.Sleep(50 * time.Millisecond)

	_, ok := c.Get("compute:hello")
	assert.False(t, ok)
}

func TestReplyCache_ExactMatchKeys(t *testing.T) {
	c := New(16, time.Minute)
	c.Set("compute:Hello", "a")

	_, ok := c.Get("compute:hello")
	assert.False(t, ok, "keys are exact-match, not normalized")
}

func TestReplyCache_OverwriteUnconditionally(t *testing.T) {
	c := New(16, time.Minute)
	c.Set("compute:msg", "first")
	c.Set("compute:msg", "second")

	value, ok := c.Get("compute:msg")
	require.True(t, ok)
	assert.Equal(t, "second", value)
}

func TestReplyCache_CapacityBound(t *testing.T) {
	c := New(2, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("c", "3")

	_, okA := c.Get("a")
	_, okC := c.Get("c")
	assert.False(t, okA, "oldest entry evicted at capacity")
	assert.True(t, okC)
}
