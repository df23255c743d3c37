package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowConsumesBucket(t *testing.T) {
	rl := NewRateLimiter(1, 3)

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"), "bucket exhausted")
}

func TestAllowRefills(t *testing.T) {
	rl := NewRateLimiter(100, 1)

	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, rl.Allow("a"), "tokens refill over time")
}

func TestClientsAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))
}
