package gatewaysvc

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Disabled_AlwaysAllows(t *testing.T) {
	rl := NewRateLimiter(nil, false, 100, 60, zerolog.Nop())

	allowed, remaining, resetSeconds := rl.Allow(context.Background(), "client-1")

	assert.True(t, allowed)
	assert.Equal(t, int64(100), remaining)
	assert.Equal(t, int64(0), resetSeconds)
}
