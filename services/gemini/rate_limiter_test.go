package gemini

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNilRateLimiterNeverBlocks(t *testing.T) {
	var r *RateLimiter
	assert.Nil(t, NewRateLimiter(0, 3))
	assert.True(t, r.TryAcquire())
	assert.NoError(t, r.Wait(context.Background()))
}

func TestRateLimiterBurstAndRefill(t *testing.T) {
	r := NewRateLimiter(60, 2)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }
	r.lastRefillTime = clock

	assert.True(t, r.TryAcquire())
	assert.True(t, r.TryAcquire())
	assert.False(t, r.TryAcquire())

	clock = clock.Add(time.Second)
	assert.True(t, r.TryAcquire())
	assert.False(t, r.TryAcquire())

	clock = clock.Add(time.Hour)
	assert.True(t, r.TryAcquire())
	assert.True(t, r.TryAcquire())
	assert.False(t, r.TryAcquire(), "bucket is capped at burst")
}

func TestRateLimiterWaitHonoursContext(t *testing.T) {
	r := NewRateLimiter(1, 1)
	assert.True(t, r.TryAcquire())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, r.Wait(ctx), context.DeadlineExceeded)
}
