package meli_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjtech-br/catalog-proxy/internal/meli"
)

func TestRateLimiter_DailyLimit(t *testing.T) {
	t.Parallel()

	limiter := meli.NewRateLimiter(1000, 1000, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Wait(ctx))
	}

	err := limiter.Wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, meli.ErrDailyLimitReached)

	assert.Equal(t, int64(3), limiter.Used())
	assert.Equal(t, int64(0), limiter.Remaining())
}

func TestRateLimiter_WindowReset(t *testing.T) {
	t.Parallel()

	now := time.Now()
	currentTime := now
	var mu sync.Mutex

	limiter := meli.NewRateLimiter(1000, 1000, 2,
		meli.WithRateLimiterNowFunc(func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return currentTime
		}),
	)
	ctx := context.Background()

	require.NoError(t, limiter.Wait(ctx))
	require.NoError(t, limiter.Wait(ctx))
	require.Error(t, limiter.Wait(ctx))

	// Roll past the 24-hour window; the quota resets.
	mu.Lock()
	currentTime = now.Add(25 * time.Hour)
	mu.Unlock()

	require.NoError(t, limiter.Wait(ctx))
	assert.Equal(t, int64(1), limiter.Used())
	assert.Equal(t, int64(1), limiter.Remaining())
}

func TestRateLimiter_ResetAt(t *testing.T) {
	t.Parallel()

	now := time.Now()
	limiter := meli.NewRateLimiter(1000, 1000, 100,
		meli.WithRateLimiterNowFunc(func() time.Time { return now }),
	)

	assert.Equal(t, now.Add(24*time.Hour), limiter.ResetAt())
}

func TestRateLimiter_ContextCanceled(t *testing.T) {
	t.Parallel()

	// Rate of 1/sec with burst 1: the second Wait must block, so a
	// canceled context surfaces.
	limiter := meli.NewRateLimiter(1, 1, 100)

	require.NoError(t, limiter.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := limiter.Wait(ctx)
	require.Error(t, err)
}
