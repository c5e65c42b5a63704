package repository

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTokenRepository struct {
	sweeps int64
}

func (r *countingTokenRepository) Save(_ context.Context, _ int64, _ string, _ time.Time) error {
	return nil
}

func (r *countingTokenRepository) Consume(_ context.Context, _ string) (int64, error) {
	return 0, ErrTokenNotFound
}

func (r *countingTokenRepository) RevokeAllForUser(_ context.Context, _ int64) error {
	return nil
}

func (r *countingTokenRepository) DeleteExpired(_ context.Context) (int64, error) {
	atomic.AddInt64(&r.sweeps, 1)
	return 1, nil
}

func TestSweepExpiredTokensRunsUntilCancelled(t *testing.T) {
	repo := &countingTokenRepository{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		SweepExpiredTokens(ctx, repo, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&repo.sweeps) >= 2
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on context cancellation")
	}

	swept := atomic.LoadInt64(&repo.sweeps)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, swept, atomic.LoadInt64(&repo.sweeps))
}
