package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitGuard_NoopWhenQuotaSufficient(t *testing.T) {
	guard := newRateLimitGuard(func(ctx context.Context) (int, time.Time, error) {
		return 4900, time.Now().Add(30 * time.Minute), nil
	}, newTestLogger())
	slept := false
	guard.sleep = func(time.Duration) { slept = true }

	guard.ensureCapacity(context.Background())
	assert.False(t, slept)
}

func TestRateLimitGuard_WaitsForResetWhenQuotaLow(t *testing.T) {
	reset := time.Now().Add(10 * time.Minute)
	guard := newRateLimitGuard(func(ctx context.Context) (int, time.Time, error) {
		return 42, reset, nil
	}, newTestLogger())

	var waited time.Duration
	guard.sleep = func(d time.Duration) { waited = d }

	guard.ensureCapacity(context.Background())
	assert.Greater(t, waited, 10*time.Minute, "wait must cover the reset plus the safety margin")
	assert.LessOrEqual(t, waited, 10*time.Minute+guard.margin)
}

func TestRateLimitGuard_ProceedsWhenQuotaQueryFails(t *testing.T) {
	guard := newRateLimitGuard(func(ctx context.Context) (int, time.Time, error) {
		return 0, time.Time{}, errors.New("rate limit endpoint down")
	}, newTestLogger())
	slept := false
	guard.sleep = func(time.Duration) { slept = true }

	guard.ensureCapacity(context.Background())
	assert.False(t, slept)
}
