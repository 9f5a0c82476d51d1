package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/naito-dev/orgstats/internal/config"
)

// quotaFunc reports the current request quota: calls remaining in the window
// and the time the window resets.
type quotaFunc func(ctx context.Context) (remaining int, reset time.Time, err error)

// rateLimitGuard proactively avoids rate-limit exhaustion. Before a call
// batch it checks the remaining quota and, when it drops below the threshold,
// blocks until the window resets. The mutex makes it a single shared gate
// when repositories are collected in parallel.
type rateLimitGuard struct {
	mu        sync.Mutex
	quota     quotaFunc
	threshold int
	margin    time.Duration
	sleep     sleepFunc
	logger    *logrus.Logger
}

func newRateLimitGuard(quota quotaFunc, logger *logrus.Logger) *rateLimitGuard {
	return &rateLimitGuard{
		quota:     quota,
		threshold: config.RateLimitThreshold,
		margin:    config.RateLimitMargin,
		sleep:     time.Sleep,
		logger:    logger,
	}
}

// ensureCapacity returns once enough quota remains for the next call batch;
// completion is the only signal it gives. A failure of the quota query
// itself is logged and ignored: the request is then attempted anyway and a
// rejection is handled by the retry wrapper.
func (g *rateLimitGuard) ensureCapacity(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	remaining, reset, err := g.quota(ctx)
	if err != nil {
		g.logger.Warnf("rate limit status unavailable, proceeding without guard: %v", err)
		return
	}
	if remaining >= g.threshold {
		return
	}

	wait := time.Until(reset) + g.margin
	if wait > 0 {
		g.logger.Infof("rate limit low (%d remaining), waiting %s for the window to reset", remaining, wait.Round(time.Second))
		g.sleep(wait)
	}
}
