package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/sirupsen/logrus"

	"github.com/naito-dev/orgstats/internal/config"
)

// sleepFunc suspends the calling goroutine for a duration. It is injected so
// tests can observe backoff schedules without waiting.
type sleepFunc func(time.Duration)

// isAPIError reports whether err came from the provider or the transport and
// is therefore worth retrying. Programming errors and context cancellation
// propagate immediately.
func isAPIError(err error) bool {
	var (
		errResp  *github.ErrorResponse
		rateErr  *github.RateLimitError
		abuseErr *github.AbuseRateLimitError
		urlErr   *url.Error
	)
	switch {
	case errors.As(err, &rateErr), errors.As(err, &abuseErr), errors.As(err, &errResp):
		return true
	case errors.As(err, &urlErr):
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	return false
}

// withRetry invokes op, retrying recoverable API failures with exponential
// backoff (2s, 4s, 8s) up to config.MaxRetries additional attempts. The last
// error is propagated once the attempts are exhausted.
func withRetry[T any](logger *logrus.Logger, sleep sleepFunc, op func() (T, error)) (T, error) {
	result, err := op()
	if err == nil {
		return result, nil
	}

	var zero T
	for attempt := 1; attempt <= config.MaxRetries; attempt++ {
		if !isAPIError(err) {
			return zero, err
		}
		delay := time.Duration(1<<attempt) * time.Second
		logger.Warnf("API call failed (attempt %d/%d), retrying in %s: %v", attempt, config.MaxRetries+1, delay, err)
		sleep(delay)

		if result, err = op(); err == nil {
			return result, nil
		}
	}
	if !isAPIError(err) {
		// The final attempt failed for a reason retrying never covered.
		return zero, err
	}
	return zero, fmt.Errorf("retries exhausted after %d attempts: %w", config.MaxRetries+1, err)
}
