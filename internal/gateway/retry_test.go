package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// newTestLogger returns a logger that swallows all output.
func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// apiError builds a go-github API error with the given status code.
func apiError(status int) error {
	return &github.ErrorResponse{
		Response: &http.Response{
			StatusCode: status,
			Request: &http.Request{
				Method: http.MethodGet,
				URL:    &url.URL{Scheme: "https", Host: "api.github.com", Path: "/"},
			},
		},
		Message: "simulated failure",
	}
}

func TestWithRetry_ExhaustsAttemptsWithBackoff(t *testing.T) {
	var delays []time.Duration
	sleep := func(d time.Duration) { delays = append(delays, d) }

	calls := 0
	_, err := withRetry(newTestLogger(), sleep, func() (int, error) {
		calls++
		return 0, apiError(http.StatusBadGateway)
	})

	assert.Error(t, err)
	assert.Equal(t, 4, calls, "one initial attempt plus three retries")
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}, delays)
	assert.Contains(t, err.Error(), "retries exhausted")
}

func TestWithRetry_RecoversAfterTransientFailures(t *testing.T) {
	var delays []time.Duration
	sleep := func(d time.Duration) { delays = append(delays, d) }

	calls := 0
	result, err := withRetry(newTestLogger(), sleep, func() (string, error) {
		calls++
		if calls < 3 {
			return "", apiError(http.StatusServiceUnavailable)
		}
		return "ok", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, delays)
}

func TestWithRetry_NonAPIErrorPropagatesImmediately(t *testing.T) {
	var delays []time.Duration
	sleep := func(d time.Duration) { delays = append(delays, d) }

	calls := 0
	bug := errors.New("programming error")
	_, err := withRetry(newTestLogger(), sleep, func() (int, error) {
		calls++
		return 0, bug
	})

	assert.ErrorIs(t, err, bug)
	assert.Equal(t, 1, calls, "non-API errors must not be retried")
	assert.Empty(t, delays)
}

func TestWithRetry_NonAPIErrorOnFinalAttemptIsNotWrapped(t *testing.T) {
	var delays []time.Duration
	sleep := func(d time.Duration) { delays = append(delays, d) }

	calls := 0
	bug := errors.New("programming error")
	_, err := withRetry(newTestLogger(), sleep, func() (int, error) {
		calls++
		if calls <= 3 {
			return 0, apiError(http.StatusBadGateway)
		}
		return 0, bug
	})

	assert.ErrorIs(t, err, bug)
	assert.NotContains(t, err.Error(), "retries exhausted")
	assert.Equal(t, 4, calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}, delays)
}

func TestIsAPIError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{"error response", apiError(http.StatusForbidden), true},
		{"rate limit error", &github.RateLimitError{}, true},
		{"abuse rate limit error", &github.AbuseRateLimitError{}, true},
		{"transport error", &url.Error{Op: "Get", URL: "https://api.github.com", Err: errors.New("connection reset")}, true},
		{"cancelled context in transport error", &url.Error{Op: "Get", URL: "https://api.github.com", Err: context.Canceled}, false},
		{"plain error", errors.New("nope"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, isAPIError(tc.err))
		})
	}
}
