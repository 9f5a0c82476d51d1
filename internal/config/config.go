// Package config loads the application configuration from the environment
// and holds the fixed pipeline constants.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Fixed pipeline constants. The page size is the provider's maximum; the
// rate-limit threshold and the retry schedule follow the provider's
// published guidance for bulk API consumers.
const (
	// PageSize is the number of items requested per page.
	PageSize = 100

	// RateLimitThreshold is the remaining-quota floor below which the
	// guard waits for the limit window to reset.
	RateLimitThreshold = 100

	// RateLimitMargin is added to every reset wait so a clock skew between
	// us and the provider cannot cause a request inside the old window.
	RateLimitMargin = 5 * time.Second

	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries = 3

	// RequestTimeout bounds every individual HTTP call.
	RequestTimeout = 30 * time.Second
)

// Config holds the runtime configuration of a collection run.
type Config struct {
	// GitHubToken is the pre-obtained bearer credential.
	GitHubToken string

	// Workers is the number of repositories processed in parallel.
	// 1 means fully sequential collection.
	Workers int
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		GitHubToken: os.Getenv("GITHUB_TOKEN"),
		Workers:     1,
	}
}

// Validate reports whether the configuration is usable.
func (c *Config) Validate() error {
	if c.GitHubToken == "" {
		return &Error{Field: "token", Message: "a GitHub token is required (flag --token or GITHUB_TOKEN)"}
	}
	if c.Workers < 1 {
		return &Error{Field: "workers", Message: "must be at least 1"}
	}
	return nil
}

// Error describes an invalid configuration field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Field + ": " + e.Message
}
