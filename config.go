package featureflags

import (
	"time"
)

const (
	// Time to wait for the flag service before a lookup counts as failed.
	DefaultTimeout = 10 * time.Second

	// Default base URL of the easytrade feature flag service.
	DefaultBaseURL = "http://feature-flag-service:8080/"

	// FlagsEndpoint is appended to the base URL, followed by the flag key.
	FlagsEndpoint = "v1/flags/"

	RequestIDHeader = "X-Request-Id"
)

type config struct {
	baseURL   string
	timeout   time.Duration
	retries   int
	retryWait time.Duration
	proxyURL  string
	headers   map[string]string
}

func defaultConfig() config {
	return config{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		headers: map[string]string{},
	}
}
