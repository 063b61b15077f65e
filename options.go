package featureflags

import (
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type Option func(c *Client)

// Make sure the Option functions satisfy the Option type.
var _ = []Option{
	WithBaseURL(""),
	WithRequestTimeout(0),
	WithRetries(0, 0),
	WithCustomHeaders(nil),
	WithLogger(nil),
	WithProxy(""),
	WithRestyClient(nil),
}

// WithBaseURL sets the flag service URL. A trailing slash is added when missing.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" && !strings.HasSuffix(url, "/") {
			url += "/"
		}
		c.config.baseURL = url
	}
}

// WithRequestTimeout bounds a single flag lookup. Timeouts surface as
// ErrStoreUnavailable.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.config.timeout = timeout
	}
}

// WithRetries makes the HTTP layer retry failed requests. The default is no retries.
func WithRetries(count int, waitTime time.Duration) Option {
	return func(c *Client) {
		c.config.retries = count
		c.config.retryWait = waitTime
	}
}

func WithCustomHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.config.headers[k] = v
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.log = logger
		}
	}
}

func WithProxy(proxyURL string) Option {
	return func(c *Client) {
		c.config.proxyURL = proxyURL
	}
}

// WithRestyClient uses a preconfigured resty client. Its timeout is kept when set.
func WithRestyClient(restyClient *resty.Client) Option {
	return func(c *Client) {
		if restyClient != nil {
			c.client = restyClient
		}
	}
}
