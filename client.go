package featureflags

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// Client reads flag state from the easytrade feature flag service.
// It implements FlagStore.
type Client struct {
	config config
	client *resty.Client
	log    *slog.Logger
}

var _ FlagStore = (*Client)(nil)

// NewClient creates a flag service client.
func NewClient(options ...Option) *Client {
	c := &Client{
		config: defaultConfig(),
		log:    slog.Default(),
	}
	for _, opt := range options {
		opt(c)
	}
	c.log = c.log.With(slog.String("worker", "flag-client"))

	if c.client == nil {
		c.client = resty.New().SetTimeout(c.config.timeout)
	} else if c.client.GetClient().Timeout == 0 {
		c.client.SetTimeout(c.config.timeout)
	}

	if c.config.retries > 0 {
		c.client.SetRetryCount(c.config.retries)
		c.client.SetRetryWaitTime(c.config.retryWait)
	}
	if c.config.proxyURL != "" {
		c.client.SetProxy(c.config.proxyURL)
	}

	c.client.SetHeaders(map[string]string{
		"Accept":     "application/json",
		"User-Agent": getUserAgent(),
	})
	c.client.SetHeaders(c.config.headers)

	c.client.SetLogger(restySlogLogger{logger: c.log})
	c.client.OnBeforeRequest(newRestyLogRequestMiddleware(c.log))
	c.client.OnAfterResponse(newRestyLogResponseMiddleware(c.log))
	c.client.OnError(newRestyErrorHook(c.log))

	return c
}

// GetFlag fetches the live record of key.
func (c *Client) GetFlag(ctx context.Context, key string) (FlagRecord, error) {
	resp, err := c.client.NewRequest().
		SetContext(ctx).
		SetPathParam("key", key).
		Get(c.config.baseURL + FlagsEndpoint + "{key}")
	if err != nil {
		return FlagRecord{}, unavailableError(key, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return FlagRecord{}, missingError(key)
	case resp.IsError():
		return FlagRecord{}, unavailableError(key, fmt.Errorf("unexpected response %s", resp.Status()))
	}
	return decodeRecord(key, resp.Body())
}
