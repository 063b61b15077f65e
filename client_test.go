package featureflags_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	featureflags "github.com/easytrade/featureflags-go"
	"github.com/easytrade/featureflags-go/fixtures"
)

func TestClientGetFlag(t *testing.T) {
	// Given
	server := httptest.NewServer(http.HandlerFunc(fixtures.FlagServiceHandler))
	defer server.Close()
	client := featureflags.NewClient(featureflags.WithBaseURL(server.URL))

	// When
	rec, err := client.GetFlag(context.Background(), featureflags.FlagDelaySimulation)

	// Then
	require.NoError(t, err)
	assert.Equal(t, featureflags.FlagDelaySimulation, rec.Key)
	assert.True(t, rec.Enabled)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), rec.UpdatedAt.UTC())
}

func TestClientGetFlagKeyField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(fixtures.FlagServiceHandler))
	defer server.Close()
	client := featureflags.NewClient(featureflags.WithBaseURL(server.URL + "/"))

	rec, err := client.GetFlag(context.Background(), featureflags.FlagTimeoutError)

	require.NoError(t, err)
	assert.False(t, rec.Enabled)
	assert.False(t, rec.UpdatedAt.IsZero())
}

func TestClientGetFlagErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		key     string
		kind    featureflags.ErrorKind
		target  error
	}{
		{
			name:    "not found",
			handler: fixtures.FlagServiceHandler,
			key:     "unknown_flag",
			kind:    featureflags.ErrorKindRecordMissing,
			target:  featureflags.ErrRecordMissing,
		},
		{
			name:    "missing enabled",
			handler: fixtures.FlagServiceHandler,
			key:     featureflags.FlagLargePayload,
			kind:    featureflags.ErrorKindRecordMalformed,
			target:  featureflags.ErrRecordMalformed,
		},
		{
			name: "not json",
			handler: func(rw http.ResponseWriter, _ *http.Request) {
				_, _ = rw.Write([]byte("<html>oops</html>"))
			},
			key:    featureflags.FlagDelaySimulation,
			kind:   featureflags.ErrorKindRecordMalformed,
			target: featureflags.ErrRecordMalformed,
		},
		{
			name: "record for another flag",
			handler: func(rw http.ResponseWriter, _ *http.Request) {
				_, _ = rw.Write([]byte(fixtures.DelaySimulationJson))
			},
			key:    featureflags.FlagTimeoutError,
			kind:   featureflags.ErrorKindRecordMalformed,
			target: featureflags.ErrRecordMalformed,
		},
		{
			name: "bad updated_at",
			handler: func(rw http.ResponseWriter, _ *http.Request) {
				_, _ = rw.Write([]byte(`{"id": "delay_simulation", "enabled": true, "updated_at": "yesterday-ish"}`))
			},
			key:    featureflags.FlagDelaySimulation,
			kind:   featureflags.ErrorKindRecordMalformed,
			target: featureflags.ErrRecordMalformed,
		},
		{
			name: "server error",
			handler: func(rw http.ResponseWriter, _ *http.Request) {
				rw.WriteHeader(http.StatusInternalServerError)
			},
			key:    featureflags.FlagDelaySimulation,
			kind:   featureflags.ErrorKindStoreUnavailable,
			target: featureflags.ErrStoreUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			server := httptest.NewServer(tt.handler)
			defer server.Close()
			client := featureflags.NewClient(featureflags.WithBaseURL(server.URL))

			// When
			_, err := client.GetFlag(context.Background(), tt.key)

			// Then
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.Equal(t, tt.kind, featureflags.KindOf(err))
		})
	}
}

func TestClientTimeout(t *testing.T) {
	// Given
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)
	client := featureflags.NewClient(
		featureflags.WithBaseURL(server.URL),
		featureflags.WithRequestTimeout(20*time.Millisecond),
	)

	// When
	start := time.Now()
	_, err := client.GetFlag(context.Background(), featureflags.FlagDelaySimulation)

	// Then
	assert.ErrorIs(t, err, featureflags.ErrStoreUnavailable)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestClientUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(fixtures.FlagServiceHandler))
	url := server.URL
	server.Close()
	client := featureflags.NewClient(featureflags.WithBaseURL(url))

	_, err := client.GetFlag(context.Background(), featureflags.FlagDelaySimulation)

	assert.Equal(t, featureflags.ErrorKindStoreUnavailable, featureflags.KindOf(err))
}

func TestClientSendsHeaders(t *testing.T) {
	// Given
	var userAgent, requestID, custom, path atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		userAgent.Store(r.Header.Get("User-Agent"))
		requestID.Store(r.Header.Get(featureflags.RequestIDHeader))
		custom.Store(r.Header.Get("X-Service"))
		path.Store(r.URL.Path)
		fixtures.FlagServiceHandler(rw, r)
	}))
	defer server.Close()
	client := featureflags.NewClient(
		featureflags.WithBaseURL(server.URL),
		featureflags.WithCustomHeaders(map[string]string{"X-Service": "broker-service"}),
	)

	// When
	_, err := client.GetFlag(context.Background(), featureflags.FlagDelaySimulation)

	// Then
	require.NoError(t, err)
	assert.Equal(t, featureflags.GetUserAgentForTest(), userAgent.Load())
	assert.True(t, strings.HasPrefix(userAgent.Load().(string), "easytrade-featureflags-go/"))
	_, parseErr := uuid.Parse(requestID.Load().(string))
	assert.NoError(t, parseErr)
	assert.Equal(t, "broker-service", custom.Load())
	assert.Equal(t, "/v1/flags/delay_simulation", path.Load())
}

func TestClientRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			rw.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fixtures.FlagServiceHandler(rw, r)
	}))
	defer server.Close()
	restyClient := resty.New().
		SetTimeout(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})
	client := featureflags.NewClient(
		featureflags.WithBaseURL(server.URL),
		featureflags.WithRetries(2, time.Millisecond),
		featureflags.WithRestyClient(restyClient),
	)

	rec, err := client.GetFlag(context.Background(), featureflags.FlagDelaySimulation)

	require.NoError(t, err)
	assert.True(t, rec.Enabled)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientKeepsCustomRestyTimeout(t *testing.T) {
	// Given
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		fixtures.FlagServiceHandler(rw, r)
	}))
	defer server.Close()
	restyClient := resty.New().SetTimeout(10 * time.Millisecond)

	// When - the option timeout is longer than the resty one
	client := featureflags.NewClient(
		featureflags.WithBaseURL(server.URL),
		featureflags.WithRequestTimeout(5*time.Second),
		featureflags.WithRestyClient(restyClient),
	)
	_, err := client.GetFlag(context.Background(), featureflags.FlagDelaySimulation)

	// Then
	assert.ErrorIs(t, err, featureflags.ErrStoreUnavailable)
}

func TestProviderOverClient(t *testing.T) {
	// Given
	server := httptest.NewServer(http.HandlerFunc(fixtures.FlagServiceHandler))
	defer server.Close()
	p := featureflags.NewProvider(featureflags.NewClient(featureflags.WithBaseURL(server.URL)))
	ctx := context.Background()
	ec := featureflags.EvaluationContext{}

	// When/Then
	assert.True(t, p.BooleanEvaluation(ctx, featureflags.FlagDelaySimulation, false, ec).Value)
	missing := p.BooleanEvaluation(ctx, featureflags.FlagHighCPUUsage, true, ec)
	assert.True(t, missing.Value)
	assert.Equal(t, featureflags.ErrorKindRecordMissing, missing.ErrorCode)
}
