package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easytrade/featureflags-go/redisstore"
)

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := redisstore.Connect(context.Background(), redisstore.Config{
		ConnectionURL:  "redis://" + mr.Addr() + "/0",
		RetryAttempts:  3,
		ConnectTimeout: time.Second,
	})

	require.NoError(t, err)
	defer client.Close()
	assert.NoError(t, redisstore.Healthcheck(client)(context.Background()))
}

func TestConnectInvalidURL(t *testing.T) {
	_, err := redisstore.Connect(context.Background(), redisstore.Config{ConnectionURL: "http://nope"})

	assert.ErrorIs(t, err, redisstore.ErrInvalidConnectionURL)
}

func TestConnectGivesUp(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := redisstore.Connect(context.Background(), redisstore.Config{
		ConnectionURL:    "redis://" + addr + "/0",
		RetryAttempts:    2,
		RetryInterval:    10 * time.Millisecond,
		MaxRetryInterval: 20 * time.Millisecond,
		ConnectTimeout:   5 * time.Second,
	})

	assert.ErrorIs(t, err, redisstore.ErrNotReady)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := redisstore.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, redisstore.DefaultKeyPrefix, cfg.KeyPrefix)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, 30*time.Second, cfg.ConnectTimeout)
}
