package redisstore

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the Redis connection settings of the flag store.
type Config struct {
	ConnectionURL    string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"` // redis://:password@localhost:6379/0
	KeyPrefix        string        `env:"REDIS_FLAG_KEY_PREFIX" envDefault:"featureflag:"`
	RetryAttempts    int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval    time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"200ms"`
	MaxRetryInterval time.Duration `env:"REDIS_MAX_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout   time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
