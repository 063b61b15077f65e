// Package redisstore implements a featureflags.FlagStore on Redis.
//
// Each flag is a hash at <prefix><key> with the fields "enabled" and,
// optionally, "updated_at":
//
//	HSET featureflag:delay_simulation enabled true updated_at 2024-05-01T10:00:00Z
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/itlightning/dateparse"
	"github.com/redis/go-redis/v9"

	featureflags "github.com/easytrade/featureflags-go"
)

const (
	DefaultKeyPrefix = "featureflag:"

	fieldEnabled   = "enabled"
	fieldUpdatedAt = "updated_at"
)

// Store reads flag records from Redis hashes.
type Store struct {
	client redis.UniversalClient
	prefix string
	log    *slog.Logger
}

var _ featureflags.FlagStore = (*Store)(nil)

type Option func(s *Store)

func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// New creates a Store on an existing client. Timeouts are those of the client.
func New(client redis.UniversalClient, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: DefaultKeyPrefix,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(slog.String("worker", "redis-flag-store"))
	return s
}

// GetFlag reads the hash of key.
func (s *Store) GetFlag(ctx context.Context, key string) (featureflags.FlagRecord, error) {
	fields, err := s.client.HGetAll(ctx, s.prefix+key).Result()
	if err != nil {
		if isWrongType(err) {
			return featureflags.FlagRecord{}, featureflags.NewStoreError(featureflags.ErrorKindRecordMalformed, key, err)
		}
		s.log.Debug("redis lookup failed", slog.String("flag", key), slog.Any("error", err))
		return featureflags.FlagRecord{}, featureflags.NewStoreError(featureflags.ErrorKindStoreUnavailable, key, err)
	}
	if len(fields) == 0 {
		return featureflags.FlagRecord{}, featureflags.NewStoreError(featureflags.ErrorKindRecordMissing, key, nil)
	}
	return parseRecord(key, fields)
}

// SetFlag writes the enabled state of key.
func (s *Store) SetFlag(ctx context.Context, key string, enabled bool) error {
	return s.client.HSet(ctx, s.prefix+key,
		fieldEnabled, strconv.FormatBool(enabled),
		fieldUpdatedAt, time.Now().UTC().Format(time.RFC3339Nano),
	).Err()
}

// Seed writes every flag of c that is not stored yet. Existing records are left alone.
func (s *Store) Seed(ctx context.Context, c *featureflags.Catalog) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, f := range c.Flags() {
			pipe.HSetNX(ctx, s.prefix+f.Key, fieldEnabled, strconv.FormatBool(f.Enabled))
			pipe.HSetNX(ctx, s.prefix+f.Key, fieldUpdatedAt, now)
		}
		return nil
	})
	return err
}

func parseRecord(key string, fields map[string]string) (featureflags.FlagRecord, error) {
	raw, ok := fields[fieldEnabled]
	if !ok {
		return featureflags.FlagRecord{}, featureflags.NewStoreError(featureflags.ErrorKindRecordMalformed, key, errors.New(`missing "enabled"`))
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return featureflags.FlagRecord{}, featureflags.NewStoreError(featureflags.ErrorKindRecordMalformed, key, err)
	}

	rec := featureflags.FlagRecord{Key: key, Enabled: enabled}
	if v := fields[fieldUpdatedAt]; v != "" {
		t, err := dateparse.ParseAny(v)
		if err != nil {
			return featureflags.FlagRecord{}, featureflags.NewStoreError(featureflags.ErrorKindRecordMalformed, key, fmt.Errorf("updated_at: %w", err))
		}
		rec.UpdatedAt = t
	}
	return rec, nil
}

func isWrongType(err error) bool {
	var rerr redis.Error
	return errors.As(err, &rerr) && strings.HasPrefix(rerr.Error(), "WRONGTYPE")
}
