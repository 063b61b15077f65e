package featureflags

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/itlightning/dateparse"
)

// FlagStore fetches the live state of a flag. Implementations return a
// *StoreError describing why a lookup failed.
type FlagStore interface {
	GetFlag(ctx context.Context, key string) (FlagRecord, error)
}

// FlagRecord is the live state of a flag as served by a store.
type FlagRecord struct {
	Key       string
	Enabled   bool
	UpdatedAt time.Time
}

// wireRecord is the JSON shape served by the flag service. Older payloads
// carry the key as "id".
type wireRecord struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Enabled     *bool  `json:"enabled"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

func (w wireRecord) key() string {
	if w.Key != "" {
		return w.Key
	}
	return w.ID
}

// toRecord validates a decoded wire record for the requested key.
func (w wireRecord) toRecord(key string) (FlagRecord, error) {
	if w.Enabled == nil {
		return FlagRecord{}, malformedError(key, errors.New(`missing "enabled"`))
	}
	if k := w.key(); k != "" && k != key {
		return FlagRecord{}, malformedError(key, fmt.Errorf("record is for flag %q", k))
	}
	rec := FlagRecord{Key: key, Enabled: *w.Enabled}
	if w.UpdatedAt != "" {
		t, err := dateparse.ParseAny(w.UpdatedAt)
		if err != nil {
			return FlagRecord{}, malformedError(key, fmt.Errorf("updated_at: %w", err))
		}
		rec.UpdatedAt = t
	}
	return rec, nil
}

func decodeRecord(key string, body []byte) (FlagRecord, error) {
	var w wireRecord
	if err := json.Unmarshal(body, &w); err != nil {
		return FlagRecord{}, malformedError(key, err)
	}
	return w.toRecord(key)
}
