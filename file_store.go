package featureflags

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileStore serves flag records loaded once from a JSON file. It lets a
// service run offline, without the flag service.
//
// The document is a list of records:
//
//	[{"id": "delay_simulation", "enabled": true, "updated_at": "2024-05-01T10:00:00Z"}]
type FileStore struct {
	records map[string]wireRecord
}

var _ FlagStore = (*FileStore)(nil)

// ReadFlagsFromFile reads a FileStore from a file path.
func ReadFlagsFromFile(name string) (*FileStore, error) {
	file, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var list []wireRecord
	if err := json.Unmarshal(file, &list); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	s := &FileStore{records: make(map[string]wireRecord, len(list))}
	for _, w := range list {
		if k := w.key(); k != "" {
			s.records[k] = w
		}
	}
	return s, nil
}

// GetFlag returns the record of key. Entries without a usable "enabled"
// value are reported as malformed on lookup.
func (s *FileStore) GetFlag(_ context.Context, key string) (FlagRecord, error) {
	w, ok := s.records[key]
	if !ok {
		return FlagRecord{}, missingError(key)
	}
	return w.toRecord(key)
}
