package achievements

import (
	"encoding/json"
	"fmt"
	"time"
)

// Store is the durable key-value store holding the unlocked set.
// Get returns (nil, nil) when the key is absent.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// PersistenceWarning reports a non-fatal durable-store failure.
type PersistenceWarning struct {
	Op  string // "load", "save" or "evaluate"
	Key string
	Err error
}

func (w *PersistenceWarning) Error() string {
	return fmt.Sprintf("achievements: %s %q: %v", w.Op, w.Key, w.Err)
}

func (w *PersistenceWarning) Unwrap() error {
	return w.Err
}

// record is the stored form of one unlock: {"unlockedAt": <unix ms>}.
type record struct {
	UnlockedAt int64 `json:"unlockedAt"`
}

// encodeUnlocked serializes the unlocked set as {id: {"unlockedAt": ms}}.
func encodeUnlocked(unlocked map[string]time.Time) ([]byte, error) {
	out := make(map[string]record, len(unlocked))
	for id, at := range unlocked {
		out[id] = record{UnlockedAt: at.UnixMilli()}
	}
	return json.Marshal(out)
}

// decodeUnlocked parses the stored unlocked set. Empty input is an empty set.
func decodeUnlocked(data []byte) (map[string]time.Time, error) {
	unlocked := make(map[string]time.Time)
	if len(data) == 0 {
		return unlocked, nil
	}
	var in map[string]record
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decode unlocked set: %w", err)
	}
	for id, r := range in {
		unlocked[id] = time.UnixMilli(r.UnlockedAt)
	}
	return unlocked, nil
}
