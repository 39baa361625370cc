package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/maxzihq/maxzi-analytics/internal/models"
)

const (
	snapshotFile  = "orders.json"
	timestampFile = "orders.updated_at"
)

// SnapshotStore persists the full multi-platform bucket structure as one
// JSON document in the data directory, with a sibling slot holding the
// RFC3339 timestamp of the last save. There is no schema version field;
// a document that fails to deserialize is treated as absent.
type SnapshotStore struct {
	dir string
}

func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{dir: dir}
}

// Save serializes all buckets and records the save time.
func (s *SnapshotStore) Save(buckets map[models.Platform][]models.OrderRecord, now time.Time) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	doc := make(map[models.Platform][]models.OrderRecord, len(buckets))
	for _, p := range models.AllPlatforms() {
		records := buckets[p]
		if records == nil {
			records = []models.OrderRecord{}
		}
		doc[p] = records
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, snapshotFile), data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	ts := now.UTC().Format(time.RFC3339)
	if err := os.WriteFile(filepath.Join(s.dir, timestampFile), []byte(ts), 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot timestamp: %w", err)
	}
	return nil
}

// Load reads the persisted buckets back. A missing snapshot returns empty
// buckets and no error; callers decide how to treat a corrupt one.
func (s *SnapshotStore) Load() (map[models.Platform][]models.OrderRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, snapshotFile))
	if os.IsNotExist(err) {
		return emptyBuckets(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var doc map[models.Platform][]models.OrderRecord
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	buckets := emptyBuckets()
	for _, p := range models.AllPlatforms() {
		if records, ok := doc[p]; ok && records != nil {
			// The bucket key is authoritative, same as the upload route:
			// a hand-edited snapshot cannot smuggle in a platform tag
			// outside the known set.
			for i := range records {
				records[i].Platform = p
			}
			buckets[p] = records
		}
	}
	return buckets, nil
}

// LastSaved returns the timestamp of the most recent save, zero when the
// slot is missing or malformed.
func (s *SnapshotStore) LastSaved() time.Time {
	data, err := os.ReadFile(filepath.Join(s.dir, timestampFile))
	if err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(string(data)))
	if err != nil {
		return time.Time{}
	}
	return t
}

func emptyBuckets() map[models.Platform][]models.OrderRecord {
	buckets := make(map[models.Platform][]models.OrderRecord, 4)
	for _, p := range models.AllPlatforms() {
		buckets[p] = []models.OrderRecord{}
	}
	return buckets
}
