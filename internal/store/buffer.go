package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxzihq/maxzi-analytics/internal/models"
)

// Sink receives a copy of a platform bucket every time it is replaced.
// Postgres mirroring and Kafka publishing both attach through this
// interface; the buffer stays usable with no sinks at all.
type Sink interface {
	ReplacePlatform(ctx context.Context, platform models.Platform, records []models.OrderRecord) error
}

// Buffer holds, per platform, the most recently uploaded normalized row
// set. Buckets are replaced atomically and never merged: re-uploading a
// platform's file discards its previous data entirely. Every mutation is
// persisted through the SnapshotStore and forwarded to the attached sinks.
type Buffer struct {
	mu      sync.Mutex
	buckets map[models.Platform][]models.OrderRecord
	gens    map[models.Platform]uint64
	store   *SnapshotStore
	sinks   []Sink
	logger  zerolog.Logger
}

func NewBuffer(store *SnapshotStore, logger zerolog.Logger, sinks ...Sink) *Buffer {
	return &Buffer{
		buckets: emptyBuckets(),
		gens:    make(map[models.Platform]uint64, 4),
		store:   store,
		sinks:   sinks,
		logger:  logger,
	}
}

// Load seeds the buffer from the persisted snapshot. A corrupt snapshot is
// logged and treated as absent; the buffer starts empty and the process
// keeps running.
func (b *Buffer) Load() {
	if b.store == nil {
		return
	}
	buckets, err := b.store.Load()
	if err != nil {
		b.logger.Warn().Err(err).Msg("discarding unreadable snapshot, starting with empty buffers")
		return
	}
	b.mu.Lock()
	b.buckets = buckets
	b.mu.Unlock()
}

// Generation returns the platform bucket's current generation. Callers
// capture it before starting a parse and pass it to ReplaceIfCurrent so a
// superseded in-flight upload is discarded instead of winning by arriving
// last.
func (b *Buffer) Generation(platform models.Platform) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gens[platform]
}

// Replace swaps the platform's bucket wholesale.
func (b *Buffer) Replace(ctx context.Context, platform models.Platform, records []models.OrderRecord) {
	b.mu.Lock()
	b.replaceLocked(platform, records)
	bucket := b.buckets[platform]
	b.mu.Unlock()
	b.flush(ctx, platform, bucket)
}

// ReplaceIfCurrent swaps the bucket only when no other replace has landed
// since gen was captured. It reports whether the replace was applied.
func (b *Buffer) ReplaceIfCurrent(ctx context.Context, platform models.Platform, gen uint64, records []models.OrderRecord) bool {
	b.mu.Lock()
	if b.gens[platform] != gen {
		b.mu.Unlock()
		b.logger.Info().
			Str("platform", string(platform)).
			Uint64("generation", gen).
			Msg("discarding superseded upload")
		return false
	}
	b.replaceLocked(platform, records)
	bucket := b.buckets[platform]
	b.mu.Unlock()
	b.flush(ctx, platform, bucket)
	return true
}

// Clear empties one platform bucket.
func (b *Buffer) Clear(ctx context.Context, platform models.Platform) {
	b.Replace(ctx, platform, nil)
}

// ClearAll empties every bucket.
func (b *Buffer) ClearAll(ctx context.Context) {
	for _, p := range models.AllPlatforms() {
		b.Clear(ctx, p)
	}
}

// All returns a copy of every bucket keyed by platform.
func (b *Buffer) All() map[models.Platform][]models.OrderRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[models.Platform][]models.OrderRecord, len(b.buckets))
	for p, records := range b.buckets {
		out[p] = append([]models.OrderRecord{}, records...)
	}
	return out
}

// Bucket returns a copy of one platform's records in upload order.
func (b *Buffer) Bucket(platform models.Platform) []models.OrderRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.OrderRecord{}, b.buckets[platform]...)
}

// Records returns all records passing the filter, platform by platform in
// display order.
func (b *Buffer) Records(filter models.FilterSelection) []models.OrderRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []models.OrderRecord
	for _, p := range models.AllPlatforms() {
		for _, r := range b.buckets[p] {
			if filter.Matches(r) {
				out = append(out, r)
			}
		}
	}
	return out
}

// Locations returns the distinct non-empty locations across all buckets,
// sorted, for the location filter picker.
func (b *Buffer) Locations() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	seen := make(map[string]struct{})
	for _, records := range b.buckets {
		for _, r := range records {
			if r.Location != "" {
				seen[r.Location] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for loc := range seen {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}

// LastSaved reports when the snapshot was last persisted.
func (b *Buffer) LastSaved() time.Time {
	if b.store == nil {
		return time.Time{}
	}
	return b.store.LastSaved()
}

func (b *Buffer) replaceLocked(platform models.Platform, records []models.OrderRecord) {
	if records == nil {
		records = []models.OrderRecord{}
	}
	b.buckets[platform] = records
	b.gens[platform]++
}

// flush persists the current buckets and notifies sinks. Failures are
// logged, never surfaced: the in-memory state already changed and the
// dashboard keeps working from it.
func (b *Buffer) flush(ctx context.Context, platform models.Platform, records []models.OrderRecord) {
	if b.store != nil {
		if err := b.store.Save(b.All(), time.Now()); err != nil {
			b.logger.Error().Err(err).Msg("failed to persist snapshot")
		}
	}
	for _, sink := range b.sinks {
		if err := sink.ReplacePlatform(ctx, platform, records); err != nil {
			b.logger.Error().Err(err).
				Str("platform", string(platform)).
				Msg("sink rejected bucket replace")
		}
	}
}
