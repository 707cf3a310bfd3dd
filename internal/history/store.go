// Package history tracks which job fingerprints were already sent, so a
// posting triggers at most one notification within the retention window.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Store is an in-memory fingerprint to last-sent-time map backed by a single
// JSON document on disk. It is the exclusive owner of that file: every write
// goes through an atomic snapshot (temp file + rename). Persistence failures
// are logged and swallowed; losing dedup durability is recoverable, aborting
// a run is not.
type Store struct {
	// ReadOnly suppresses every write to the backing file. Used for dry runs,
	// which must leave the send history exactly as found.
	ReadOnly bool

	path          string
	retentionDays int
	logger        *zap.Logger
	entries       map[string]time.Time

	now func() time.Time
}

// Stats summarizes the store contents. OldestEntry and NewestEntry are nil
// when the store is empty.
type Stats struct {
	TotalJobs   int
	OldestEntry *time.Time
	NewestEntry *time.Time
}

// New loads the store from path. A missing file yields an empty store; an
// unreadable or malformed file is logged and also yields an empty store,
// because blocking notifications is worse than a possible duplicate.
func New(path string, retentionDays int, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{
		path:          path,
		retentionDays: retentionDays,
		logger:        logger,
		entries:       make(map[string]time.Time),
		now:           time.Now,
	}
	s.load()

	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("no existing send history, starting empty", zap.String("path", s.path))
			return
		}
		s.logger.Error("reading send history, starting empty", zap.String("path", s.path), zap.Error(err))
		return
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Error("malformed send history, starting empty", zap.String("path", s.path), zap.Error(err))
		return
	}

	for fingerprint, stamp := range raw {
		ts, err := time.Parse(time.RFC3339Nano, stamp)
		if err != nil {
			s.logger.Warn("dropping history entry with bad timestamp",
				zap.String("fingerprint", fingerprint),
				zap.String("timestamp", stamp),
			)
			continue
		}
		s.entries[fingerprint] = ts
	}

	s.logger.Info("loaded send history", zap.Int("count", len(s.entries)), zap.String("path", s.path))
}

// IsSent reports whether the fingerprint was already sent. Presence blocks a
// resend even when the entry is stale; eviction happens lazily in
// CleanupOldEntries.
func (s *Store) IsSent(fingerprint string) bool {
	_, ok := s.entries[fingerprint]
	return ok
}

// MarkAsSent records the fingerprint with the current time and persists the
// snapshot before returning.
func (s *Store) MarkAsSent(fingerprint string) {
	s.entries[fingerprint] = s.now()
	s.persist()
}

// CleanupOldEntries removes every record strictly older than the retention
// window, persists when anything was removed and returns the removed count.
// Safe on an empty store.
func (s *Store) CleanupOldEntries() int {
	cutoff := s.now().AddDate(0, 0, -s.retentionDays)

	removed := 0
	for fingerprint, ts := range s.entries {
		if ts.Before(cutoff) {
			delete(s.entries, fingerprint)
			removed++
		}
	}

	if removed > 0 {
		s.logger.Info("cleaned up old history entries",
			zap.Int("removed", removed),
			zap.Int("retention_days", s.retentionDays),
		)
		s.persist()
	}

	return removed
}

// Stats returns a read-only summary of the store.
func (s *Store) Stats() Stats {
	stats := Stats{TotalJobs: len(s.entries)}
	for _, ts := range s.entries {
		ts := ts
		if stats.OldestEntry == nil || ts.Before(*stats.OldestEntry) {
			stats.OldestEntry = &ts
		}
		if stats.NewestEntry == nil || ts.After(*stats.NewestEntry) {
			stats.NewestEntry = &ts
		}
	}
	return stats
}

func (s *Store) persist() {
	if s.ReadOnly {
		s.logger.Debug("read-only store, skipping persist")
		return
	}

	raw := make(map[string]string, len(s.entries))
	for fingerprint, ts := range s.entries {
		raw[fingerprint] = ts.Format(time.RFC3339Nano)
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		s.logger.Error("encoding send history", zap.Error(err))
		return
	}

	if err := atomicWrite(s.path, data); err != nil {
		s.logger.Error("persisting send history", zap.String("path", s.path), zap.Error(err))
		return
	}

	s.logger.Debug("persisted send history", zap.Int("count", len(s.entries)))
}

// atomicWrite replaces path with data via a temp file in the same directory,
// so readers never observe a partially written snapshot.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing snapshot: %w", err)
	}

	return nil
}
