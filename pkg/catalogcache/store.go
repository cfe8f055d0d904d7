// Package catalogcache persists the last catalog load so repeated searches
// do not re-parse thousands of bucket descriptors.
//
// The cache stores the entries exactly as loaded; the Installed flag is a
// snapshot and callers are expected to recompute it against the live
// installed set when reading a cached catalog.
package catalogcache

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"ladle/pkg/scoop"
)

const (
	bucketEntries = "entries"
	bucketMeta    = "meta"

	keyLastUpdate = "last_update"
)

// Store manages the catalog snapshot using BoltDB.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the catalog cache at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog cache: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketEntries)); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketMeta)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save replaces the cached catalog with the given entries and stamps the
// snapshot time.
func (s *Store) Save(entries []scoop.CatalogEntry) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketEntries)); err != nil {
			return err
		}
		bucket, err := tx.CreateBucket([]byte(bucketEntries))
		if err != nil {
			return err
		}

		for _, entry := range entries {
			data, err := json.Marshal(entry)
			if err != nil {
				continue
			}
			key := entry.Bucket + "/" + strings.ToLower(entry.Name)
			if err := bucket.Put([]byte(key), data); err != nil {
				return err
			}
		}

		meta := tx.Bucket([]byte(bucketMeta))
		stamp, err := time.Now().MarshalBinary()
		if err != nil {
			return err
		}
		return meta.Put([]byte(keyLastUpdate), stamp)
	})
}

// Load returns the cached catalog and the time it was saved. An empty cache
// yields no entries and a zero time.
func (s *Store) Load() ([]scoop.CatalogEntry, time.Time, error) {
	var (
		entries []scoop.CatalogEntry
		saved   time.Time
	)

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketEntries))
		if bucket == nil {
			return nil
		}
		if err := bucket.ForEach(func(_, v []byte) error {
			var entry scoop.CatalogEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return nil // skip corrupt rows
			}
			entries = append(entries, entry)
			return nil
		}); err != nil {
			return err
		}

		meta := tx.Bucket([]byte(bucketMeta))
		if raw := meta.Get([]byte(keyLastUpdate)); raw != nil {
			_ = saved.UnmarshalBinary(raw) //nolint:errcheck
		}
		return nil
	})
	if err != nil {
		return nil, time.Time{}, err
	}

	return entries, saved, nil
}

// Fresh reports whether the cached snapshot is younger than ttl.
func (s *Store) Fresh(ttl time.Duration) bool {
	_, saved, err := s.Load()
	if err != nil || saved.IsZero() {
		return false
	}
	return time.Since(saved) < ttl
}

// Clear drops the cached catalog.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketEntries)); err != nil {
			return err
		}
		if _, err := tx.CreateBucket([]byte(bucketEntries)); err != nil {
			return err
		}
		meta := tx.Bucket([]byte(bucketMeta))
		return meta.Delete([]byte(keyLastUpdate))
	})
}
