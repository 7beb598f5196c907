package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
)

var bucketRelationPayloads = []byte("relation_payloads")

// Store persists the last payload published per relation id, so unchanged
// payloads can skip the relation write on subsequent hook runs.
type Store struct {
	db *bolt.DB
}

// Open creates or opens the payload store under dataDir.
func Open(dataDir string) (*Store, error) {
	dbPath := filepath.Join(dataDir, "charm-ha.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open payload store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRelationPayloads)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put records payload as the last data published on relationID.
func (s *Store) Put(relationID string, payload map[string]string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRelationPayloads)
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		return b.Put([]byte(relationID), data)
	})
}

// Get returns the last payload recorded for relationID, or nil when none
// has been recorded.
func (s *Store) Get(relationID string) (map[string]string, error) {
	var payload map[string]string
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketRelationPayloads).Get([]byte(relationID))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &payload)
	})
	return payload, err
}

// Changed reports whether payload differs from the last recorded payload
// for relationID. An unreadable or missing record counts as changed.
func (s *Store) Changed(relationID string, payload map[string]string) bool {
	last, err := s.Get(relationID)
	if err != nil || last == nil {
		return true
	}
	if len(last) != len(payload) {
		return true
	}
	for k, v := range payload {
		if last[k] != v {
			return true
		}
	}
	return false
}
