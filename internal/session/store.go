package session

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/tobran/reel/internal/domain"
)

// Bucket names
var (
	bucketSession = []byte("session")
	bucketHistory = []byte("history")
	bucketViews   = []byte("views")
)

var (
	keyLastQuery = []byte("last_query")
	keyQueries   = []byte("queries")
)

// maxHistory caps the recent-query list
const maxHistory = 50

// Store persists session state in BoltDB: the last committed query, a
// capped recent-query history, and local per-item view counts. It implements
// domain.SessionStore.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) the session database under dataDir. An empty
// dataDir yields an in-memory-less store backed by a temp file in the OS
// temp directory, used by tests.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = os.TempDir()
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "reel.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open session db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSession, bucketHistory, bucketViews} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// LastQuery returns the most recently committed query
func (s *Store) LastQuery() (domain.Query, bool) {
	var q domain.Query
	found := false
	s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketSession).Get(keyLastQuery)
		if v == nil {
			return nil
		}
		if err := json.Unmarshal(v, &q); err == nil {
			found = true
		}
		return nil
	})
	return q, found
}

// SaveQuery records a committed query and appends its text to the history.
// Saving happens as a side effect of the commit, before the fetch resolves,
// so the session survives a failed search too.
func (s *Store) SaveQuery(q domain.Query) error {
	data, err := json.Marshal(q)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketSession).Put(keyLastQuery, data); err != nil {
			return err
		}
		if q.Text == "" {
			return nil
		}
		return appendHistory(tx, q.Text)
	})
}

// appendHistory moves text to the front of the history, deduplicated and
// capped
func appendHistory(tx *bolt.Tx, text string) error {
	b := tx.Bucket(bucketHistory)

	var history []string
	if v := b.Get(keyQueries); v != nil {
		json.Unmarshal(v, &history)
	}

	updated := make([]string, 0, len(history)+1)
	updated = append(updated, text)
	for _, h := range history {
		if h != text {
			updated = append(updated, h)
		}
	}
	if len(updated) > maxHistory {
		updated = updated[:maxHistory]
	}

	data, err := json.Marshal(updated)
	if err != nil {
		return err
	}
	return b.Put(keyQueries, data)
}

// RecentQueries returns past committed query texts, most recent first
func (s *Store) RecentQueries() []string {
	var history []string
	s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketHistory).Get(keyQueries); v != nil {
			json.Unmarshal(v, &history)
		}
		return nil
	})
	return history
}

// RecordView increments and returns the local view count for an item
func (s *Store) RecordView(itemID string) (int, error) {
	var count int
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketViews)
		key := []byte(itemID)
		if v := b.Get(key); len(v) == 8 {
			count = int(binary.BigEndian.Uint64(v))
		}
		count++
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(count))
		return b.Put(key, buf)
	})
	return count, err
}

// ViewCount returns the local view count for an item without incrementing
func (s *Store) ViewCount(itemID string) int {
	var count int
	s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketViews).Get([]byte(itemID)); len(v) == 8 {
			count = int(binary.BigEndian.Uint64(v))
		}
		return nil
	})
	return count
}
