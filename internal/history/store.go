// Package history keeps an on-disk record of already-exported article
// URLs so repeated runs can optionally skip them. The store is opt-in;
// without it every run starts fresh.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/newsreap/newsreap/internal/domain"
)

var seenBucket = []byte("seen")

// Store records article URLs across runs, backed by bbolt.
type Store struct {
	db *bolt.DB
}

// DefaultPath returns the history file location under the user config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "newsreap", "history.db"), nil
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(seenBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init history bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Seen reports whether the URL was recorded by an earlier run.
func (s *Store) Seen(url string) bool {
	if s == nil || s.db == nil {
		return false
	}

	var found bool
	_ = s.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket(seenBucket).Get([]byte(domain.HashURL(url))) != nil
		return nil
	})
	return found
}

// Record stores the URLs of the given articles with the current time.
func (s *Store) Record(articles []domain.Article) error {
	if s == nil || s.db == nil || len(articles) == 0 {
		return nil
	}

	now := []byte(time.Now().Format(time.RFC3339))
	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(seenBucket)
		for _, a := range articles {
			if err := bucket.Put([]byte(domain.HashURL(a.URL)), now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	return nil
}

// Len returns the number of recorded URLs.
func (s *Store) Len() int {
	if s == nil || s.db == nil {
		return 0
	}

	var n int
	_ = s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(seenBucket).Stats().KeyN
		return nil
	})
	return n
}
