package history

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketLastPick = []byte("last_pick")
	bucketLaunches = []byte("launches")
)

// Launch is one dispatched invocation as it went out the door.
type Launch struct {
	At      time.Time `json:"at"`
	Dir     string    `json:"dir"`
	Command []string  `json:"command"`
}

// Store persists launch history and the last WAD picked per directory.
// A nil *Store is valid and remembers nothing; the launcher works
// without history.
type Store struct {
	db *bolt.DB
}

func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("history db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketLastPick, bucketLaunches} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// LastPick returns the WAD filename last chosen in dir, if any.
func (s *Store) LastPick(dir string) string {
	if s == nil || s.db == nil {
		return ""
	}
	var pick string
	_ = s.db.View(func(tx *bolt.Tx) error {
		if value := tx.Bucket(bucketLastPick).Get([]byte(dir)); value != nil {
			pick = string(value)
		}
		return nil
	})
	return pick
}

func (s *Store) RecordPick(dir, name string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLastPick).Put([]byte(dir), []byte(name))
	})
}

func (s *Store) RecordLaunch(launch Launch) error {
	if s == nil || s.db == nil {
		return nil
	}
	if launch.At.IsZero() {
		launch.At = time.Now().UTC()
	}
	data, err := json.Marshal(launch)
	if err != nil {
		return err
	}
	key := []byte(launch.At.UTC().Format(time.RFC3339Nano))
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLaunches).Put(key, data)
	})
}

// Recent returns up to limit launches, newest first.
func (s *Store) Recent(limit int) ([]Launch, error) {
	if s == nil || s.db == nil || limit <= 0 {
		return nil, nil
	}
	var launches []Launch
	err := s.db.View(func(tx *bolt.Tx) error {
		cursor := tx.Bucket(bucketLaunches).Cursor()
		for key, value := cursor.Last(); key != nil && len(launches) < limit; key, value = cursor.Prev() {
			var launch Launch
			if err := json.Unmarshal(value, &launch); err != nil {
				continue
			}
			launches = append(launches, launch)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return launches, nil
}
