package offline

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// boltStore keeps one bucket per cache name so the caches survive restarts.
type boltStore struct {
	db *bolt.DB
}

func OpenBoltStore(path string) (Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open offline cache %s: %w", path, err)
	}
	return &boltStore{db: db}, nil
}

func (s *boltStore) Keys() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			names = append(names, string(name))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list caches: %w", err)
	}
	return names, nil
}

func (s *boltStore) Delete(cache string) (bool, error) {
	deleted := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket([]byte(cache))
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete cache %s: %w", cache, err)
	}
	return deleted, nil
}

func (s *boltStore) Put(cache, key string, e *Entry) error {
	return s.PutAll(cache, map[string]*Entry{key: e})
}

func (s *boltStore) PutAll(cache string, entries map[string]*Entry) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(cache))
		if err != nil {
			return err
		}
		for key, e := range entries {
			data, err := json.Marshal(e)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(key), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store into cache %s: %w", cache, err)
	}
	return nil
}

func (s *boltStore) Match(key string) (*Entry, error) {
	var found *Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(_ []byte, b *bolt.Bucket) error {
			if found != nil {
				return nil
			}
			e, err := decode(b.Get([]byte(key)))
			found = e
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to match %s: %w", key, err)
	}
	return found, nil
}

func (s *boltStore) MatchIn(cache, key string) (*Entry, error) {
	var found *Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(cache))
		if b == nil {
			return nil
		}
		e, err := decode(b.Get([]byte(key)))
		found = e
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to match %s in %s: %w", key, cache, err)
	}
	return found, nil
}

func (s *boltStore) Close() error {
	return s.db.Close()
}

func decode(data []byte) (*Entry, error) {
	if data == nil {
		return nil, nil
	}
	e := &Entry{}
	if err := json.Unmarshal(data, e); err != nil {
		return nil, err
	}
	return e, nil
}
