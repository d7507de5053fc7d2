// Package state persists batch-experiment results in a bbolt database so
// interrupted experiments can resume and finished ones can be audited.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

const dbName = "experiments.db"

var runsBucket = []byte("runs")

// Store is an experiment result store. A writable open holds an
// exclusive file lock; one experiment runner at a time.
type Store struct {
	DB *bbolt.DB
}

// Open opens (creating if needed) the store under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0770); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(filepath.Join(dir, dbName), 0600, nil)
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(runsBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

func runKey(experimentID string, walkers, run int) []byte {
	return []byte(fmt.Sprintf("%s/w%03d/r%03d", experimentID, walkers, run))
}

// PutRun stores one run's result, JSON-encoded.
func (s *Store) PutRun(experimentID string, walkers, run int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.DB.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(runsBucket).Put(runKey(experimentID, walkers, run), data)
	})
}

// GetRun loads one run's result into v. Returns false when absent.
func (s *Store) GetRun(experimentID string, walkers, run int, v any) (bool, error) {
	var data []byte
	err := s.DB.View(func(tx *bbolt.Tx) error {
		if raw := tx.Bucket(runsBucket).Get(runKey(experimentID, walkers, run)); raw != nil {
			data = append(data, raw...)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	return true, json.Unmarshal(data, v)
}

// EachRun visits every stored run for an experiment, in key order.
func (s *Store) EachRun(experimentID string, fn func(key string, data []byte) error) error {
	prefix := []byte(experimentID + "/")
	return s.DB.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(runsBucket).Cursor()
		for k, v := c.Seek(prefix); k != nil && len(k) >= len(prefix) && string(k[:len(prefix)]) == string(prefix); k, v = c.Next() {
			if err := fn(string(k), v); err != nil {
				return err
			}
		}
		return nil
	})
}
