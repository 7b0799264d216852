// Package store keeps serialized parser models in an embedded BadgerDB,
// keyed by model name, with each model's manifest stored alongside.
package store

import (
	"bytes"
	"encoding/gob"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

const (
	MODEL_PREFIX    = "model/"
	MANIFEST_PREFIX = "manifest/"
)

var ErrNotFound = errors.New("model not found")

type Config struct {
	// Path is the database directory, ignored when InMemory is set.
	Path       string
	InMemory   bool
	SyncWrites bool
	// Logger receives BadgerDB's internal logging; nil disables it.
	Logger *log.Logger
}

func DefaultConfig(path string) Config {
	return Config{Path: path, SyncWrites: true}
}

func InMemoryConfig() Config {
	return Config{InMemory: true}
}

type badgerLogger struct {
	logger *log.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Printf("ERROR "+format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Printf("WARN "+format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Printf("INFO "+format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {}

type Store struct {
	db *badger.DB
}

func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent model store")
	}
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, errors.Wrapf(err, "creating model store directory %s", cfg.Path)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "opening model store")
	}
	return &Store{db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores a serialized model and its manifest under name, replacing
// any previous entry atomically.
func (s *Store) Put(name string, model []byte, manifest map[string]string) error {
	if name == "" {
		return errors.New("empty model name")
	}
	if manifest == nil {
		manifest = map[string]string{}
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(manifest); err != nil {
		return errors.Wrap(err, "encoding manifest")
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(MODEL_PREFIX+name), model); err != nil {
			return err
		}
		return txn.Set([]byte(MANIFEST_PREFIX+name), buf.Bytes())
	})
}

func (s *Store) Get(name string) ([]byte, error) {
	return s.get(MODEL_PREFIX + name)
}

func (s *Store) Manifest(name string) (map[string]string, error) {
	data, err := s.get(MANIFEST_PREFIX + name)
	if err != nil {
		return nil, err
	}
	manifest := make(map[string]string)
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&manifest); err != nil {
		return nil, errors.Wrapf(err, "decoding manifest of %s", name)
	}
	return manifest, nil
}

func (s *Store) get(key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "%s", strings.TrimPrefix(strings.TrimPrefix(key, MODEL_PREFIX), MANIFEST_PREFIX))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", key)
	}
	return data, nil
}

// List returns stored model names in key order.
func (s *Store) List() ([]string, error) {
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(MODEL_PREFIX)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			names = append(names, strings.TrimPrefix(string(it.Item().Key()), MODEL_PREFIX))
		}
		return nil
	})
	return names, errors.Wrap(err, "listing models")
}

func (s *Store) Delete(name string) error {
	if _, err := s.Get(name); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(MODEL_PREFIX + name)); err != nil {
			return err
		}
		return txn.Delete([]byte(MANIFEST_PREFIX + name))
	})
}
