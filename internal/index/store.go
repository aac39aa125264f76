package index

import (
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	domainerr "alepc/internal/domain/errors"
)

// Store is the post catalog. It is derived from the post files and can be
// rebuilt at any time.
type Store struct {
	db *bolt.DB
}

type OpenOptions struct {
	Path string // e.g. "~/.cache/alepc/catalog.db"
}

func Open(opt OpenOptions) (*Store, error) {
	if opt.Path == "" {
		return nil, domainerr.Other("index: missing path")
	}
	if err := os.MkdirAll(filepath.Dir(opt.Path), 0o755); err != nil {
		return nil, domainerr.FileSystem(err, "cannot create catalog directory")
	}
	db, err := bolt.Open(opt.Path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, domainerr.FileSystem(err, "cannot open catalog '%s'", opt.Path)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
