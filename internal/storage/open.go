package storage

import (
	"fmt"
	"io"
)

// Backend kinds accepted by Open.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// Open builds the backend named by kind. The returned closer must be called
// when the backend is no longer needed.
func Open(kind, path string) (Backend, io.Closer, error) {
	switch kind {
	case "", KindFile:
		return NewFile(path), nopCloser{}, nil
	case KindSQLite:
		db, err := NewSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	case KindMemory:
		return NewMemory(nil), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q (want file, sqlite or memory)", kind)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
