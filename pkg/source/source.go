package source

import (
	"context"
	"time"
)

type (
	// Source defines the contract for read only listings of stored asset files.
	// Implementations must be safe for concurrent use.
	Source interface {
		// List returns objects whose key starts with prefix, sorted by key.
		List(ctx context.Context, prefix string) ([]Object, error)

		// Read retrieves the data stored under key.
		// Returns os.ErrNotExist if the key does not exist.
		Read(ctx context.Context, key string) ([]byte, error)

		// Close releases any resources held by the source.
		Close() error
	}
	// Object a single stored file
	Object struct {
		Key     string
		Size    int64
		ModTime time.Time
	}
)
