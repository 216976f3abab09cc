package storage

import (
	"context"
	"io"
)

// Store persists uploaded files under a key.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader) error
}
