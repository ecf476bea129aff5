package storage

import (
	"context"
)

// Repository is a string-keyed slot store. Get returns domain.ErrNotFound when
// the key has never been written.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
}
