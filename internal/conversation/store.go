package conversation

import "context"

// Store holds conversation contexts keyed by id. An unknown id on Get is a
// miss (nil, nil), never an error; the caller creates a fresh context.
type Store interface {
	Get(ctx context.Context, id string) (*Context, error)
	Upsert(ctx context.Context, c *Context) error
	Close() error
}
