// Package kvstore is the local persistent key/value store of the client.
//
// Values are opaque strings; callers serialize structured values before
// storing them. The store backs both the small set of named entries
// (see Key) and the posts snapshot written by the persistence hook.
// There are no transactions, expiry or size limits at this layer.
package kvstore

import (
	"context"
)

// Repository is the contract of the local store.
//
// Get returns ("", false, nil) for a missing key. Remove of a missing key
// is not an error.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}

// Key names the explicit entries kept in the store.
type Key string

const (
	// KeyDemo holds the free-form demo value.
	KeyDemo Key = "demo-1"
	// KeyPosts holds the remote key most recently used to push the posts collection.
	KeyPosts Key = "dnt_posts_key"
)
