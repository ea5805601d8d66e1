package domain

import (
	"context"
)

// Fixed Local Cache keys. Values are whole-collection JSON blobs;
// a key is always written in one piece, never partially updated.
const (
	KeyPosts    = "edublog-posts"
	KeyMessages = "edublog-messages"
	KeySession  = "edublog-session"
	KeyCSRF     = "edublog-csrf-token"
	KeyLastSync = "edublog-last-sync"
)

// LocalCache is the durable client-side key-value store. It is the offline
// source of truth and the last-known-good snapshot of the post collection.
type LocalCache interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// BlobStore is the external, best-effort mirror of the post collection.
// It holds one JSON array under one bin and has no ownership of truth;
// on conflict the reconciliation policy decides.
type BlobStore interface {
	// Load fetches the full post array. Unreachable or malformed
	// responses surface as ErrRemoteUnavailable.
	Load(ctx context.Context) ([]Post, error)
	// Save replaces the full post array. No partial updates.
	Save(ctx context.Context, posts []Post) error
}

// Broadcaster delivers a zero-payload "data changed" signal to other
// active sessions. Delivery is advisory only; a missed signal degrades
// to no cross-session refresh, never an error.
type Broadcaster interface {
	Notify()
	// Subscribe returns a signal channel and a cancel function that
	// releases the subscription.
	Subscribe() (<-chan struct{}, func())
}
