package authstate

import (
	"context"

	"github.com/cccteam/authstate/authzsnap"
	"github.com/cccteam/authstate/fetcher"
)

var _ SnapshotFetcher = &fetcher.Coordinator{}

// SnapshotFetcher produces and caches authorization snapshots per
// ContextKey. Implemented by fetcher.Coordinator.
type SnapshotFetcher interface {
	// FetchSnapshot returns the snapshot for key, from cache unless
	// forceRefresh is set. Concurrent calls for the same key share one
	// underlying fetch.
	FetchSnapshot(ctx context.Context, key authzsnap.ContextKey, forceRefresh bool) (*authzsnap.Snapshot, error)

	// Invalidate evicts the cache entry for key.
	Invalidate(key authzsnap.ContextKey)

	// Reset synchronously drops every cache entry.
	Reset()
}
