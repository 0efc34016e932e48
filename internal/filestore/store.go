// Package filestore defines the blob store contract used for object payloads.
//
// A blob store keeps raw bytes only. Every Put returns an opaque Handle that
// the caller records alongside its own metadata; Get and Delete take that
// Handle back. Providers (in-memory, MinIO) implement Store; callers depend
// only on this package, never on a specific provider package.
//
// Usage:
//
//	cfg := filestore.DefaultConfig("localhost:9000", "minioadmin", "minioadmin")
//	store, err := minio.New(ctx, cfg)
//	if err != nil { ... }
//	defer store.Close()
//
//	h, err := store.Put(ctx, body, -1, filestore.PutOptions{ContentType: "application/unknown"})
package filestore

import (
	"context"
	"io"
)

// Store is the single interface all blob storage providers must implement.
type Store interface {
	// Ping verifies the storage backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any held resources (connections, goroutines, etc.).
	Close() error

	// Put streams r into a new blob and returns its handle.
	// size is the payload length, or -1 when unknown.
	Put(ctx context.Context, r io.Reader, size int64, opts PutOptions) (Handle, error)

	// Get opens a streaming handle to the blob's content.
	// The caller MUST call Object.Close() after reading.
	Get(ctx context.Context, h Handle) (Object, error)

	// Delete removes the blob. Deleting an unknown handle is ErrKindNotFound.
	Delete(ctx context.Context, h Handle) error
}
