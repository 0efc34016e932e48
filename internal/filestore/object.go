package filestore

import (
	"io"
	"time"
)

// Handle is the opaque reference a Store returns for a stored blob.
type Handle string

func (h Handle) String() string { return string(h) }

// PutOptions carries the metadata stored with a blob.
type PutOptions struct {
	// ContentType is the MIME type recorded with the blob.
	ContentType string

	// Metadata is free-form user metadata (e.g. the uploader tag).
	Metadata map[string]string
}

// BlobInfo describes a stored blob.
type BlobInfo struct {
	// Handle identifies the blob.
	Handle Handle

	// Size is the byte size of the blob. -1 if unknown.
	Size int64

	// ContentType is the MIME type recorded at Put time.
	ContentType string

	// LastModified is when the blob was written.
	LastModified time.Time
}

// Object is a streaming handle to a blob's content.
// The caller MUST call Close() after reading to avoid resource leaks.
type Object interface {
	io.ReadCloser

	// Info returns the metadata for this blob.
	Info() *BlobInfo
}
