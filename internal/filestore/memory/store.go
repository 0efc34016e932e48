// Package memory provides an in-process implementation of filestore.Store.
// Use it for development and tests only: every blob lives in RAM.
package memory

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/koustreak/taskrepo/internal/errs"
	"github.com/koustreak/taskrepo/internal/filestore"
)

type blob struct {
	data []byte
	info filestore.BlobInfo
}

// Store keeps blobs in a map keyed by a random UUID handle.
// It is safe for concurrent use by multiple goroutines.
type Store struct {
	mu    sync.RWMutex
	blobs map[filestore.Handle]blob
	now   func() time.Time
}

// New creates an empty in-memory blob store.
func New() *Store {
	return &Store{
		blobs: make(map[filestore.Handle]blob),
		now:   time.Now,
	}
}

func (s *Store) Ping(context.Context) error { return nil }
func (s *Store) Close() error               { return nil }

// Put reads r fully and stores a copy under a fresh handle.
func (s *Store) Put(ctx context.Context, r io.Reader, _ int64, opts filestore.PutOptions) (filestore.Handle, error) {
	if err := ctx.Err(); err != nil {
		return "", errs.Wrap(errs.ErrKindTimeout, "put aborted", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return "", errs.Wrap(errs.ErrKindQueryFailed, "failed to read blob content", err)
	}

	h := filestore.Handle(uuid.NewString())
	b := blob{
		data: buf.Bytes(),
		info: filestore.BlobInfo{
			Handle:       h,
			Size:         int64(buf.Len()),
			ContentType:  opts.ContentType,
			LastModified: s.now().UTC(),
		},
	}

	s.mu.Lock()
	s.blobs[h] = b
	s.mu.Unlock()
	return h, nil
}

// Get returns a reader over the stored bytes.
func (s *Store) Get(_ context.Context, h filestore.Handle) (filestore.Object, error) {
	s.mu.RLock()
	b, ok := s.blobs[h]
	s.mu.RUnlock()
	if !ok {
		return nil, errs.New(errs.ErrKindNotFound, "blob not found")
	}
	info := b.info
	return &object{Reader: bytes.NewReader(b.data), info: &info}, nil
}

// Delete drops the blob.
func (s *Store) Delete(_ context.Context, h filestore.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[h]; !ok {
		return errs.New(errs.ErrKindNotFound, "blob not found")
	}
	delete(s.blobs, h)
	return nil
}

// Len reports how many blobs are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

type object struct {
	*bytes.Reader
	info *filestore.BlobInfo
}

func (o *object) Close() error              { return nil }
func (o *object) Info() *filestore.BlobInfo { return o.info }
