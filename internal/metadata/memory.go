package metadata

import (
	"context"
	"sync"

	"github.com/koustreak/taskrepo/internal/errs"
)

// MemoryStore is an in-process Store suitable for development and tests.
// It is not durable. Records are kept in insertion order.
type MemoryStore struct {
	mu      sync.RWMutex
	buckets []Bucket
	objects []Object
}

// NewMemoryStore creates an empty in-memory metadata store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Ping(context.Context) error { return nil }
func (m *MemoryStore) Close()                     {}

func (m *MemoryStore) FindBuckets(context.Context) ([]Bucket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Bucket, len(m.buckets))
	copy(out, m.buckets)
	return out, nil
}

func (m *MemoryStore) FindBucket(_ context.Context, name string) (*Bucket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.bucketIndex(name); i >= 0 {
		b := m.buckets[i]
		return &b, nil
	}
	return nil, errs.New(errs.ErrKindNotFound, "bucket not found")
}

func (m *MemoryStore) CountBuckets(_ context.Context, name string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.bucketIndex(name) >= 0 {
		return 1, nil
	}
	return 0, nil
}

func (m *MemoryStore) InsertBucket(_ context.Context, b Bucket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bucketIndex(b.Name) >= 0 {
		return errs.New(errs.ErrKindConflict, "bucket already exists")
	}
	m.buckets = append(m.buckets, b)
	return nil
}

func (m *MemoryStore) RemoveBucket(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.bucketIndex(name)
	if i < 0 {
		return errs.New(errs.ErrKindNotFound, "bucket not found")
	}
	m.buckets = append(m.buckets[:i], m.buckets[i+1:]...)
	return nil
}

func (m *MemoryStore) FindObjects(_ context.Context, bucket string) ([]Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Object, 0)
	for _, o := range m.objects {
		if o.BucketName == bucket {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *MemoryStore) FindObject(_ context.Context, name string) (*Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.objectIndex(name); i >= 0 {
		o := m.objects[i]
		return &o, nil
	}
	return nil, errs.New(errs.ErrKindNotFound, "object not found")
}

func (m *MemoryStore) CountObjects(_ context.Context, name string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.objectIndex(name) >= 0 {
		return 1, nil
	}
	return 0, nil
}

func (m *MemoryStore) InsertObject(_ context.Context, o Object) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objectIndex(o.Name) >= 0 {
		return errs.New(errs.ErrKindConflict, "object already exists")
	}
	m.objects = append(m.objects, o)
	return nil
}

func (m *MemoryStore) RemoveObject(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.objectIndex(name)
	if i < 0 {
		return errs.New(errs.ErrKindNotFound, "object not found")
	}
	m.objects = append(m.objects[:i], m.objects[i+1:]...)
	return nil
}

// callers hold m.mu
func (m *MemoryStore) bucketIndex(name string) int {
	for i, b := range m.buckets {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// callers hold m.mu
func (m *MemoryStore) objectIndex(name string) int {
	for i, o := range m.objects {
		if o.Name == name {
			return i
		}
	}
	return -1
}
