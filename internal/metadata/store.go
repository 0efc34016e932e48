// Package metadata holds the bucket and object records of the repository.
//
// Records are looked up by simple name equality. The store keeps no link
// between a bucket and the objects created under it: removing a bucket
// leaves its objects in place, and object names are unique across all
// buckets. Callers that need "check then write" semantics perform the two
// calls themselves; the Store offers no transactions.
package metadata

import (
	"context"
	"time"
)

// Bucket is a named top-level container.
type Bucket struct {
	Name    string
	Created time.Time
}

// Object is a named blob reference. Content is the blob store handle,
// never the payload itself.
type Object struct {
	Name        string
	BucketName  string
	ContentType string
	Content     string
	Created     time.Time
}

// Store is the contract every metadata backend implements.
// Lookups that match nothing return an errs.ErrKindNotFound error; inserts
// of an already-present name return errs.ErrKindConflict.
type Store interface {
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases held resources.
	Close()

	// FindBuckets returns every bucket in natural store order.
	FindBuckets(ctx context.Context) ([]Bucket, error)

	// FindBucket returns the bucket called name.
	FindBucket(ctx context.Context, name string) (*Bucket, error)

	// CountBuckets returns how many buckets are called name.
	CountBuckets(ctx context.Context, name string) (int, error)

	// InsertBucket stores a new bucket record.
	InsertBucket(ctx context.Context, b Bucket) error

	// RemoveBucket deletes the bucket record called name.
	RemoveBucket(ctx context.Context, name string) error

	// FindObjects returns every object whose BucketName equals bucket.
	FindObjects(ctx context.Context, bucket string) ([]Object, error)

	// FindObject returns the object called name, whatever its bucket.
	FindObject(ctx context.Context, name string) (*Object, error)

	// CountObjects returns how many objects are called name, across all buckets.
	CountObjects(ctx context.Context, name string) (int, error)

	// InsertObject stores a new object record.
	InsertObject(ctx context.Context, o Object) error

	// RemoveObject deletes the object record called name.
	RemoveObject(ctx context.Context, name string) error
}
