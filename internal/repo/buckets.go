package repo

import (
	"context"

	"github.com/koustreak/taskrepo/internal/errs"
	"github.com/koustreak/taskrepo/internal/metadata"
)

// ListBuckets returns every bucket in natural store order.
func (s *Service) ListBuckets(ctx context.Context) (_ []metadata.Bucket, err error) {
	defer func() { s.observe("list_buckets", err) }()

	s.logFor(ctx).Info("Listing all buckets")
	return s.meta.FindBuckets(ctx)
}

// CreateBucket inserts a new bucket. An existing name is a conflict.
func (s *Service) CreateBucket(ctx context.Context, name string) (err error) {
	defer func() { s.observe("create_bucket", err) }()

	if name, err = bucketName(name); err != nil {
		return err
	}
	log := s.logFor(ctx).With().Str("bucket", name).Logger()
	log.Info("Creating a bucket")

	n, err := s.meta.CountBuckets(ctx, name)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Warn("Bucket already exists")
		return errBucketExists
	}

	return s.meta.InsertBucket(ctx, metadata.Bucket{
		Name:    name,
		Created: s.now().UTC(),
	})
}

// DeleteBucket removes the bucket record only. Objects created under it are
// left untouched and stay reachable by name.
func (s *Service) DeleteBucket(ctx context.Context, name string) (err error) {
	defer func() { s.observe("delete_bucket", err) }()

	if name, err = bucketName(name); err != nil {
		return err
	}
	log := s.logFor(ctx).With().Str("bucket", name).Logger()
	log.Info("Deleting a bucket")

	b, err := s.meta.FindBucket(ctx, name)
	if err != nil {
		if errs.IsNotFound(err) {
			log.Warn("Could not find specified bucket")
			return errBucketNotFound
		}
		return err
	}

	return s.meta.RemoveBucket(ctx, b.Name)
}

// requireBucket fails with not found unless a bucket called name exists.
func (s *Service) requireBucket(ctx context.Context, name string) error {
	n, err := s.meta.CountBuckets(ctx, name)
	if err != nil {
		return err
	}
	if n == 0 {
		return errBucketNotFound
	}
	return nil
}
