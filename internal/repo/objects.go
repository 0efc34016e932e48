package repo

import (
	"context"
	"io"

	"github.com/koustreak/taskrepo/internal/errs"
	"github.com/koustreak/taskrepo/internal/filestore"
	"github.com/koustreak/taskrepo/internal/metadata"
)

// Content is an object's payload opened for streaming.
// The caller MUST Close Body.
type Content struct {
	ContentType string
	Size        int64 // -1 if unknown
	Body        io.ReadCloser
}

// ListObjects returns every object created under bucket.
func (s *Service) ListObjects(ctx context.Context, bucket string) (_ []metadata.Object, err error) {
	defer func() { s.observe("list_objects", err) }()

	if bucket, err = bucketName(bucket); err != nil {
		return nil, err
	}
	log := s.logFor(ctx).With().Str("bucket", bucket).Logger()
	log.Info("Listing all objects in bucket")

	if _, err := s.meta.FindBucket(ctx, bucket); err != nil {
		if errs.IsNotFound(err) {
			log.Warn("Could not find specified bucket")
			return nil, errBucketNotFound
		}
		return nil, err
	}

	return s.meta.FindObjects(ctx, bucket)
}

// GetObject opens the payload of the object called rawName (percent-encoded).
// The bucket must exist; the object is looked up by name alone.
func (s *Service) GetObject(ctx context.Context, bucket, rawName string) (_ *Content, err error) {
	defer func() { s.observe("get_object", err) }()

	if bucket, err = bucketName(bucket); err != nil {
		return nil, err
	}
	name, err := objectName(rawName)
	if err != nil {
		return nil, err
	}
	log := s.logFor(ctx).With().Str("bucket", bucket).Str("object", name).Logger()
	log.Info("Retrieving content of an object")

	if err := s.requireBucket(ctx, bucket); err != nil {
		if rejected(err) {
			log.Warn("Could not find specified bucket")
		}
		return nil, err
	}

	obj, err := s.meta.FindObject(ctx, name)
	if err != nil {
		if errs.IsNotFound(err) {
			log.Warn("Could not find specified object")
			return nil, errObjectNotFound
		}
		return nil, err
	}

	blob, err := s.blobs.Get(ctx, filestore.Handle(obj.Content))
	if err != nil {
		// a record without its blob is a store fault, not a client error
		return nil, storeFault("object content unavailable", err)
	}

	return &Content{
		ContentType: obj.ContentType,
		Size:        blob.Info().Size,
		Body:        blob,
	}, nil
}

// PutObject stores body as a new object called rawName (percent-encoded)
// under bucket. Object names are unique across all buckets.
// size is the body length, or -1 when unknown.
func (s *Service) PutObject(ctx context.Context, bucket, rawName string, body io.Reader, size int64) (err error) {
	defer func() { s.observe("put_object", err) }()

	if bucket, err = bucketName(bucket); err != nil {
		return err
	}
	name, err := objectName(rawName)
	if err != nil {
		return err
	}
	log := s.logFor(ctx).With().Str("bucket", bucket).Str("object", name).Logger()
	log.Info("Creating an object")

	if err := s.requireBucket(ctx, bucket); err != nil {
		if rejected(err) {
			log.Warn("Could not find specified bucket")
		}
		return err
	}

	n, err := s.meta.CountObjects(ctx, name)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Warn("Object already exists")
		return errObjectExists
	}

	return s.commitObject(ctx, log, metadata.Object{
		Name:        name,
		BucketName:  bucket,
		ContentType: PlaceholderContentType,
		Created:     s.now().UTC(),
	}, body, size)
}

// DeleteObject removes the object called rawName (percent-encoded) and its
// payload. The bucket is not checked.
func (s *Service) DeleteObject(ctx context.Context, bucket, rawName string) (err error) {
	defer func() { s.observe("delete_object", err) }()

	name, err := objectName(rawName)
	if err != nil {
		return err
	}
	log := s.logFor(ctx).With().Str("bucket", bucket).Str("object", name).Logger()
	log.Info("Deleting an object")

	obj, err := s.meta.FindObject(ctx, name)
	if err != nil {
		if errs.IsNotFound(err) {
			log.Warn("The object specified could not be found")
			return errObjectNotFound
		}
		return err
	}

	return s.discardObject(ctx, log, *obj)
}
