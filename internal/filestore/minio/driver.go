// Package minio provides a MinIO implementation of filestore.Store.
//
// All blobs are written into one storage bucket (Config.Bucket) under a
// random UUID key; that key is the filestore.Handle.
//
// Usage:
//
//	cfg := filestore.DefaultConfig("localhost:9000", "minioadmin", "minioadmin")
//	store, err := minio.New(ctx, cfg)
//	if err != nil { ... }
//	defer store.Close()
package minio

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/koustreak/taskrepo/internal/errs"
	"github.com/koustreak/taskrepo/internal/filestore"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Driver is a MinIO implementation of filestore.Store.
// It is safe for concurrent use by multiple goroutines.
type Driver struct {
	client *miniogo.Client
	bucket string
}

// New connects to MinIO using the provided Config and returns a Driver.
// The storage bucket is created when it does not exist yet.
func New(ctx context.Context, cfg *filestore.Config) (*Driver, error) {
	if cfg.Bucket == "" {
		return nil, errs.New(errs.ErrKindInvalidInput, "blob bucket is required")
	}

	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "failed to create minio client", err)
	}

	d := &Driver{client: client, bucket: cfg.Bucket}

	if err := d.ensureBucket(ctx, cfg.Region); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Driver) ensureBucket(ctx context.Context, region string) error {
	exists, err := d.client.BucketExists(ctx, d.bucket)
	if err != nil {
		return mapError(err, "failed to check blob bucket")
	}
	if exists {
		return nil
	}
	if err := d.client.MakeBucket(ctx, d.bucket, miniogo.MakeBucketOptions{Region: region}); err != nil {
		return mapError(err, "failed to create blob bucket")
	}
	return nil
}

// --- filestore.Store implementation ---

// Ping verifies the MinIO server is reachable and the blob bucket is visible.
func (d *Driver) Ping(ctx context.Context) error {
	if _, err := d.client.BucketExists(ctx, d.bucket); err != nil {
		return mapError(err, "ping failed")
	}
	return nil
}

// Close is a no-op for MinIO; the SDK client holds no persistent connections.
func (d *Driver) Close() error {
	return nil
}

// Put streams r into a new object keyed by a fresh UUID.
func (d *Driver) Put(ctx context.Context, r io.Reader, size int64, opts filestore.PutOptions) (filestore.Handle, error) {
	key := uuid.NewString()

	_, err := d.client.PutObject(ctx, d.bucket, key, r, size, miniogo.PutObjectOptions{
		ContentType:  opts.ContentType,
		UserMetadata: opts.Metadata,
	})
	if err != nil {
		return "", mapError(err, "failed to put blob")
	}
	return filestore.Handle(key), nil
}

// Get opens a streaming handle to the blob.
// The caller MUST call Object.Close() after reading.
func (d *Driver) Get(ctx context.Context, h filestore.Handle) (filestore.Object, error) {
	obj, err := d.client.GetObject(ctx, d.bucket, h.String(), miniogo.GetObjectOptions{})
	if err != nil {
		return nil, mapError(err, "failed to get blob")
	}

	// GetObject is lazy; Stat surfaces NoSuchKey before any byte is streamed.
	stat, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, mapError(err, "failed to stat blob after get")
	}

	return &object{
		ReadCloser: obj,
		info: &filestore.BlobInfo{
			Handle:       h,
			Size:         stat.Size,
			ContentType:  stat.ContentType,
			LastModified: stat.LastModified,
		},
	}, nil
}

// Delete removes the blob. S3 deletes are idempotent, so the object is
// stat'ed first to report a missing handle as not found.
func (d *Driver) Delete(ctx context.Context, h filestore.Handle) error {
	if _, err := d.client.StatObject(ctx, d.bucket, h.String(), miniogo.StatObjectOptions{}); err != nil {
		return mapError(err, "failed to stat blob before delete")
	}
	if err := d.client.RemoveObject(ctx, d.bucket, h.String(), miniogo.RemoveObjectOptions{}); err != nil {
		return mapError(err, "failed to delete blob")
	}
	return nil
}

// --- internal types ---

// object wraps a MinIO GetObject response and exposes filestore.Object.
type object struct {
	io.ReadCloser
	info *filestore.BlobInfo
}

func (o *object) Info() *filestore.BlobInfo {
	return o.info
}
