package metadata

import (
	"context"
	"testing"
	"time"

	"github.com/koustreak/taskrepo/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Buckets(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	buckets, err := s.FindBuckets(ctx)
	require.NoError(t, err)
	assert.Empty(t, buckets)

	require.NoError(t, s.InsertBucket(ctx, Bucket{Name: "shop", Created: now}))
	require.NoError(t, s.InsertBucket(ctx, Bucket{Name: "archive", Created: now}))

	err = s.InsertBucket(ctx, Bucket{Name: "shop", Created: now})
	assert.True(t, errs.IsConflict(err))

	n, err := s.CountBuckets(ctx, "shop")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	b, err := s.FindBucket(ctx, "shop")
	require.NoError(t, err)
	assert.Equal(t, now, b.Created)

	buckets, err = s.FindBuckets(ctx)
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, "shop", buckets[0].Name, "insertion order is kept")
	assert.Equal(t, "archive", buckets[1].Name)

	require.NoError(t, s.RemoveBucket(ctx, "shop"))
	_, err = s.FindBucket(ctx, "shop")
	assert.True(t, errs.IsNotFound(err))
	assert.True(t, errs.IsNotFound(s.RemoveBucket(ctx, "shop")))

	n, err = s.CountBuckets(ctx, "shop")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemoryStore_Objects(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	widget := Object{Name: "widget.txt", BucketName: "shop", ContentType: "application/unknown", Content: "h1"}
	gadget := Object{Name: "gadget.txt", BucketName: "shop", ContentType: "application/unknown", Content: "h2"}
	other := Object{Name: "notes.md", BucketName: "archive", ContentType: "application/unknown", Content: "h3"}

	for _, o := range []Object{widget, gadget, other} {
		require.NoError(t, s.InsertObject(ctx, o))
	}

	// names are unique across buckets
	err := s.InsertObject(ctx, Object{Name: "widget.txt", BucketName: "archive"})
	assert.True(t, errs.IsConflict(err))

	objs, err := s.FindObjects(ctx, "shop")
	require.NoError(t, err)
	assert.Equal(t, []Object{widget, gadget}, objs)

	objs, err = s.FindObjects(ctx, "missing")
	require.NoError(t, err)
	assert.NotNil(t, objs)
	assert.Empty(t, objs)

	got, err := s.FindObject(ctx, "notes.md")
	require.NoError(t, err)
	assert.Equal(t, other, *got)

	n, err := s.CountObjects(ctx, "widget.txt")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, s.RemoveObject(ctx, "widget.txt"))
	_, err = s.FindObject(ctx, "widget.txt")
	assert.True(t, errs.IsNotFound(err))
	assert.True(t, errs.IsNotFound(s.RemoveObject(ctx, "widget.txt")))
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.InsertBucket(ctx, Bucket{Name: "shop"}))

	b, err := s.FindBucket(ctx, "shop")
	require.NoError(t, err)
	b.Name = "changed"

	_, err = s.FindBucket(ctx, "shop")
	assert.NoError(t, err)
}
