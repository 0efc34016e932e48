package memory

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/koustreak/taskrepo/internal/errs"
	"github.com/koustreak/taskrepo/internal/filestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	h, err := s.Put(ctx, strings.NewReader("hello"), 5, filestore.PutOptions{ContentType: "application/unknown"})
	require.NoError(t, err)
	assert.NotEmpty(t, h.String())

	obj, err := s.Get(ctx, h)
	require.NoError(t, err)
	defer obj.Close()

	data, err := io.ReadAll(obj)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.Equal(t, int64(5), obj.Info().Size)
	assert.Equal(t, "application/unknown", obj.Info().ContentType)
	assert.Equal(t, h, obj.Info().Handle)
}

func TestStore_HandlesAreDistinct(t *testing.T) {
	ctx := context.Background()
	s := New()

	h1, err := s.Put(ctx, strings.NewReader("same"), -1, filestore.PutOptions{})
	require.NoError(t, err)
	h2, err := s.Put(ctx, strings.NewReader("same"), -1, filestore.PutOptions{})
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "identical payloads get separate blobs")
	assert.Equal(t, 2, s.Len())
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := New()

	h, err := s.Put(ctx, strings.NewReader("bye"), 3, filestore.PutOptions{})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, h))
	assert.Zero(t, s.Len())

	_, err = s.Get(ctx, h)
	assert.True(t, errs.IsNotFound(err))
	assert.True(t, errs.IsNotFound(s.Delete(ctx, h)))
}

func TestStore_PutCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Put(ctx, strings.NewReader("x"), 1, filestore.PutOptions{})
	assert.True(t, errs.IsTimeout(err))
}
