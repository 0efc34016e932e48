package repo

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/koustreak/taskrepo/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketsEnvelope(t *testing.T) {
	created := time.Date(2026, 10, 18, 9, 30, 0, 500, time.UTC)
	data, err := json.Marshal(BucketsEnvelope([]metadata.Bucket{{Name: "shop", Created: created}}))
	require.NoError(t, err)

	assert.JSONEq(t, `{"buckets":[{"name":"shop","created":"2026-10-18T09:30:00.0000005Z"}]}`, string(data))
}

func TestBucketsEnvelope_Empty(t *testing.T) {
	data, err := json.Marshal(BucketsEnvelope(nil))
	require.NoError(t, err)
	assert.Equal(t, `{"buckets":[]}`, string(data))
}

func TestObjectsEnvelope(t *testing.T) {
	created := time.Date(2026, 10, 18, 11, 30, 0, 0, time.FixedZone("CEST", 2*60*60))
	env := ObjectsEnvelope([]metadata.Object{{
		Name:        "widget.txt",
		BucketName:  "shop",
		ContentType: PlaceholderContentType,
		Content:     "5f1c",
		Created:     created,
	}})
	assert.Equal(t, "objects", env.Key())

	data, err := json.Marshal(env)
	require.NoError(t, err)

	var got map[string][]map[string]string
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 1, "exactly one top-level key")
	assert.Equal(t, []map[string]string{{
		"name":         "widget.txt",
		"content_type": "application/unknown",
		"content":      "5f1c",
		"created":      "2026-10-18T09:30:00Z",
	}}, got["objects"])
}
