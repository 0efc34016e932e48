package repo

import (
	"encoding/json"
	"time"

	"github.com/koustreak/taskrepo/internal/metadata"
)

// TimeFormat is the layout of every timestamp in a listing.
const TimeFormat = time.RFC3339Nano

// Envelope is a listing response: a JSON object with exactly one key naming
// the collection. The only way to build one is BucketsEnvelope or
// ObjectsEnvelope.
type Envelope struct {
	key   string
	items any
}

// Key returns the collection name ("buckets" or "objects").
func (e Envelope) Key() string { return e.key }

// MarshalJSON renders {"<key>": [...]}.
func (e Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{e.key: e.items})
}

// BucketView is one entry of a bucket listing.
type BucketView struct {
	Name    string `json:"name"`
	Created string `json:"created"`
}

// ObjectView is one entry of an object listing. Content is the blob
// handle's string form, never the bytes.
type ObjectView struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
	Created     string `json:"created"`
}

// BucketsEnvelope renders {"buckets": [{name, created}, ...]}.
func BucketsEnvelope(buckets []metadata.Bucket) Envelope {
	views := make([]BucketView, len(buckets))
	for i, b := range buckets {
		views[i] = BucketView{
			Name:    b.Name,
			Created: b.Created.UTC().Format(TimeFormat),
		}
	}
	return Envelope{key: "buckets", items: views}
}

// ObjectsEnvelope renders {"objects": [{name, content_type, content, created}, ...]}.
func ObjectsEnvelope(objects []metadata.Object) Envelope {
	views := make([]ObjectView, len(objects))
	for i, o := range objects {
		views[i] = ObjectView{
			Name:        o.Name,
			ContentType: o.ContentType,
			Content:     o.Content,
			Created:     o.Created.UTC().Format(TimeFormat),
		}
	}
	return Envelope{key: "objects", items: views}
}
