package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/koustreak/taskrepo/internal/errs"
	"github.com/koustreak/taskrepo/internal/filestore/memory"
	"github.com/koustreak/taskrepo/internal/logger"
	"github.com/koustreak/taskrepo/internal/metadata"
	"github.com/stretchr/testify/assert"
)

type downStore struct{ err error }

func (d downStore) Ping(context.Context) error { return d.err }

func TestReadiness(t *testing.T) {
	refused := errs.Wrap(errs.ErrKindConnectionFailed, "ping failed", errors.New("dial tcp: refused"))

	tests := []struct {
		name   string
		checks []storeCheck
		want   int
	}{
		{
			name: "both stores up",
			checks: []storeCheck{
				{"metadata", metadata.NewMemoryStore()},
				{"blobs", memory.New()},
			},
			want: http.StatusOK,
		},
		{
			name: "blob store down",
			checks: []storeCheck{
				{"metadata", metadata.NewMemoryStore()},
				{"blobs", downStore{refused}},
			},
			want: http.StatusServiceUnavailable,
		},
		{
			name: "metadata store down",
			checks: []storeCheck{
				{"metadata", downStore{refused}},
				{"blobs", memory.New()},
			},
			want: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			readiness(logger.Nop(), tt.checks...).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			assert.Equal(t, tt.want, rec.Code)
			assert.Empty(t, rec.Body.String())
		})
	}
}

func TestReadiness_LogsFailingStore(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(&logger.Config{Level: "warn", Format: "json", Output: buf})

	down := downStore{errs.New(errs.ErrKindTimeout, "ping timed out")}
	rec := httptest.NewRecorder()
	readiness(log, storeCheck{"blobs", down}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, buf.String(), `"store":"blobs"`)
	assert.Contains(t, buf.String(), `"kind":"timeout"`)
}

func TestStoreHint(t *testing.T) {
	tests := []struct {
		kind errs.ErrKind
		want string
	}{
		{errs.ErrKindPermissionDenied, "credentials"},
		{errs.ErrKindConnectionFailed, "address"},
		{errs.ErrKindTimeout, "in time"},
		{errs.ErrKindInvalidInput, "connection settings"},
		{errs.ErrKindQueryFailed, "privileges"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := fmt.Errorf("opening store: %w", errs.New(tt.kind, "failed"))
			assert.Contains(t, storeHint(err), tt.want)
		})
	}

	assert.Empty(t, storeHint(errors.New("plain")))
}
