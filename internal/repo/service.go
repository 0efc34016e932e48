// Package repo implements the bucket and object operations of the repository.
//
// A Service orchestrates two collaborators: a metadata.Store holding bucket
// and object records, and a filestore.Store holding object payloads. Every
// multi-step operation is a plain sequence of independent store calls with no
// transaction around it; concurrent requests on the same name may interleave.
//
// Failures the caller caused are reported as *errs.Error with kind
// ErrKindNotFound, ErrKindConflict or ErrKindInvalidInput. Store failures are
// returned as-is.
package repo

import (
	"context"
	"time"

	"github.com/koustreak/taskrepo/internal/filestore"
	"github.com/koustreak/taskrepo/internal/logger"
	"github.com/koustreak/taskrepo/internal/metadata"
)

// PlaceholderContentType is stored for every object; client-supplied
// content types are not honoured.
const PlaceholderContentType = "application/unknown"

// DefaultUploader tags every blob written by the service.
const DefaultUploader = "taskrepo"

// Observer receives one call per finished operation. The outcome is
// "ok", or the errs.ErrKind name of the failure.
type Observer interface {
	ObserveOperation(op, outcome string)
}

// Service is the repository core. It holds no locks of its own and is safe
// for concurrent use as long as its stores are.
type Service struct {
	meta     metadata.Store
	blobs    filestore.Store
	log      *logger.Logger
	now      func() time.Time
	uploader string
	observer Observer
}

// Option customises a Service.
type Option func(*Service)

// WithLogger sets the fallback logger used when the request context carries none.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithUploader sets the uploader tag written as blob metadata.
func WithUploader(name string) Option {
	return func(s *Service) { s.uploader = name }
}

// WithObserver reports every operation outcome to o.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// New builds a Service over the given stores.
func New(meta metadata.Store, blobs filestore.Store, opts ...Option) *Service {
	s := &Service{
		meta:     meta,
		blobs:    blobs,
		log:      logger.Nop(),
		now:      time.Now,
		uploader: DefaultUploader,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) logFor(ctx context.Context) *logger.Logger {
	return logger.FromContextOr(ctx, s.log)
}

func (s *Service) observe(op string, err error) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveOperation(op, outcome(err))
}
