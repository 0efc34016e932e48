// Package server is the HTTP layer of taskrepo. It routes three path shapes
// onto the repository operations and turns their outcomes into status codes
// and JSON bodies.
//
//	GET    /                  list buckets
//	PUT    /{bucket}/         create bucket
//	GET    /{bucket}/         list objects
//	DELETE /{bucket}/         delete bucket
//	GET    /{bucket}/{object} read object
//	PUT    /{bucket}/{object} write object
//	DELETE /{bucket}/{object} delete object
//
// Paths are matched in their escaped form: bucket names reach the repository
// exactly as sent and object names still carry their percent-escapes.
package server

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/koustreak/taskrepo/internal/logger"
	"github.com/koustreak/taskrepo/internal/metadata"
	"github.com/koustreak/taskrepo/internal/repo"
)

// Repository is the set of operations the HTTP layer serves.
type Repository interface {
	ListBuckets(ctx context.Context) ([]metadata.Bucket, error)
	CreateBucket(ctx context.Context, name string) error
	DeleteBucket(ctx context.Context, name string) error
	ListObjects(ctx context.Context, bucket string) ([]metadata.Object, error)
	GetObject(ctx context.Context, bucket, rawName string) (*repo.Content, error)
	PutObject(ctx context.Context, bucket, rawName string, body io.Reader, size int64) error
	DeleteObject(ctx context.Context, bucket, rawName string) error
}

// Server serves a Repository over HTTP.
type Server struct {
	repo    Repository
	log     *logger.Logger
	metrics func(http.Handler) http.Handler
	router  chi.Router
}

// Option customises a Server.
type Option func(*Server)

// WithMetrics instruments every request with mw, typically
// (*metrics.Metrics).Middleware.
func WithMetrics(mw func(http.Handler) http.Handler) Option {
	return func(s *Server) { s.metrics = mw }
}

// New builds the router. It fails if the route table is incomplete.
func New(r Repository, log *logger.Logger, opts ...Option) (*Server, error) {
	if log == nil {
		log = logger.Nop()
	}
	s := &Server{repo: r, log: log}
	for _, opt := range opts {
		opt(s)
	}

	routes := s.routes()
	if err := checkRoutes(routes); err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(log.Middleware)
	if s.metrics != nil {
		router.Use(s.metrics)
	}
	router.Use(middleware.Recoverer)
	router.Use(escapedRoutePath)

	for _, rt := range routes {
		router.Method(rt.Method, rt.Pattern, rt.Handler)
	}
	s.router = router

	log.With().Int("routes", len(routes)).Logger().Debug("Routes registered")
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// escapedRoutePath makes chi match on the escaped path, so that captured
// parameters keep their percent-escapes.
func escapedRoutePath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			rctx.RoutePath = r.URL.EscapedPath()
		}
		next.ServeHTTP(w, r)
	})
}
