package logger

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Middleware writes one access-log line per request and stores a
// request-scoped child logger in the request context, retrievable with
// FromContextOr. It must run after chi's RequestID middleware to pick up the id.
func (l *Logger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		reqLog := l.zlog.With().
			Str("request_id", middleware.GetReqID(r.Context())).
			Logger()
		ctx := reqLog.WithContext(r.Context())

		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			reqLog.Info().
				Str("method", r.Method).
				Str("path", r.URL.EscapedPath()).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request handled")
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}
