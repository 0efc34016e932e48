package main

import (
	"context"
	"net/http"
	"time"

	"github.com/koustreak/taskrepo/internal/errs"
	"github.com/koustreak/taskrepo/internal/logger"
)

const readinessTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

// storeCheck names a store for readiness reporting.
type storeCheck struct {
	name  string
	store pinger
}

// readiness answers 200 when every store pings, 503 otherwise. The body is
// always empty; failures go to the log.
func readiness(log *logger.Logger, checks ...storeCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		status := http.StatusOK
		for _, c := range checks {
			if err := c.store.Ping(ctx); err != nil {
				log.WarnWith("Readiness check failed", err, map[string]interface{}{
					"store": c.name,
					"kind":  errs.KindOf(err).String(),
				})
				status = http.StatusServiceUnavailable
			}
		}
		w.WriteHeader(status)
	}
}

// storeHint suggests where to look when a store fails at startup.
func storeHint(err error) string {
	switch {
	case errs.IsPermissionDenied(err):
		return "check the store credentials"
	case errs.IsConnectionFailed(err):
		return "check the store address and that it is running"
	case errs.IsTimeout(err):
		return "the store did not answer in time"
	case errs.IsInvalidInput(err):
		return "check the store connection settings"
	case errs.IsQueryFailed(err):
		return "the store refused a setup statement; check the account's privileges"
	default:
		return ""
	}
}
