package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/koustreak/taskrepo/internal/errs"
	"github.com/koustreak/taskrepo/internal/logger"
	"github.com/koustreak/taskrepo/internal/repo"
)

const jsonContentType = "application/json; charset=UTF-8"

func (s *Server) listBuckets(w http.ResponseWriter, r *http.Request) {
	buckets, err := s.repo.ListBuckets(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, repo.BucketsEnvelope(buckets))
}

func (s *Server) createBucket(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.CreateBucket(r.Context(), chi.URLParam(r, paramBucket)); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) listObjects(w http.ResponseWriter, r *http.Request) {
	objects, err := s.repo.ListObjects(r.Context(), chi.URLParam(r, paramBucket))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, repo.ObjectsEnvelope(objects))
}

func (s *Server) deleteBucket(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.DeleteBucket(r.Context(), chi.URLParam(r, paramBucket)); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getObject(w http.ResponseWriter, r *http.Request) {
	content, err := s.repo.GetObject(r.Context(), chi.URLParam(r, paramBucket), chi.URLParam(r, paramObject))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer content.Body.Close()

	w.Header().Set("Content-Type", content.ContentType)
	if content.Size >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(content.Size, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, content.Body); err != nil {
		// headers are gone; all that is left is to record it
		s.logFor(r).ErrorWith("Streaming object content failed", err, nil)
	}
}

func (s *Server) putObject(w http.ResponseWriter, r *http.Request) {
	err := s.repo.PutObject(r.Context(),
		chi.URLParam(r, paramBucket), chi.URLParam(r, paramObject),
		r.Body, r.ContentLength)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) deleteObject(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.DeleteObject(r.Context(), chi.URLParam(r, paramBucket), chi.URLParam(r, paramObject)); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// writeJSON renders v pretty-printed with a 200 status.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		s.fail(w, r, errs.Wrap(errs.ErrKindUnknown, "encoding response", err))
		return
	}
	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// fail answers with the status matching err and an empty body.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logFor(r).ErrorWith("Request failed", err, map[string]interface{}{
			"kind": errs.KindOf(err).String(),
		})
	}
	w.WriteHeader(status)
}

func (s *Server) logFor(r *http.Request) *logger.Logger {
	return logger.FromContextOr(r.Context(), s.log)
}

// statusFor maps error kinds onto HTTP status codes.
func statusFor(err error) int {
	switch errs.KindOf(err) {
	case errs.ErrKindNotFound:
		return http.StatusNotFound
	case errs.ErrKindConflict:
		return http.StatusConflict
	case errs.ErrKindInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
