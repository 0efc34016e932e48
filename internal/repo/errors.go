package repo

import (
	"net/url"

	"github.com/koustreak/taskrepo/internal/errs"
)

var (
	errBucketNotFound = errs.New(errs.ErrKindNotFound, "bucket does not exist")
	errBucketExists   = errs.New(errs.ErrKindConflict, "bucket already exists")
	errObjectNotFound = errs.New(errs.ErrKindNotFound, "object does not exist")
	errObjectExists   = errs.New(errs.ErrKindConflict, "object name already in use")
)

// rejected reports whether err is a caller-caused failure rather than a store fault.
func rejected(err error) bool {
	switch errs.KindOf(err) {
	case errs.ErrKindNotFound, errs.ErrKindConflict, errs.ErrKindInvalidInput:
		return true
	}
	return false
}

// storeFault reports a failure of either store as a server-side fault,
// whatever kind the store gave it.
func storeFault(msg string, err error) error {
	return errs.Wrap(errs.ErrKindQueryFailed, msg, err)
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return errs.KindOf(err).String()
}

// bucketName checks a bucket name taken verbatim from the path.
func bucketName(name string) (string, error) {
	if name == "" {
		return "", errs.New(errs.ErrKindInvalidInput, "bucket name is empty")
	}
	return name, nil
}

// objectName percent-decodes a raw object path segment.
func objectName(raw string) (string, error) {
	name, err := url.PathUnescape(raw)
	if err != nil {
		return "", errs.Wrap(errs.ErrKindInvalidInput, "malformed object name", err)
	}
	if name == "" {
		return "", errs.New(errs.ErrKindInvalidInput, "object name is empty")
	}
	return name, nil
}
