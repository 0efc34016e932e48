package repo

import (
	"context"
	"io"

	"github.com/koustreak/taskrepo/internal/errs"
	"github.com/koustreak/taskrepo/internal/filestore"
	"github.com/koustreak/taskrepo/internal/logger"
	"github.com/koustreak/taskrepo/internal/metadata"
)

// commitObject and discardObject are the only places that touch both stores.
// Each runs two independent calls in a fixed order with nothing undone when
// the second call fails. Store errors leave here as ErrKindQueryFailed, so a
// blob the store cannot find is never reported as a missing object. Record
// errors the caller can act on keep their kind.

// commitObject writes the payload, then the record pointing at it.
// A failed record insert leaves the blob orphaned.
func (s *Service) commitObject(ctx context.Context, log *logger.Logger, obj metadata.Object, body io.Reader, size int64) error {
	h, err := s.blobs.Put(ctx, body, size, filestore.PutOptions{
		ContentType: obj.ContentType,
		Metadata:    map[string]string{"original-user": s.uploader},
	})
	if err != nil {
		return storeFault("object content not stored", err)
	}

	obj.Content = h.String()
	if err := s.meta.InsertObject(ctx, obj); err != nil {
		log.ErrorWith("Object record not stored, blob orphaned", err, map[string]interface{}{
			"content": obj.Content,
		})
		switch errs.KindOf(err) {
		case errs.ErrKindConflict:
			// a concurrent put of the same name won the insert
			return errObjectExists
		case errs.ErrKindInvalidInput:
			// the name does not fit the metadata column
			return errs.Wrap(errs.ErrKindInvalidInput, "object name rejected", err)
		}
		return storeFault("object record not stored", err)
	}
	return nil
}

// discardObject removes the record, then the payload it points at.
// A failed blob delete leaves the blob orphaned with no record of it.
func (s *Service) discardObject(ctx context.Context, log *logger.Logger, obj metadata.Object) error {
	if err := s.meta.RemoveObject(ctx, obj.Name); err != nil {
		if errs.IsNotFound(err) {
			// a concurrent delete removed the record first
			return errObjectNotFound
		}
		return storeFault("object record not removed", err)
	}

	if err := s.blobs.Delete(ctx, filestore.Handle(obj.Content)); err != nil {
		log.ErrorWith("Object record removed, blob orphaned", err, map[string]interface{}{
			"content": obj.Content,
		})
		return storeFault("object content not removed", err)
	}
	return nil
}
