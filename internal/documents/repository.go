package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfdock/pdfdock/internal/catalog"
	"github.com/pdfdock/pdfdock/internal/storage"
)

type repo struct {
	catalog       catalog.Store
	blobs         storage.System
	logger        *slog.Logger
	maxUploadSize int64
}

// New creates a document repository over the metadata catalog and blob store.
func New(cat catalog.Store, blobs storage.System, logger *slog.Logger, maxUploadSize int64) System {
	return &repo{
		catalog:       cat,
		blobs:         blobs,
		logger:        logger.With("system", "documents"),
		maxUploadSize: maxUploadSize,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.maxUploadSize)
}

func (r *repo) List(ctx context.Context) ([]catalog.Document, error) {
	docs, err := r.catalog.List(ctx)
	if err != nil {
		return nil, r.mapStorageError(err)
	}
	return r.reconcile(ctx, docs)
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*catalog.Document, error) {
	docs, err := r.catalog.List(ctx)
	if err != nil {
		return nil, r.mapStorageError(err)
	}

	for i := range docs {
		if docs[i].ID == id {
			return &docs[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*catalog.Document, error) {
	doc := catalog.Document{
		ID:         uuid.New(),
		Name:       cmd.Name,
		UploadedAt: time.Now().UTC(),
	}

	// The blob goes in first: the catalog record is the commit point, so a
	// failed blob write leaves no orphan metadata behind.
	if err := r.blobs.Store(ctx, blobKey(doc.ID), cmd.Data); err != nil {
		return nil, fmt.Errorf("store blob: %w", r.mapStorageError(err))
	}

	// Derived fields attach eagerly when the upload decodes; otherwise the
	// record stays bare and the reconciliation pass retries on load.
	if count, err := pageCount(cmd.Data); err != nil {
		r.logger.Warn("page count extraction deferred to reconciliation",
			"id", doc.ID, "name", doc.Name, "error", err)
	} else {
		size := int64(len(cmd.Data))
		doc.PageCount = &count
		doc.SizeBytes = &size
	}

	if err := r.catalog.Append(ctx, doc); err != nil {
		if delErr := r.blobs.Delete(ctx, blobKey(doc.ID)); delErr != nil {
			r.logger.Error("blob cleanup failed after catalog error",
				"id", doc.ID, "error", delErr)
		}
		return nil, fmt.Errorf("append record: %w", r.mapStorageError(err))
	}

	r.logger.Info("document created", "id", doc.ID, "name", doc.Name, "size_bytes", len(cmd.Data))
	return &doc, nil
}

func (r *repo) Content(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if _, err := r.Find(ctx, id); err != nil {
		return nil, err
	}

	data, err := r.blobs.Retrieve(ctx, blobKey(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			r.logger.Error("catalog record has no blob", "id", id)
			return nil, ErrContentMissing
		}
		return nil, r.mapStorageError(err)
	}
	return data, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.Find(ctx, id); err != nil {
		return err
	}

	// Blob first; the record survives a failed blob delete so the caller
	// sees the failure instead of a silently orphaned blob.
	if err := r.blobs.Delete(ctx, blobKey(id)); err != nil {
		return fmt.Errorf("delete blob: %w", r.mapStorageError(err))
	}

	if _, err := r.catalog.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove record: %w", r.mapStorageError(err))
	}

	r.logger.Info("document deleted", "id", id)
	return nil
}

func (r *repo) mapStorageError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, storage.ErrUnavailable) || errors.Is(err, storage.ErrPermissionDenied) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return err
}

func blobKey(id uuid.UUID) string {
	return fmt.Sprintf("blobs/%s", id.String())
}

func pageCount(data []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	return count, nil
}
