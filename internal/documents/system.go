package documents

import (
	"context"

	"github.com/google/uuid"
	"github.com/pdfdock/pdfdock/internal/catalog"
)

// System defines the document management operations. Implementations keep
// the metadata catalog and blob store consistent under every code path.
type System interface {
	Handler() *Handler

	// List returns all document records in upload order, running the
	// reconciliation pass for records still lacking derived fields.
	List(ctx context.Context) ([]catalog.Document, error)

	// Find returns the record for id, or ErrNotFound.
	Find(ctx context.Context, id uuid.UUID) (*catalog.Document, error)

	// Create stores the blob first, then appends the catalog record. If the
	// blob write fails no record is created; if the record append fails the
	// blob is removed again.
	Create(ctx context.Context, cmd CreateCommand) (*catalog.Document, error)

	// Content returns the raw stored bytes for id. This is the single
	// capability exposed to AI-facing collaborators.
	Content(ctx context.Context, id uuid.UUID) ([]byte, error)

	// Delete removes the blob, then the record. A failing blob delete
	// leaves the record in place and returns an attributable error.
	Delete(ctx context.Context, id uuid.UUID) error
}
