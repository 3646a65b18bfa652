package documents

import (
	"context"

	"github.com/google/uuid"
	"github.com/pdfdock/pdfdock/internal/catalog"
)

type derived struct {
	pageCount int
	sizeBytes int64
}

// reconcile back-fills page_count and size_bytes for records still lacking
// them by decoding the corresponding blobs. A record whose blob is missing
// or fails to decode is kept bare and logged; the failure never aborts the
// pass or propagates to the List caller.
//
// Blobs are decoded against a snapshot, but the merge runs inside a single
// catalog read-modify-write, so records added, removed, or mutated mid-pass
// survive intact (per-record last-writer-wins).
func (r *repo) reconcile(ctx context.Context, docs []catalog.Document) ([]catalog.Document, error) {
	updates := make(map[uuid.UUID]derived)
	for _, doc := range docs {
		if doc.Reconciled() {
			continue
		}

		data, err := r.blobs.Retrieve(ctx, blobKey(doc.ID))
		if err != nil {
			r.logger.Warn("reconciliation skipped record without blob",
				"id", doc.ID, "name", doc.Name, "error", err)
			continue
		}

		count, err := pageCount(data)
		if err != nil {
			r.logger.Warn("reconciliation skipped undecodable record",
				"id", doc.ID, "name", doc.Name, "error", err)
			continue
		}

		updates[doc.ID] = derived{pageCount: count, sizeBytes: int64(len(data))}
	}

	if len(updates) == 0 {
		return docs, nil
	}

	var merged []catalog.Document
	applied := 0
	err := r.catalog.Update(ctx, func(latest []catalog.Document) []catalog.Document {
		for i := range latest {
			if latest[i].Reconciled() {
				continue
			}
			if d, ok := updates[latest[i].ID]; ok {
				count, size := d.pageCount, d.sizeBytes
				latest[i].PageCount = &count
				latest[i].SizeBytes = &size
				applied++
			}
		}
		merged = latest
		return latest
	})
	if err != nil {
		return nil, r.mapStorageError(err)
	}

	if applied > 0 {
		r.logger.Info("catalog reconciled", "updated", applied)
	}
	return merged, nil
}
