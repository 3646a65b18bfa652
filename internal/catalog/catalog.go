// Package catalog maintains the durable, ordered list of document records.
// The whole catalog serializes as one JSON array under a single well-known
// key, kept deliberately separate from the keyed blob store so the two
// persisted artifacts can be reasoned about independently.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pdfdock/pdfdock/internal/storage"
)

// Key is the well-known storage key holding the serialized catalog.
const Key = "documents.json"

// Document is the metadata record describing one uploaded document,
// independent of its binary content. PageCount and SizeBytes are derived
// from the blob and absent until computed.
type Document struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	UploadedAt time.Time `json:"uploaded_at"`
	PageCount  *int      `json:"page_count,omitempty"`
	SizeBytes  *int64    `json:"size_bytes,omitempty"`
}

// Reconciled reports whether both derived fields have been computed.
func (d *Document) Reconciled() bool {
	return d.PageCount != nil && d.SizeBytes != nil
}

// Store defines the metadata catalog operations. All mutations persist
// synchronously before returning.
type Store interface {
	// List returns all records in insertion order. A catalog that has never
	// been written reads as an empty list.
	List(ctx context.Context) ([]Document, error)

	// Replace persists the full record list, overwriting the previous
	// catalog. Idempotent.
	Replace(ctx context.Context, docs []Document) error

	// Append adds a record to the end of the catalog.
	Append(ctx context.Context, doc Document) error

	// Remove deletes the record with the given id, reporting whether it
	// was present.
	Remove(ctx context.Context, id uuid.UUID) (bool, error)

	// Update applies fn to the current record list and persists the result
	// as one atomic read-modify-write. No other mutation can interleave
	// between the read and the write.
	Update(ctx context.Context, fn func([]Document) []Document) error
}

type store struct {
	mu      sync.Mutex
	backing storage.System
	logger  *slog.Logger
}

// New creates a catalog store persisting through the given storage system.
func New(backing storage.System, logger *slog.Logger) Store {
	return &store{
		backing: backing,
		logger:  logger.With("system", "catalog"),
	}
}

func (s *store) List(ctx context.Context) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *store) Replace(ctx context.Context, docs []Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, docs)
}

func (s *store) Append(ctx context.Context, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(ctx)
	if err != nil {
		return err
	}
	return s.save(ctx, append(docs, doc))
}

func (s *store) Remove(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	kept := docs[:0]
	found := false
	for _, doc := range docs {
		if doc.ID == id {
			found = true
			continue
		}
		kept = append(kept, doc)
	}

	if !found {
		return false, nil
	}
	return true, s.save(ctx, kept)
}

func (s *store) Update(ctx context.Context, fn func([]Document) []Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(ctx)
	if err != nil {
		return err
	}
	return s.save(ctx, fn(docs))
}

func (s *store) load(ctx context.Context) ([]Document, error) {
	data, err := s.backing.Retrieve(ctx, Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []Document{}, nil
		}
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return docs, nil
}

func (s *store) save(ctx context.Context, docs []Document) error {
	if docs == nil {
		docs = []Document{}
	}

	data, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	if err := s.backing.Store(ctx, Key, data); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}
