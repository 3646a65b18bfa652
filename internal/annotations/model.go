package annotations

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Model holds the session's annotation set and its single selection. All
// methods are safe for concurrent use; annotations handed out are copies,
// so callers never observe concurrent mutation.
type Model struct {
	mu          sync.Mutex
	logger      *slog.Logger
	order       []uuid.UUID
	annotations map[uuid.UUID]*Annotation
	selected    *uuid.UUID
}

// NewModel creates an empty annotation model.
func NewModel(logger *slog.Logger) *Model {
	return &Model{
		logger:      logger.With("system", "annotations"),
		annotations: make(map[uuid.UUID]*Annotation),
	}
}

// Handler returns the HTTP handler bound to this model.
func (m *Model) Handler() *Handler {
	return NewHandler(m, m.logger)
}

// Create adds an annotation of the given variant with that variant's tool
// defaults, anchored at position on the given page.
func (m *Model) Create(variant Variant, documentID uuid.UUID, page int, position Point) (*Annotation, error) {
	props := defaultProps(variant)
	if props == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidVariant, variant)
	}
	if page < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}

	ann := &Annotation{
		ID:         uuid.New(),
		DocumentID: documentID,
		Variant:    variant,
		Page:       page,
		Position:   position,
		Props:      props,
	}

	m.mu.Lock()
	m.order = append(m.order, ann.ID)
	m.annotations[ann.ID] = ann
	m.mu.Unlock()

	m.logger.Info("annotation created",
		"id", ann.ID, "type", variant, "document_id", documentID, "page", page)
	return ann.clone(), nil
}

// Find returns the annotation with the given id, or ErrNotFound.
func (m *Model) Find(id uuid.UUID) (*Annotation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ann, ok := m.annotations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return ann.clone(), nil
}

// Select makes the given annotation the current selection, replacing any
// previous one. At most one annotation is selected at a time.
func (m *Model) Select(id uuid.UUID) (*Annotation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ann, ok := m.annotations[id]
	if !ok {
		return nil, ErrNotFound
	}

	selected := id
	m.selected = &selected
	return ann.clone(), nil
}

// Deselect clears the current selection. Clearing an empty selection is a
// no-op.
func (m *Model) Deselect() {
	m.mu.Lock()
	m.selected = nil
	m.mu.Unlock()
}

// Selected returns the currently selected annotation, or nil when nothing
// is selected.
func (m *Model) Selected() *Annotation {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.selected == nil {
		return nil
	}
	return m.annotations[*m.selected].clone()
}

// UpdateSelected applies a partial update to the selected annotation. A nil
// patch deletes the selection instead. With no selection the call is a
// silent no-op; a patch for the wrong variant returns ErrVariantMismatch
// and changes nothing.
func (m *Model) UpdateSelected(patch Patch) (*Annotation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.patchSelectedLocked(patch)
}

// ApplySelected decodes raw as a patch for the selected annotation's variant
// and applies it, all under one lock, so the selection cannot change between
// choosing the patch type and applying it. A JSON null payload deletes the
// selection.
func (m *Model) ApplySelected(raw []byte) (*Annotation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.selected == nil {
		return nil, nil
	}

	var patch Patch
	if !isJSONNull(raw) {
		ann := m.annotations[*m.selected]
		decoded, err := decodePatch(ann.Variant, raw)
		if err != nil {
			return nil, err
		}
		patch = decoded
	}
	return m.patchSelectedLocked(patch)
}

func (m *Model) patchSelectedLocked(patch Patch) (*Annotation, error) {
	if m.selected == nil {
		return nil, nil
	}
	ann := m.annotations[*m.selected]

	if patch == nil {
		m.removeLocked(ann.ID)
		m.selected = nil
		m.logger.Info("annotation deleted via selection", "id", ann.ID)
		return nil, nil
	}

	if !patch.appliesTo(ann.Variant) {
		return nil, mismatch(ann.Props, patch)
	}
	if err := apply(ann.Props, patch); err != nil {
		return nil, err
	}
	return ann.clone(), nil
}

// Delete removes the annotation with the given id. Deleting an unknown id
// is a no-op; deleting the selected annotation clears the selection.
func (m *Model) Delete(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.annotations[id]; !ok {
		return
	}

	m.removeLocked(id)
	if m.selected != nil && *m.selected == id {
		m.selected = nil
	}
	m.logger.Info("annotation deleted", "id", id)
}

// ForPage returns the annotations anchored on one page of one document, in
// creation order.
func (m *Model) ForPage(documentID uuid.UUID, page int) []Annotation {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []Annotation{}
	for _, id := range m.order {
		ann := m.annotations[id]
		if ann.DocumentID == documentID && ann.Page == page {
			out = append(out, *ann.clone())
		}
	}
	return out
}

// ForDocument returns every annotation of one document, in creation order.
func (m *Model) ForDocument(documentID uuid.UUID) []Annotation {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []Annotation{}
	for _, id := range m.order {
		ann := m.annotations[id]
		if ann.DocumentID == documentID {
			out = append(out, *ann.clone())
		}
	}
	return out
}

// Clear drops every annotation belonging to the given document, clearing
// the selection if it pointed into that document.
func (m *Model) Clear(documentID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.order[:0]
	for _, id := range m.order {
		if m.annotations[id].DocumentID == documentID {
			delete(m.annotations, id)
			if m.selected != nil && *m.selected == id {
				m.selected = nil
			}
			continue
		}
		kept = append(kept, id)
	}
	m.order = kept
}

func (m *Model) removeLocked(id uuid.UUID) {
	delete(m.annotations, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}
