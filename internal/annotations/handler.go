package annotations

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/pdfdock/pdfdock/pkg/handlers"
	"github.com/pdfdock/pdfdock/pkg/routes"
)

// Handler provides HTTP endpoints for annotation operations.
type Handler struct {
	model  *Model
	logger *slog.Logger
}

// NewHandler creates an annotation handler over the given model.
func NewHandler(model *Model, logger *slog.Logger) *Handler {
	return &Handler{
		model:  model,
		logger: logger.With("handler", "annotations"),
	}
}

// Routes returns the annotation endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/annotations",
		Description: "Page annotations and selection",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "GET", Pattern: "/selected", Handler: h.Selected},
			{Method: "PUT", Pattern: "/selected", Handler: h.UpdateSelected},
			{Method: "POST", Pattern: "/select", Handler: h.Select},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

type createRequest struct {
	Type       string    `json:"type"`
	DocumentID uuid.UUID `json:"document_id"`
	Page       int       `json:"page"`
	Position   Point     `json:"position"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	variant, err := ParseVariant(req.Type)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, MapHTTPStatus, err)
		return
	}

	ann, err := h.model.Create(variant, req.DocumentID, req.Page, req.Position)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, MapHTTPStatus, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, ann)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	documentID, err := uuid.Parse(r.URL.Query().Get("document_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			fmt.Errorf("document_id: %w", err))
		return
	}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest,
				fmt.Errorf("page: %w", err))
			return
		}
		handlers.RespondJSON(w, http.StatusOK, h.model.ForPage(documentID, page))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.model.ForDocument(documentID))
}

type selectRequest struct {
	ID *uuid.UUID `json:"id"`
}

func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if req.ID == nil {
		h.model.Deselect()
		handlers.RespondJSON(w, http.StatusOK, nil)
		return
	}

	ann, err := h.model.Select(*req.ID)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, MapHTTPStatus, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ann)
}

func (h *Handler) Selected(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.model.Selected())
}

// UpdateSelected applies the request body as a patch to the selection. A
// JSON null body deletes the selected annotation instead. The body decodes
// inside the model, against the variant of whatever is selected at apply
// time.
func (h *Handler) UpdateSelected(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	ann, err := h.model.ApplySelected(body)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, MapHTTPStatus, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ann)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	h.model.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}
