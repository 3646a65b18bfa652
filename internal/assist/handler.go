package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/pdfdock/pdfdock/internal/documents"
	"github.com/pdfdock/pdfdock/pkg/handlers"
	"github.com/pdfdock/pdfdock/pkg/routes"
)

// ContentProvider is the single document capability the assistant consumes.
type ContentProvider interface {
	Content(ctx context.Context, id uuid.UUID) ([]byte, error)
}

// Handler provides HTTP endpoints for assistant operations.
type Handler struct {
	sys    System
	docs   ContentProvider
	logger *slog.Logger
}

// NewHandler creates an assistant handler.
func NewHandler(sys System, docs ContentProvider, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		docs:   docs,
		logger: logger.With("handler", "assist"),
	}
}

// Routes returns the assistant endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/assist",
		Description: "Document assistant",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/summarize", Handler: h.Summarize},
			{Method: "POST", Pattern: "/ask", Handler: h.Ask},
			{Method: "POST", Pattern: "/chat", Handler: h.Chat},
			{Method: "POST", Pattern: "/command", Handler: h.Command},
		},
	}
}

type summarizeRequest struct {
	DocumentID uuid.UUID `json:"document_id"`
}

func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	text, err := h.documentContext(r.Context(), req.DocumentID)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, documents.MapHTTPStatus, err)
		return
	}

	summary, err := h.sys.Summarize(r.Context(), text)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, MapHTTPStatus, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

type askRequest struct {
	DocumentID uuid.UUID `json:"document_id"`
	Question   string    `json:"question"`
}

func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	docContext, err := h.documentContext(r.Context(), req.DocumentID)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, documents.MapHTTPStatus, err)
		return
	}

	answer, err := h.sys.Answer(r.Context(), req.Question, docContext)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, MapHTTPStatus, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

type chatRequestBody struct {
	DocumentID *uuid.UUID `json:"document_id,omitempty"`
	Messages   []Message  `json:"messages"`
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var docContext string
	if req.DocumentID != nil {
		text, err := h.documentContext(r.Context(), *req.DocumentID)
		if err != nil {
			handlers.RespondDomainError(w, h.logger, documents.MapHTTPStatus, err)
			return
		}
		docContext = text
	}

	reply, err := h.sys.Chat(r.Context(), req.Messages, docContext)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, MapHTTPStatus, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

type commandRequest struct {
	Utterance string `json:"utterance"`
}

func (h *Handler) Command(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	instruction, err := h.sys.Command(r.Context(), req.Utterance)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, MapHTTPStatus, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]string{"instruction": instruction})
}

// documentContext fetches the stored bytes for id and renders the context
// string handed to the assistant. Missing records and missing blobs surface
// as repository errors rather than empty context.
//
// TODO: extract real page text via pdfcpu's content extraction instead of
// the size descriptor.
func (h *Handler) documentContext(ctx context.Context, id uuid.UUID) (string, error) {
	data, err := h.docs.Content(ctx, id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Document %s: %d bytes of PDF content", id, len(data)), nil
}
