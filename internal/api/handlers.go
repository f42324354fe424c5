package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/halmos/ponens/internal/apperr"
	"github.com/halmos/ponens/internal/verifyservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *verifyservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *verifyservice.Service) *Handler {
	return &Handler{svc: svc}
}

// docPath extracts the document path from the URL (everything after
// /api/documents/). Supports encoded slashes (e.g. batch%2Fday1.proof).
func docPath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// ListVerdicts handles GET /api/verdicts.
func (h *Handler) ListVerdicts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	status := q.Get("status")

	rows, total, err := h.svc.ListVerdicts(r.Context(), limit, offset, status)
	if err != nil {
		slog.Error("list verdicts failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, VerdictListResponse{Verdicts: rows, Total: total})
}

// Summary handles GET /api/summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summary(r.Context())
	if err != nil {
		slog.Error("summary failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// GetDocument handles GET /api/documents/*.
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	path := docPath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	doc, err := h.svc.GetDocument(r.Context(), path)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get document failed", slog.String("path", path), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// PutDocument handles PUT /api/documents/*.
func (h *Handler) PutDocument(w http.ResponseWriter, r *http.Request) {
	path := docPath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("content is required"))
		return
	}
	doc, err := h.svc.PutDocument(r.Context(), path, []byte(req.Content))
	if err != nil {
		if strings.Contains(err.Error(), "must end with") {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return
		}
		slog.Error("put document failed", slog.String("path", path), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// DeleteDocument handles DELETE /api/documents/*.
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	path := docPath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	if err := h.svc.DeleteDocument(r.Context(), path); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("delete document failed", slog.String("path", path), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Verify handles POST /api/verify: ad-hoc verification of a document body,
// nothing persisted.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("content is required"))
		return
	}
	results, err := h.svc.VerifyContent(r.Context(), []byte(req.Content))
	if err != nil {
		slog.Error("verify failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, VerifyResponse{Results: results})
}
