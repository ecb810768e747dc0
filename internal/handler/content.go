package handler

import (
	"log/slog"
	"net/http"
	"time"

	models "campuscloud/internal/domain/models/content"
	svcContent "campuscloud/internal/domain/services/content"
	"campuscloud/internal/httputil"
)

// ContentHandler handles HTTP requests for folder listings
type ContentHandler struct {
	resolver svcContent.ContentResolver
	logger   *slog.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(resolver svcContent.ContentResolver, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		resolver: resolver,
		logger:   logger,
	}
}

// ListContent returns the effective listing of a folder for the viewer.
// Query parameters: scope_kind, scope_id (required), parent_id (optional;
// absent targets the scope root).
func (h *ContentHandler) ListContent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	scope := models.Scope{
		Kind: models.ScopeKind(q.Get("scope_kind")),
		ID:   q.Get("scope_id"),
	}
	if scope.ID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "scope_kind and scope_id are required")
		return
	}

	var folderID *string
	if v := q.Get("parent_id"); v != "" {
		folderID = &v
	}

	userID := httputil.GetUserID(r)

	listing, err := h.resolver.Resolve(r.Context(), userID, scope, folderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, listing)
}

// HealthCheck reports service liveness
func (h *ContentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now(),
	})
}
