package handler

import (
	"log/slog"
	"net/http"

	svcContent "campuscloud/internal/domain/services/content"
	"campuscloud/internal/httputil"
)

// FolderHandler handles HTTP requests for folder creation
type FolderHandler struct {
	folderService svcContent.FolderService
	nodeService   svcContent.NodeService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService svcContent.FolderService, nodeService svcContent.NodeService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		nodeService:   nodeService,
		logger:        logger,
	}
}

// CreateFolder creates a new folder. A duplicate sibling name returns the
// existing folder with 409 so clients can link to it directly.
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req svcContent.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := httputil.GetUserID(r)

	folder, err := h.folderService.CreateFolder(r.Context(), userID, &req)
	if err != nil {
		HandleCreateConflict(w, err, func(resourceID string) (any, error) {
			return h.nodeService.GetNode(r.Context(), userID, resourceID)
		})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}
