package handler

import (
	"log/slog"
	"net/http"

	svcContent "campuscloud/internal/domain/services/content"
	"campuscloud/internal/httputil"
)

// FileHandler handles HTTP requests for file registration
type FileHandler struct {
	fileService svcContent.FileService
	nodeService svcContent.NodeService
	logger      *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService svcContent.FileService, nodeService svcContent.NodeService, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		nodeService: nodeService,
		logger:      logger,
	}
}

// CreateFile registers an uploaded file's metadata inside a folder.
// A duplicate sibling name returns the existing file with 409.
func (h *FileHandler) CreateFile(w http.ResponseWriter, r *http.Request) {
	var req svcContent.CreateFileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := httputil.GetUserID(r)

	file, err := h.fileService.CreateFile(r.Context(), userID, &req)
	if err != nil {
		HandleCreateConflict(w, err, func(resourceID string) (any, error) {
			return h.nodeService.GetNode(r.Context(), userID, resourceID)
		})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, file)
}
