package handler

import (
	"log/slog"
	"net/http"

	svcContent "campuscloud/internal/domain/services/content"
	"campuscloud/internal/httputil"
)

// NodeHandler handles HTTP requests addressed at a single node ID
type NodeHandler struct {
	nodeService svcContent.NodeService
	logger      *slog.Logger
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(nodeService svcContent.NodeService, logger *slog.Logger) *NodeHandler {
	return &NodeHandler{
		nodeService: nodeService,
		logger:      logger,
	}
}

// GetNode returns a single folder or file by ID
func (h *NodeHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	nodeID := r.PathValue("id")
	if nodeID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Node ID is required")
		return
	}

	userID := httputil.GetUserID(r)

	node, err := h.nodeService.GetNode(r.Context(), userID, nodeID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, node)
}

// UpdateNode renames, re-parents or toggles visibility of a node
func (h *NodeHandler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	nodeID := r.PathValue("id")
	if nodeID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Node ID is required")
		return
	}

	var req svcContent.UpdateNodeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := httputil.GetUserID(r)

	node, err := h.nodeService.UpdateNode(r.Context(), userID, nodeID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, node)
}

// DeleteNode deletes a file, or a folder with its entire subtree
func (h *NodeHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	nodeID := r.PathValue("id")
	if nodeID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Node ID is required")
		return
	}

	userID := httputil.GetUserID(r)

	removed, err := h.nodeService.DeleteNode(r.Context(), userID, nodeID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{"nodes_removed": removed})
}
