package content

import (
	"context"

	"campuscloud/internal/domain/models/content"
)

// FolderService handles folder creation business logic
type FolderService interface {
	// CreateFolder creates a new folder after structural and permission checks
	CreateFolder(ctx context.Context, viewerID string, req *CreateFolderRequest) (*content.Folder, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	ScopeKind content.ScopeKind `json:"scope_kind"`
	ScopeID   string            `json:"scope_id"`
	ParentID  *string           `json:"parent_id,omitempty"` // nil = directly under the scope root
	Name      string            `json:"name"`
	IsPublic  bool              `json:"is_public"`
}
