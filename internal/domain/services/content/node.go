package content

import (
	"context"

	"campuscloud/internal/domain/models/content"
	"campuscloud/internal/httputil"
)

// NodeKind distinguishes the two node types behind the uniform /nodes API
type NodeKind string

const (
	NodeFolder NodeKind = "folder"
	NodeFile   NodeKind = "file"
)

// Node is a folder or a file addressed by a single ID namespace.
// Exactly one of Folder/File is set, matching Kind.
type Node struct {
	Kind   NodeKind        `json:"kind"`
	Folder *content.Folder `json:"folder,omitempty"`
	File   *content.File   `json:"file,omitempty"`
}

// NodeService handles mutations addressed at a node ID: rename, visibility
// toggle, reparent (folders only) and cascading delete.
type NodeService interface {
	// GetNode retrieves a single node the viewer is allowed to see
	GetNode(ctx context.Context, viewerID, nodeID string) (*Node, error)

	// UpdateNode renames, re-parents or toggles visibility of a node
	UpdateNode(ctx context.Context, viewerID, nodeID string, req *UpdateNodeRequest) (*Node, error)

	// DeleteNode deletes a file, or a folder together with its entire
	// subtree. Returns the number of nodes removed.
	DeleteNode(ctx context.Context, viewerID, nodeID string) (int, error)
}

// UpdateNodeRequest represents a node update request
type UpdateNodeRequest struct {
	Name     *string `json:"name,omitempty"`      // rename
	IsPublic *bool   `json:"is_public,omitempty"` // visibility toggle

	// ParentID moves a folder (tri-state): absent = keep, null = move
	// directly under the scope root, value = move under that folder.
	ParentID httputil.OptionalString `json:"parent_id"`
}
