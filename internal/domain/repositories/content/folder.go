package content

import (
	"context"

	"campuscloud/internal/domain/models/content"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create inserts a new folder. Returns domain.ErrConflict if a system
	// root already exists for the folder's scope (unique index violation).
	Create(ctx context.Context, folder *content.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id string) (*content.Folder, error)

	// GetSystemRoot retrieves the system root folder for a scope.
	// Returns domain.ErrNotFound if the scope has not been provisioned yet.
	GetSystemRoot(ctx context.Context, scope content.Scope) (*content.Folder, error)

	// Update persists name, parent and visibility changes
	Update(ctx context.Context, folder *content.Folder) error

	// ListChildren lists the immediate child folders of a folder.
	// The system root is always a concrete folder, so a parent ID is
	// always available.
	ListChildren(ctx context.Context, parentID string) ([]content.Folder, error)

	// ChildCounts returns the number of immediate children (folders + files)
	// for each of the given folder IDs. Folders with no children map to 0.
	ChildCounts(ctx context.Context, folderIDs []string) (map[string]int, error)

	// DeleteSubtree removes the folder and every folder and file transitively
	// reachable from it. Must run inside the caller's transaction (via the
	// transaction manager) so a partial failure leaves the tree unchanged.
	// Returns the number of nodes removed.
	DeleteSubtree(ctx context.Context, folderID string) (int, error)
}
