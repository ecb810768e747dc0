package content

import (
	"context"

	"campuscloud/internal/domain/models/content"
)

// FileRepository defines data access operations for files
type FileRepository interface {
	// Create inserts a new file record
	Create(ctx context.Context, file *content.File) error

	// GetByID retrieves a file by ID
	GetByID(ctx context.Context, id string) (*content.File, error)

	// Update persists name and visibility changes
	Update(ctx context.Context, file *content.File) error

	// Delete removes a file record
	Delete(ctx context.Context, id string) error

	// ListByFolder lists the files directly inside a folder
	ListByFolder(ctx context.Context, folderID string) ([]content.File, error)
}
