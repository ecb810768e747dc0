package content

import (
	"context"

	"campuscloud/internal/domain/models/content"
)

// FileService handles file registration business logic. Bytes live in the
// external blob store; this service only records the metadata and URL.
type FileService interface {
	// CreateFile registers an uploaded file inside a folder
	CreateFile(ctx context.Context, viewerID string, req *CreateFileRequest) (*content.File, error)
}

// CreateFileRequest represents a file registration request
type CreateFileRequest struct {
	FolderID  string `json:"folder_id"`
	Name      string `json:"name"`
	URL       string `json:"url"` // opaque pointer into the blob store
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
	IsPublic  bool   `json:"is_public"`
}
