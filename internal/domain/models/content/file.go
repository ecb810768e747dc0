package content

import (
	"time"
)

// File is a leaf node: it points into the external blob store by URL and
// never has children of its own.
type File struct {
	ID         string    `json:"id" db:"id"`
	FolderID   string    `json:"folder_id" db:"folder_id"` // always a folder, never another file
	Name       string    `json:"name" db:"name"`
	URL        string    `json:"url" db:"url"` // opaque blob-store pointer, immutable
	MimeType   string    `json:"mime_type" db:"mime_type"`
	SizeBytes  int64     `json:"size_bytes" db:"size_bytes"`
	IsPublic   bool      `json:"is_public" db:"is_public"`
	UploadedBy *string   `json:"uploaded_by" db:"uploaded_by"` // NULL once the uploader is deleted
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
