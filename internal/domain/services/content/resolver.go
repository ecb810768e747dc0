package content

import (
	"context"

	"campuscloud/internal/domain/models/content"
)

// ContentResolver produces the effective listing of a folder for a viewer:
// visible children plus the breadcrumb path from the scope root. A nil
// folder ID resolves to the scope's root, provisioning it if needed.
// Resolution never mutates tree state and is safe under concurrency.
type ContentResolver interface {
	Resolve(ctx context.Context, viewerID string, scope content.Scope, folderID *string) (*content.Listing, error)
}
