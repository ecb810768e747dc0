package content

import (
	"context"

	"campuscloud/internal/domain/models/content"
)

// RootProvisioner lazily creates the non-deletable system folder that
// anchors each scope. Idempotent: repeated (and concurrent) calls for the
// same scope return the same root.
type RootProvisioner interface {
	EnsureRoot(ctx context.Context, scope content.Scope) (*content.Folder, error)
}
