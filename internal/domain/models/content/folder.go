package content

import (
	"time"
)

// UploadPolicy governs whether non-owners may add children to a folder.
type UploadPolicy string

const (
	// UploadOnlyMe restricts child creation to the folder owner.
	UploadOnlyMe UploadPolicy = "only_me"

	// UploadAnyone lets any member of the folder's scope add children.
	UploadAnyone UploadPolicy = "anyone"
)

// Valid reports whether the policy is one of the known values.
func (p UploadPolicy) Valid() bool {
	return p == UploadOnlyMe || p == UploadAnyone
}

type Folder struct {
	ID           string       `json:"id" db:"id"`
	ScopeKind    ScopeKind    `json:"scope_kind" db:"scope_kind"`
	ScopeID      string       `json:"scope_id" db:"scope_id"`
	ParentID     *string      `json:"parent_id" db:"parent_id"` // NULL = scope root
	Name         string       `json:"name" db:"name"`
	OwnerID      string       `json:"owner_id" db:"owner_id"` // set at creation, immutable
	IsPublic     bool         `json:"is_public" db:"is_public"`
	IsSystem     bool         `json:"is_system" db:"is_system"` // true only for provisioned roots
	AllowUploads UploadPolicy `json:"allow_uploads" db:"allow_uploads"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
}

// Scope returns the folder's scope key.
func (f *Folder) Scope() Scope {
	return Scope{Kind: f.ScopeKind, ID: f.ScopeID}
}
