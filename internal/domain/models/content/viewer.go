package content

// Relation describes how a viewer stands to the scope being viewed.
// It is resolved once per request and then drives every per-node
// visibility decision, instead of re-deriving the rule at each call site.
type Relation string

const (
	// RelationOwner means the viewer owns the scope (their own cloud, or
	// they are the primary instructor of the course).
	RelationOwner Relation = "owner"

	// RelationMember means the viewer is enrolled in the course scope.
	RelationMember Relation = "member"

	// RelationVisitor means the viewer is looking at another identity's
	// public profile; only public nodes are visible.
	RelationVisitor Relation = "visitor"
)

// Viewer is the identity on whose behalf visibility decisions are made.
type Viewer struct {
	ID       string
	Role     string // directory role, informational
	Relation Relation
}

// IsOwner reports whether the viewer owns the scope.
func (v Viewer) IsOwner() bool { return v.Relation == RelationOwner }

// IsMember reports whether the viewer is an enrolled member of the scope.
func (v Viewer) IsMember() bool { return v.Relation == RelationMember }
