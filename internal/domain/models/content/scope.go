package content

import "fmt"

// ScopeKind identifies the owning context of a folder tree.
type ScopeKind string

const (
	// ScopeUser is a single user's personal storage.
	ScopeUser ScopeKind = "user"

	// ScopeCourseShared is a course's shared storage, anchored by a root
	// owned by the course's primary instructor.
	ScopeCourseShared ScopeKind = "course_shared"
)

// Valid reports whether the kind is one of the known scope kinds.
func (k ScopeKind) Valid() bool {
	return k == ScopeUser || k == ScopeCourseShared
}

// Scope is the key of a folder tree: a user, or a course's shared space.
// Every folder row carries its scope so listings never cross tree boundaries.
type Scope struct {
	Kind ScopeKind `json:"kind"`
	ID   string    `json:"id"` // user ID or course ID depending on Kind
}

// UserScope returns the personal scope for a user.
func UserScope(userID string) Scope {
	return Scope{Kind: ScopeUser, ID: userID}
}

// CourseScope returns the shared scope for a course.
func CourseScope(courseID string) Scope {
	return Scope{Kind: ScopeCourseShared, ID: courseID}
}

// CacheKey returns a stable string form used in cache keys and logs.
func (s Scope) CacheKey() string {
	return fmt.Sprintf("%s:%s", s.Kind, s.ID)
}
