// Package directory exposes the user/course directory the content
// subsystem consults for ownership and enrollment decisions. The wider
// platform owns these records; this package only reads them.
package directory

import "context"

// Course is the slice of a course record the content subsystem needs.
type Course struct {
	ID                  string
	Name                string
	PrimaryInstructorID string
}

// Directory answers identity and enrollment questions for the access
// control evaluator and the root provisioner.
type Directory interface {
	// UserExists reports whether a user ID refers to a live account
	UserExists(ctx context.Context, userID string) (bool, error)

	// GetCourse retrieves a course and its primary instructor.
	// Returns domain.ErrNotFound for unknown courses.
	GetCourse(ctx context.Context, courseID string) (*Course, error)

	// IsEnrolled reports whether a user is enrolled in a course
	IsEnrolled(ctx context.Context, userID, courseID string) (bool, error)
}
