package directory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"campuscloud/internal/domain"
	"campuscloud/internal/repository/postgres"
)

// PostgresDirectory reads users, courses and enrollments straight from the
// platform schema.
type PostgresDirectory struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewPostgresDirectory creates a directory backed by the platform database
func NewPostgresDirectory(cfg *postgres.RepositoryConfig) Directory {
	return &PostgresDirectory{
		pool:   cfg.Pool,
		tables: cfg.Tables,
	}
}

// UserExists reports whether a user ID refers to a live account
func (d *PostgresDirectory) UserExists(ctx context.Context, userID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, d.tables.Users)

	exec := postgres.GetExecutor(ctx, d.pool)
	var exists bool
	if err := exec.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	return exists, nil
}

// GetCourse retrieves a course and its primary instructor
func (d *PostgresDirectory) GetCourse(ctx context.Context, courseID string) (*Course, error) {
	query := fmt.Sprintf(`
		SELECT id, name, primary_instructor_id
		FROM %s
		WHERE id = $1
	`, d.tables.Courses)

	exec := postgres.GetExecutor(ctx, d.pool)
	var course Course
	err := exec.QueryRow(ctx, query, courseID).Scan(
		&course.ID,
		&course.Name,
		&course.PrimaryInstructorID,
	)

	if err != nil {
		if postgres.IsNoRowsError(err) {
			return nil, fmt.Errorf("course %s: %w", courseID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	return &course, nil
}

// IsEnrolled reports whether a user is enrolled in a course
func (d *PostgresDirectory) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE user_id = $1 AND course_id = $2
		)
	`, d.tables.Enrollments)

	exec := postgres.GetExecutor(ctx, d.pool)
	var enrolled bool
	if err := exec.QueryRow(ctx, query, userID, courseID).Scan(&enrolled); err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return enrolled, nil
}
