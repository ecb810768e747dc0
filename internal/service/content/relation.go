package content

import (
	"context"
	"errors"
	"fmt"

	"campuscloud/internal/directory"
	"campuscloud/internal/domain"
	models "campuscloud/internal/domain/models/content"
)

// relationFor resolves how a viewer stands to a scope, once per request.
// Personal scopes compare identities directly; course scopes consult the
// directory for the primary instructor and enrollment.
func relationFor(ctx context.Context, dir directory.Directory, scope models.Scope, viewerID string) (models.Relation, error) {
	switch scope.Kind {
	case models.ScopeUser:
		if scope.ID == viewerID {
			return models.RelationOwner, nil
		}
		return models.RelationVisitor, nil

	case models.ScopeCourseShared:
		course, err := dir.GetCourse(ctx, scope.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return "", &domain.NotFoundError{Message: fmt.Sprintf("course %s not found", scope.ID)}
			}
			return "", err
		}
		if course.PrimaryInstructorID == viewerID {
			return models.RelationOwner, nil
		}
		enrolled, err := dir.IsEnrolled(ctx, viewerID, scope.ID)
		if err != nil {
			return "", err
		}
		if enrolled {
			return models.RelationMember, nil
		}
		return models.RelationVisitor, nil

	default:
		return "", &domain.ValidationError{Message: fmt.Sprintf("unknown scope kind %q", scope.Kind)}
	}
}
