package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"campuscloud/internal/directory"
	"campuscloud/internal/domain"
	models "campuscloud/internal/domain/models/content"
	contentRepo "campuscloud/internal/domain/repositories/content"
	svcContent "campuscloud/internal/domain/services/content"
	"campuscloud/internal/policy"
)

type rootProvisioner struct {
	folderRepo contentRepo.FolderRepository
	directory  directory.Directory
	policies   *policy.Registry
	logger     *slog.Logger
}

// NewRootProvisioner creates a new root provisioner
func NewRootProvisioner(
	folderRepo contentRepo.FolderRepository,
	dir directory.Directory,
	policies *policy.Registry,
	logger *slog.Logger,
) svcContent.RootProvisioner {
	return &rootProvisioner{
		folderRepo: folderRepo,
		directory:  dir,
		policies:   policies,
		logger:     logger,
	}
}

// EnsureRoot returns the scope's system root, creating it on first access.
// Concurrent first access is the one designed race: the unique index on
// (scope_kind, scope_id) makes the second insert fail with a conflict,
// which is recovered here by re-reading the winner's root. The conflict
// never propagates to callers.
func (p *rootProvisioner) EnsureRoot(ctx context.Context, scope models.Scope) (*models.Folder, error) {
	if !scope.Kind.Valid() {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown scope kind %q", scope.Kind)}
	}
	if scope.ID == "" {
		return nil, &domain.ValidationError{Message: "scope id is required"}
	}

	root, err := p.folderRepo.GetSystemRoot(ctx, scope)
	if err == nil {
		return root, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	ownerID, err := p.resolveOwner(ctx, scope)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	folder := &models.Folder{
		ID:           uuid.NewString(),
		ScopeKind:    scope.Kind,
		ScopeID:      scope.ID,
		ParentID:     nil,
		Name:         p.policies.RootName(scope.Kind),
		OwnerID:      ownerID,
		IsPublic:     false,
		IsSystem:     true,
		AllowUploads: p.policies.DefaultUploadPolicy(scope.Kind),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := p.folderRepo.Create(ctx, folder); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Lost the provisioning race; adopt the winner's root.
			p.logger.Debug("root provisioning conflict, re-reading",
				"scope_kind", scope.Kind,
				"scope_id", scope.ID,
			)
			return p.folderRepo.GetSystemRoot(ctx, scope)
		}
		return nil, err
	}

	p.logger.Info("scope root provisioned",
		"id", folder.ID,
		"scope_kind", scope.Kind,
		"scope_id", scope.ID,
		"owner_id", ownerID,
	)

	return folder, nil
}

// resolveOwner determines who owns a scope's root: the user themselves,
// or the course's primary instructor for shared course storage.
func (p *rootProvisioner) resolveOwner(ctx context.Context, scope models.Scope) (string, error) {
	switch scope.Kind {
	case models.ScopeUser:
		exists, err := p.directory.UserExists(ctx, scope.ID)
		if err != nil {
			return "", err
		}
		if !exists {
			return "", &domain.NotFoundError{Message: fmt.Sprintf("user %s not found", scope.ID)}
		}
		return scope.ID, nil

	case models.ScopeCourseShared:
		course, err := p.directory.GetCourse(ctx, scope.ID)
		if err != nil {
			return "", err
		}
		return course.PrimaryInstructorID, nil

	default:
		return "", &domain.ValidationError{Message: fmt.Sprintf("unknown scope kind %q", scope.Kind)}
	}
}
