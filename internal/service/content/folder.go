package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"campuscloud/internal/cache"
	"campuscloud/internal/config"
	"campuscloud/internal/directory"
	"campuscloud/internal/domain"
	models "campuscloud/internal/domain/models/content"
	contentRepo "campuscloud/internal/domain/repositories/content"
	svcContent "campuscloud/internal/domain/services/content"
)

var nodeNamePattern = regexp.MustCompile(`^[^/]+$`)

type folderService struct {
	folderRepo  contentRepo.FolderRepository
	fileRepo    contentRepo.FileRepository
	provisioner svcContent.RootProvisioner
	directory   directory.Directory
	access      AccessEvaluator
	listings    *cache.ListingCache
	logger      *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo contentRepo.FolderRepository,
	fileRepo contentRepo.FileRepository,
	provisioner svcContent.RootProvisioner,
	dir directory.Directory,
	listings *cache.ListingCache,
	logger *slog.Logger,
) svcContent.FolderService {
	return &folderService{
		folderRepo:  folderRepo,
		fileRepo:    fileRepo,
		provisioner: provisioner,
		directory:   dir,
		listings:    listings,
		logger:      logger,
	}
}

// CreateFolder creates a new folder under the given parent (or the scope
// root when no parent is given). Ordinary creation always produces
// is_system = false; only the provisioner mints system folders.
func (s *folderService) CreateFolder(ctx context.Context, viewerID string, req *svcContent.CreateFolderRequest) (*models.Folder, error) {
	// Normalize empty string to nil for root-level creation
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	scope := models.Scope{Kind: req.ScopeKind, ID: req.ScopeID}
	relation, err := relationFor(ctx, s.directory, scope, viewerID)
	if err != nil {
		return nil, err
	}
	viewer := models.Viewer{ID: viewerID, Relation: relation}

	parent, err := s.resolveParent(ctx, scope, req.ParentID)
	if err != nil {
		return nil, err
	}

	if !s.access.CanCreateIn(viewer, parent) {
		return nil, &domain.ForbiddenError{Message: "no permission to add content to this folder"}
	}

	// Reject duplicate sibling names
	siblings, err := s.folderRepo.ListChildren(ctx, parent.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate names: %w", err)
	}
	for _, sibling := range siblings {
		if sibling.Name == req.Name {
			return nil, &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", req.Name),
				ResourceType: "folder",
				ResourceID:   sibling.ID,
			}
		}
	}

	now := time.Now()
	folder := &models.Folder{
		ID:           uuid.NewString(),
		ScopeKind:    parent.ScopeKind,
		ScopeID:      parent.ScopeID,
		ParentID:     &parent.ID,
		Name:         req.Name,
		OwnerID:      viewerID,
		IsPublic:     req.IsPublic,
		IsSystem:     false,
		AllowUploads: childUploadPolicy(parent),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	invalidateListings(ctx, s.listings, s.logger, parent.ID)

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"scope_kind", folder.ScopeKind,
		"scope_id", folder.ScopeID,
		"parent_id", parent.ID,
		"owner_id", viewerID,
	)

	return folder, nil
}

// resolveParent turns an optional parent ID into a concrete folder in the
// requested scope, provisioning the root on first use. A parent ID that is
// actually a file is a type error (files are leaves); a parent from a
// different scope is reported as absent rather than leaked.
func (s *folderService) resolveParent(ctx context.Context, scope models.Scope, parentID *string) (*models.Folder, error) {
	if parentID == nil {
		return s.provisioner.EnsureRoot(ctx, scope)
	}

	parent, err := s.folderRepo.GetByID(ctx, *parentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			if _, fileErr := s.fileRepo.GetByID(ctx, *parentID); fileErr == nil {
				return nil, &domain.ValidationError{Message: "files cannot contain other nodes"}
			}
		}
		return nil, err
	}
	if parent.Scope() != scope {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", *parentID)}
	}
	return parent, nil
}

// childUploadPolicy decides the policy a new folder starts with: personal
// folders stay owner-only, course subfolders inherit the parent so a
// shared drop-box stays writable all the way down.
func childUploadPolicy(parent *models.Folder) models.UploadPolicy {
	if parent.ScopeKind == models.ScopeCourseShared {
		return parent.AllowUploads
	}
	return models.UploadOnlyMe
}

// validateCreateRequest validates a folder creation request
func (s *folderService) validateCreateRequest(req *svcContent.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ScopeKind,
			validation.Required,
			validation.In(models.ScopeUser, models.ScopeCourseShared),
		),
		validation.Field(&req.ScopeID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxNodeNameLength),
			validation.Match(nodeNamePattern).Error("folder name cannot contain slashes"),
		),
	)
}
