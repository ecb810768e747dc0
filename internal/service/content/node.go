package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"campuscloud/internal/cache"
	"campuscloud/internal/config"
	"campuscloud/internal/directory"
	"campuscloud/internal/domain"
	models "campuscloud/internal/domain/models/content"
	"campuscloud/internal/domain/repositories"
	contentRepo "campuscloud/internal/domain/repositories/content"
	svcContent "campuscloud/internal/domain/services/content"
)

type nodeService struct {
	folderRepo contentRepo.FolderRepository
	fileRepo   contentRepo.FileRepository
	txManager  repositories.TransactionManager
	directory  directory.Directory
	access     AccessEvaluator
	listings   *cache.ListingCache
	logger     *slog.Logger
}

// NewNodeService creates a new node service
func NewNodeService(
	folderRepo contentRepo.FolderRepository,
	fileRepo contentRepo.FileRepository,
	txManager repositories.TransactionManager,
	dir directory.Directory,
	listings *cache.ListingCache,
	logger *slog.Logger,
) svcContent.NodeService {
	return &nodeService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		txManager:  txManager,
		directory:  dir,
		listings:   listings,
		logger:     logger,
	}
}

// GetNode retrieves a single node the viewer is allowed to see
func (s *nodeService) GetNode(ctx context.Context, viewerID, nodeID string) (*svcContent.Node, error) {
	node, err := s.resolveNode(ctx, nodeID)
	if err != nil {
		return nil, err
	}

	switch node.Kind {
	case svcContent.NodeFolder:
		viewer, err := s.viewerFor(ctx, node.Folder.Scope(), viewerID)
		if err != nil {
			return nil, err
		}
		if !s.access.CanView(viewer, node.Folder.IsPublic) {
			return nil, &domain.ForbiddenError{Message: "folder is private"}
		}
	case svcContent.NodeFile:
		folder, err := s.folderRepo.GetByID(ctx, node.File.FolderID)
		if err != nil {
			return nil, err
		}
		viewer, err := s.viewerFor(ctx, folder.Scope(), viewerID)
		if err != nil {
			return nil, err
		}
		if !s.access.CanView(viewer, node.File.IsPublic) {
			return nil, &domain.ForbiddenError{Message: "file is private"}
		}
	}

	return node, nil
}

// UpdateNode renames, re-parents or toggles visibility of a node.
// System folders reject every mutation with a protected-node error,
// regardless of actor.
func (s *nodeService) UpdateNode(ctx context.Context, viewerID, nodeID string, req *svcContent.UpdateNodeRequest) (*svcContent.Node, error) {
	// Trim before validating so a whitespace-only name fails Required
	// instead of collapsing to an empty stored name
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}

	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	node, err := s.resolveNode(ctx, nodeID)
	if err != nil {
		return nil, err
	}

	if node.Kind == svcContent.NodeFile {
		return s.updateFile(ctx, viewerID, node.File, req)
	}
	return s.updateFolder(ctx, viewerID, node.Folder, req)
}

func (s *nodeService) updateFolder(ctx context.Context, viewerID string, folder *models.Folder, req *svcContent.UpdateNodeRequest) (*svcContent.Node, error) {
	if folder.IsSystem {
		return nil, &domain.ProtectedNodeError{Message: "system folders cannot be modified"}
	}

	// Non-system folders always sit under a parent
	if folder.ParentID == nil {
		return nil, fmt.Errorf("folder %s has no parent: %w", folder.ID, domain.ErrValidation)
	}
	parent, err := s.folderRepo.GetByID(ctx, *folder.ParentID)
	if err != nil {
		return nil, err
	}

	viewer, err := s.viewerFor(ctx, folder.Scope(), viewerID)
	if err != nil {
		return nil, err
	}
	if !s.access.CanMutateFolder(viewer, folder, parent) {
		return nil, &domain.ForbiddenError{Message: "no permission to modify this folder"}
	}

	oldParentID := *folder.ParentID

	if req.Name != nil {
		folder.Name = *req.Name
	}

	// Tri-state: only move if the field was present in the request
	if req.ParentID.Present {
		newParent, err := s.resolveMoveTarget(ctx, folder, req.ParentID.Value)
		if err != nil {
			return nil, err
		}

		if err := checkNoCycle(ctx, s.folderRepo, folder, newParent); err != nil {
			return nil, err
		}
		if !s.access.CanCreateIn(viewer, newParent) {
			return nil, &domain.ForbiddenError{Message: "no permission to add content to the target folder"}
		}

		folder.ParentID = &newParent.ID
		s.logger.Debug("moving folder",
			"folder_id", folder.ID,
			"new_parent_id", newParent.ID,
		)
	}

	if req.IsPublic != nil {
		folder.IsPublic = *req.IsPublic
	}

	// Check for duplicate name in target location (if name or parent changed)
	if req.Name != nil || req.ParentID.Present {
		siblings, err := s.folderRepo.ListChildren(ctx, *folder.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to check for duplicate names: %w", err)
		}
		for _, sibling := range siblings {
			if sibling.ID != folder.ID && sibling.Name == folder.Name {
				return nil, &domain.ConflictError{
					Message:      fmt.Sprintf("a folder named %q already exists in this location", folder.Name),
					ResourceType: "folder",
					ResourceID:   sibling.ID,
				}
			}
		}
	}

	folder.UpdatedAt = time.Now()
	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	invalidateListings(ctx, s.listings, s.logger, oldParentID, *folder.ParentID)

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", *folder.ParentID,
		"is_public", folder.IsPublic,
	)

	return &svcContent.Node{Kind: svcContent.NodeFolder, Folder: folder}, nil
}

func (s *nodeService) updateFile(ctx context.Context, viewerID string, file *models.File, req *svcContent.UpdateNodeRequest) (*svcContent.Node, error) {
	if req.ParentID.Present {
		return nil, &domain.ValidationError{Message: "files cannot be moved; move their folder instead"}
	}

	folder, err := s.folderRepo.GetByID(ctx, file.FolderID)
	if err != nil {
		return nil, err
	}

	viewer, err := s.viewerFor(ctx, folder.Scope(), viewerID)
	if err != nil {
		return nil, err
	}
	if !s.access.CanMutateFile(viewer, file, folder) {
		return nil, &domain.ForbiddenError{Message: "no permission to modify this file"}
	}

	if req.Name != nil {
		name := *req.Name

		siblings, err := s.fileRepo.ListByFolder(ctx, file.FolderID)
		if err != nil {
			return nil, fmt.Errorf("failed to check for duplicate names: %w", err)
		}
		for _, sibling := range siblings {
			if sibling.ID != file.ID && sibling.Name == name {
				return nil, &domain.ConflictError{
					Message:      fmt.Sprintf("a file named %q already exists in this location", name),
					ResourceType: "file",
					ResourceID:   sibling.ID,
				}
			}
		}

		file.Name = name
	}

	if req.IsPublic != nil {
		file.IsPublic = *req.IsPublic
	}

	file.UpdatedAt = time.Now()
	if err := s.fileRepo.Update(ctx, file); err != nil {
		return nil, err
	}

	invalidateListings(ctx, s.listings, s.logger, file.FolderID)

	s.logger.Info("file updated",
		"id", file.ID,
		"name", file.Name,
		"is_public", file.IsPublic,
	)

	return &svcContent.Node{Kind: svcContent.NodeFile, File: file}, nil
}

// DeleteNode deletes a file, or a folder together with its entire subtree.
// The subtree removal runs in one transaction: a failure partway leaves
// the tree unchanged, never a partially-deleted subtree.
func (s *nodeService) DeleteNode(ctx context.Context, viewerID, nodeID string) (int, error) {
	node, err := s.resolveNode(ctx, nodeID)
	if err != nil {
		return 0, err
	}

	if node.Kind == svcContent.NodeFile {
		return s.deleteFile(ctx, viewerID, node.File)
	}
	return s.deleteFolder(ctx, viewerID, node.Folder)
}

func (s *nodeService) deleteFolder(ctx context.Context, viewerID string, folder *models.Folder) (int, error) {
	if folder.IsSystem {
		return 0, &domain.ProtectedNodeError{Message: "system folders cannot be deleted"}
	}
	if folder.ParentID == nil {
		return 0, fmt.Errorf("folder %s has no parent: %w", folder.ID, domain.ErrValidation)
	}

	parent, err := s.folderRepo.GetByID(ctx, *folder.ParentID)
	if err != nil {
		return 0, err
	}

	viewer, err := s.viewerFor(ctx, folder.Scope(), viewerID)
	if err != nil {
		return 0, err
	}
	if !s.access.CanMutateFolder(viewer, folder, parent) {
		return 0, &domain.ForbiddenError{Message: "no permission to delete this folder"}
	}

	var removed int
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		n, err := s.folderRepo.DeleteSubtree(txCtx, folder.ID)
		if err != nil {
			return err
		}
		removed = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	invalidateListings(ctx, s.listings, s.logger, *folder.ParentID, folder.ID)

	s.logger.Info("folder deleted",
		"id", folder.ID,
		"name", folder.Name,
		"nodes_removed", removed,
	)

	return removed, nil
}

func (s *nodeService) deleteFile(ctx context.Context, viewerID string, file *models.File) (int, error) {
	folder, err := s.folderRepo.GetByID(ctx, file.FolderID)
	if err != nil {
		return 0, err
	}

	viewer, err := s.viewerFor(ctx, folder.Scope(), viewerID)
	if err != nil {
		return 0, err
	}
	if !s.access.CanMutateFile(viewer, file, folder) {
		return 0, &domain.ForbiddenError{Message: "no permission to delete this file"}
	}

	if err := s.fileRepo.Delete(ctx, file.ID); err != nil {
		return 0, err
	}

	invalidateListings(ctx, s.listings, s.logger, file.FolderID)

	s.logger.Info("file deleted",
		"id", file.ID,
		"name", file.Name,
		"folder_id", file.FolderID,
	)

	return 1, nil
}

// resolveNode finds a node in the shared ID namespace: folder first, then file
func (s *nodeService) resolveNode(ctx context.Context, nodeID string) (*svcContent.Node, error) {
	folder, err := s.folderRepo.GetByID(ctx, nodeID)
	if err == nil {
		return &svcContent.Node{Kind: svcContent.NodeFolder, Folder: folder}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	file, fileErr := s.fileRepo.GetByID(ctx, nodeID)
	if fileErr == nil {
		return &svcContent.Node{Kind: svcContent.NodeFile, File: file}, nil
	}
	if !errors.Is(fileErr, domain.ErrNotFound) {
		return nil, fileErr
	}

	return nil, fmt.Errorf("node %s: %w", nodeID, domain.ErrNotFound)
}

// resolveMoveTarget resolves the destination of a reparent: JSON null
// means the scope root, otherwise the target must be a folder in the same
// scope (moving across scopes would break ownership consistency).
func (s *nodeService) resolveMoveTarget(ctx context.Context, moving *models.Folder, parentID *string) (*models.Folder, error) {
	if parentID == nil {
		return s.folderRepo.GetSystemRoot(ctx, moving.Scope())
	}

	newParent, err := s.folderRepo.GetByID(ctx, *parentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			if _, fileErr := s.fileRepo.GetByID(ctx, *parentID); fileErr == nil {
				return nil, &domain.ValidationError{Message: "files cannot contain other nodes"}
			}
		}
		return nil, err
	}
	if newParent.Scope() != moving.Scope() {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", *parentID)}
	}
	return newParent, nil
}

func (s *nodeService) viewerFor(ctx context.Context, scope models.Scope, viewerID string) (models.Viewer, error) {
	relation, err := relationFor(ctx, s.directory, scope, viewerID)
	if err != nil {
		return models.Viewer{}, err
	}
	// Course trees have no public profile: outsiders are rejected at the
	// scope boundary, matching the resolver, before per-node checks run
	if scope.Kind == models.ScopeCourseShared && relation == models.RelationVisitor {
		return models.Viewer{}, &domain.ForbiddenError{Message: "not enrolled in this course"}
	}
	return models.Viewer{ID: viewerID, Relation: relation}, nil
}

// validateUpdateRequest validates a node update request
func (s *nodeService) validateUpdateRequest(req *svcContent.UpdateNodeRequest) error {
	// At least one field must be provided
	if req.Name == nil && req.IsPublic == nil && !req.ParentID.Present {
		return fmt.Errorf("at least one field must be provided")
	}

	if req.Name != nil {
		return validation.ValidateStruct(req,
			validation.Field(&req.Name,
				validation.Required,
				validation.Length(1, config.MaxNodeNameLength),
				validation.Match(nodeNamePattern).Error("name cannot contain slashes"),
			),
		)
	}

	return nil
}
