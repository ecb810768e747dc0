package content

import (
	"context"
	"fmt"
	"log/slog"

	"campuscloud/internal/cache"
	"campuscloud/internal/directory"
	"campuscloud/internal/domain"
	models "campuscloud/internal/domain/models/content"
	contentRepo "campuscloud/internal/domain/repositories/content"
	svcContent "campuscloud/internal/domain/services/content"
)

type resolverService struct {
	folderRepo  contentRepo.FolderRepository
	fileRepo    contentRepo.FileRepository
	provisioner svcContent.RootProvisioner
	directory   directory.Directory
	access      AccessEvaluator
	listings    *cache.ListingCache
	logger      *slog.Logger
}

// NewContentResolver creates a new content resolver
func NewContentResolver(
	folderRepo contentRepo.FolderRepository,
	fileRepo contentRepo.FileRepository,
	provisioner svcContent.RootProvisioner,
	dir directory.Directory,
	listings *cache.ListingCache,
	logger *slog.Logger,
) svcContent.ContentResolver {
	return &resolverService{
		folderRepo:  folderRepo,
		fileRepo:    fileRepo,
		provisioner: provisioner,
		directory:   dir,
		listings:    listings,
		logger:      logger,
	}
}

// Resolve computes the effective listing of a folder for a viewer: the
// children the viewer may see, child counts for the visible folders, and
// the breadcrumb path from the scope root. A nil folder ID targets the
// scope root and provisions it on first access.
func (s *resolverService) Resolve(ctx context.Context, viewerID string, scope models.Scope, folderID *string) (*models.Listing, error) {
	if !scope.Kind.Valid() {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown scope kind %q", scope.Kind)}
	}
	if scope.ID == "" {
		return nil, &domain.ValidationError{Message: "scope id is required"}
	}

	relation, err := relationFor(ctx, s.directory, scope, viewerID)
	if err != nil {
		return nil, err
	}
	viewer := models.Viewer{ID: viewerID, Relation: relation}

	// Shared course trees have no public profile: outsiders are rejected
	// at the scope boundary, before any folder is even resolved.
	if scope.Kind == models.ScopeCourseShared && relation == models.RelationVisitor {
		return nil, &domain.ForbiddenError{Message: "not enrolled in this course"}
	}

	target, err := s.resolveTarget(ctx, viewer, scope, folderID)
	if err != nil {
		return nil, err
	}

	if s.listings != nil {
		cached, err := s.listings.Get(ctx, scope, target.ID, viewerID)
		if err != nil {
			s.logger.Warn("listing cache read failed", "folder_id", target.ID, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	listing, err := s.buildListing(ctx, viewer, target)
	if err != nil {
		return nil, err
	}

	if s.listings != nil {
		if err := s.listings.Set(ctx, scope, target.ID, viewerID, listing); err != nil {
			s.logger.Warn("listing cache write failed", "folder_id", target.ID, "error", err)
		}
	}

	return listing, nil
}

// resolveTarget loads the folder being listed. Folders from a different
// scope, and private folders a visitor tries to reach directly, are
// reported as absent and forbidden respectively.
func (s *resolverService) resolveTarget(ctx context.Context, viewer models.Viewer, scope models.Scope, folderID *string) (*models.Folder, error) {
	if folderID == nil || *folderID == "" {
		return s.provisioner.EnsureRoot(ctx, scope)
	}

	folder, err := s.folderRepo.GetByID(ctx, *folderID)
	if err != nil {
		return nil, err
	}
	if folder.Scope() != scope {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", *folderID)}
	}
	if !folder.IsSystem && !s.access.CanView(viewer, folder.IsPublic) {
		return nil, &domain.ForbiddenError{Message: "folder is private"}
	}
	return folder, nil
}

func (s *resolverService) buildListing(ctx context.Context, viewer models.Viewer, target *models.Folder) (*models.Listing, error) {
	childFolders, err := s.folderRepo.ListChildren(ctx, target.ID)
	if err != nil {
		return nil, err
	}
	childFiles, err := s.fileRepo.ListByFolder(ctx, target.ID)
	if err != nil {
		return nil, err
	}

	visibleFolders := make([]models.Folder, 0, len(childFolders))
	for _, f := range childFolders {
		if s.access.VisibleInListing(viewer, f.IsPublic) {
			visibleFolders = append(visibleFolders, f)
		}
	}

	files := make([]models.File, 0, len(childFiles))
	for _, f := range childFiles {
		if s.access.VisibleInListing(viewer, f.IsPublic) {
			files = append(files, f)
		}
	}

	// One batched count query for all visible subfolders
	entries := make([]models.FolderEntry, 0, len(visibleFolders))
	if len(visibleFolders) > 0 {
		ids := make([]string, len(visibleFolders))
		for i, f := range visibleFolders {
			ids[i] = f.ID
		}
		counts, err := s.folderRepo.ChildCounts(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, f := range visibleFolders {
			entries = append(entries, models.FolderEntry{Folder: f, ChildCount: counts[f.ID]})
		}
	}

	crumbs, err := breadcrumbsFor(ctx, s.folderRepo, target)
	if err != nil {
		return nil, err
	}

	listing := &models.Listing{
		Folders:     entries,
		Files:       files,
		Breadcrumbs: crumbs,
	}
	// The scope root is an implementation anchor, not a node clients see
	if !target.IsSystem {
		listing.Folder = target
	}

	return listing, nil
}
