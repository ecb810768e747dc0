package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"campuscloud/internal/cache"
	"campuscloud/internal/config"
	"campuscloud/internal/directory"
	"campuscloud/internal/domain"
	models "campuscloud/internal/domain/models/content"
	contentRepo "campuscloud/internal/domain/repositories/content"
	svcContent "campuscloud/internal/domain/services/content"
)

type fileService struct {
	folderRepo contentRepo.FolderRepository
	fileRepo   contentRepo.FileRepository
	directory  directory.Directory
	access     AccessEvaluator
	listings   *cache.ListingCache
	logger     *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	folderRepo contentRepo.FolderRepository,
	fileRepo contentRepo.FileRepository,
	dir directory.Directory,
	listings *cache.ListingCache,
	logger *slog.Logger,
) svcContent.FileService {
	return &fileService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		directory:  dir,
		listings:   listings,
		logger:     logger,
	}
}

// CreateFile registers an uploaded file inside a folder. The bytes already
// live in the blob store; only the metadata and the opaque URL are stored.
func (s *fileService) CreateFile(ctx context.Context, viewerID string, req *svcContent.CreateFileRequest) (*models.File, error) {
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.resolveFolder(ctx, req.FolderID)
	if err != nil {
		return nil, err
	}

	relation, err := relationFor(ctx, s.directory, folder.Scope(), viewerID)
	if err != nil {
		return nil, err
	}
	viewer := models.Viewer{ID: viewerID, Relation: relation}

	if !s.access.CanCreateIn(viewer, folder) {
		return nil, &domain.ForbiddenError{Message: "no permission to add content to this folder"}
	}

	// Reject duplicate sibling names
	siblings, err := s.fileRepo.ListByFolder(ctx, folder.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate names: %w", err)
	}
	for _, sibling := range siblings {
		if sibling.Name == req.Name {
			return nil, &domain.ConflictError{
				Message:      fmt.Sprintf("a file named %q already exists in this location", req.Name),
				ResourceType: "file",
				ResourceID:   sibling.ID,
			}
		}
	}

	now := time.Now()
	uploadedBy := viewerID
	file := &models.File{
		ID:         uuid.NewString(),
		FolderID:   folder.ID,
		Name:       req.Name,
		URL:        req.URL,
		MimeType:   req.MimeType,
		SizeBytes:  req.SizeBytes,
		IsPublic:   req.IsPublic,
		UploadedBy: &uploadedBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		return nil, err
	}

	invalidateListings(ctx, s.listings, s.logger, folder.ID)

	s.logger.Info("file registered",
		"id", file.ID,
		"name", file.Name,
		"folder_id", folder.ID,
		"mime_type", file.MimeType,
		"size_bytes", file.SizeBytes,
		"uploaded_by", viewerID,
	)

	return file, nil
}

// resolveFolder loads the target folder for a file registration. When the
// given ID turns out to be a file, the mistake is reported as a type error
// rather than NotFound: files are leaves and never contain children.
func (s *fileService) resolveFolder(ctx context.Context, folderID string) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, folderID)
	if err == nil {
		return folder, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if _, fileErr := s.fileRepo.GetByID(ctx, folderID); fileErr == nil {
		return nil, &domain.ValidationError{Message: "files cannot contain other nodes"}
	}
	return nil, err
}

// validateCreateRequest validates a file registration request
func (s *fileService) validateCreateRequest(req *svcContent.CreateFileRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.FolderID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxNodeNameLength),
			validation.Match(nodeNamePattern).Error("file name cannot contain slashes"),
		),
		validation.Field(&req.URL,
			validation.Required,
			validation.Length(1, config.MaxURLLength),
			is.URL,
		),
		validation.Field(&req.SizeBytes, validation.Min(int64(0))),
	)
}
