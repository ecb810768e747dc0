package content

import (
	"context"
	"errors"
	"testing"

	"campuscloud/internal/domain"
	models "campuscloud/internal/domain/models/content"
	svcContent "campuscloud/internal/domain/services/content"
)

func seedFolder(t *testing.T, fx *fixture, ownerID string, name string) *models.Folder {
	t.Helper()
	folder, err := fx.folderSvc.CreateFolder(context.Background(), ownerID, &svcContent.CreateFolderRequest{
		ScopeKind: models.ScopeUser,
		ScopeID:   ownerID,
		Name:      name,
	})
	if err != nil {
		t.Fatalf("seeding folder %q failed: %v", name, err)
	}
	return folder
}

func TestCreateFile_RegistersMetadata(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	folder := seedFolder(t, fx, "alice", "Homework")

	file, err := fx.fileSvc.CreateFile(ctx, "alice", &svcContent.CreateFileRequest{
		FolderID:  folder.ID,
		Name:      "essay.pdf",
		URL:       "https://blobs.example.edu/objects/abc123",
		MimeType:  "application/pdf",
		SizeBytes: 20480,
	})
	if err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}

	if file.FolderID != folder.ID {
		t.Errorf("folder = %s, want %s", file.FolderID, folder.ID)
	}
	if file.UploadedBy == nil || *file.UploadedBy != "alice" {
		t.Error("uploaded_by not recorded")
	}
	if file.IsPublic {
		t.Error("file should default to private")
	}
}

func TestCreateFile_DuplicateSiblingName(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	folder := seedFolder(t, fx, "alice", "Homework")

	req := &svcContent.CreateFileRequest{
		FolderID: folder.ID,
		Name:     "essay.pdf",
		URL:      "https://blobs.example.edu/objects/abc123",
		MimeType: "application/pdf",
	}
	existing, err := fx.fileSvc.CreateFile(ctx, "alice", req)
	if err != nil {
		t.Fatalf("first CreateFile failed: %v", err)
	}

	_, err = fx.fileSvc.CreateFile(ctx, "alice", req)
	var conflictErr *domain.ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("duplicate name error = %v, want ConflictError", err)
	}
	if conflictErr.ResourceID != existing.ID {
		t.Errorf("conflict points at %s, want %s", conflictErr.ResourceID, existing.ID)
	}
}

func TestCreateFile_TargetIsFile(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	folder := seedFolder(t, fx, "alice", "Homework")

	file, err := fx.fileSvc.CreateFile(ctx, "alice", &svcContent.CreateFileRequest{
		FolderID: folder.ID,
		Name:     "essay.pdf",
		URL:      "https://blobs.example.edu/objects/abc123",
		MimeType: "application/pdf",
	})
	if err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}

	// Files are leaves; registering under a file is a type error, not a 404
	_, err = fx.fileSvc.CreateFile(ctx, "alice", &svcContent.CreateFileRequest{
		FolderID: file.ID,
		Name:     "nested.pdf",
		URL:      "https://blobs.example.edu/objects/def456",
		MimeType: "application/pdf",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("file-as-parent = %v, want validation error", err)
	}
}

func TestCreateFile_InvalidURL(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	folder := seedFolder(t, fx, "alice", "Homework")

	_, err := fx.fileSvc.CreateFile(ctx, "alice", &svcContent.CreateFileRequest{
		FolderID: folder.ID,
		Name:     "essay.pdf",
		URL:      "not a url",
		MimeType: "application/pdf",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("bad URL = %v, want validation error", err)
	}
}

func TestCreateFile_VisitorForbidden(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	folder := seedFolder(t, fx, "alice", "Homework")

	_, err := fx.fileSvc.CreateFile(ctx, "bob", &svcContent.CreateFileRequest{
		FolderID: folder.ID,
		Name:     "intrusion.pdf",
		URL:      "https://blobs.example.edu/objects/xyz",
		MimeType: "application/pdf",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("visitor upload = %v, want forbidden", err)
	}
}
