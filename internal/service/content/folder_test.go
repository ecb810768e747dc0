package content

import (
	"context"
	"errors"
	"testing"

	"campuscloud/internal/domain"
	models "campuscloud/internal/domain/models/content"
	svcContent "campuscloud/internal/domain/services/content"
)

func TestCreateFolder_UnderScopeRoot(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	folder, err := fx.folderSvc.CreateFolder(ctx, "alice", &svcContent.CreateFolderRequest{
		ScopeKind: models.ScopeUser,
		ScopeID:   "alice",
		Name:      "Homework",
	})
	if err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}

	if folder.IsSystem {
		t.Error("user-created folder marked as system")
	}
	if folder.OwnerID != "alice" {
		t.Errorf("owner = %q, want alice", folder.OwnerID)
	}
	if folder.ParentID == nil {
		t.Fatal("folder has no parent; expected the provisioned scope root")
	}

	root, err := fx.folderRepo.GetSystemRoot(ctx, models.UserScope("alice"))
	if err != nil {
		t.Fatalf("scope root was not provisioned: %v", err)
	}
	if *folder.ParentID != root.ID {
		t.Errorf("parent = %s, want the scope root %s", *folder.ParentID, root.ID)
	}
}

func TestCreateFolder_DuplicateSiblingName(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	req := &svcContent.CreateFolderRequest{
		ScopeKind: models.ScopeUser,
		ScopeID:   "alice",
		Name:      "Homework",
	}
	existing, err := fx.folderSvc.CreateFolder(ctx, "alice", req)
	if err != nil {
		t.Fatalf("first CreateFolder failed: %v", err)
	}

	_, err = fx.folderSvc.CreateFolder(ctx, "alice", req)
	var conflictErr *domain.ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("duplicate name error = %v, want ConflictError", err)
	}
	if conflictErr.ResourceID != existing.ID {
		t.Errorf("conflict points at %s, want the existing folder %s", conflictErr.ResourceID, existing.ID)
	}
	if conflictErr.ResourceType != "folder" {
		t.Errorf("conflict resource type = %q, want folder", conflictErr.ResourceType)
	}
}

func TestCreateFolder_VisitorForbidden(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.folderSvc.CreateFolder(ctx, "bob", &svcContent.CreateFolderRequest{
		ScopeKind: models.ScopeUser,
		ScopeID:   "alice",
		Name:      "Intrusion",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("visitor creation = %v, want forbidden", err)
	}
}

func TestCreateFolder_NameWithSlashRejected(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.folderSvc.CreateFolder(ctx, "alice", &svcContent.CreateFolderRequest{
		ScopeKind: models.ScopeUser,
		ScopeID:   "alice",
		Name:      "a/b",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("slash name = %v, want validation error", err)
	}
}

func TestCreateFolder_CourseMemberInSharedRoot(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	// dave is enrolled in cs101 and the course root accepts uploads from anyone
	folder, err := fx.folderSvc.CreateFolder(ctx, "dave", &svcContent.CreateFolderRequest{
		ScopeKind: models.ScopeCourseShared,
		ScopeID:   "cs101",
		Name:      "Group Project",
	})
	if err != nil {
		t.Fatalf("enrolled member creation failed: %v", err)
	}
	if folder.OwnerID != "dave" {
		t.Errorf("owner = %q, want the creator dave", folder.OwnerID)
	}
	if folder.AllowUploads != models.UploadAnyone {
		t.Errorf("upload policy = %q, want inherited %q", folder.AllowUploads, models.UploadAnyone)
	}

	// bob is not enrolled
	_, err = fx.folderSvc.CreateFolder(ctx, "bob", &svcContent.CreateFolderRequest{
		ScopeKind: models.ScopeCourseShared,
		ScopeID:   "cs101",
		Name:      "Not My Course",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("outsider creation = %v, want forbidden", err)
	}
}

func TestCreateFolder_ParentIsFile(t *testing.T) {
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
		t.Fatalf("seeding file failed: %v", err)
	}

	// Files are leaves; using one as a parent is a type error, not a 404
	_, err = fx.folderSvc.CreateFolder(ctx, "alice", &svcContent.CreateFolderRequest{
		ScopeKind: models.ScopeUser,
		ScopeID:   "alice",
		ParentID:  &file.ID,
		Name:      "Nested",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("file-as-parent = %v, want validation error", err)
	}
}

// vanishingParentRepo simulates a subtree delete committing between the
// service's parent check and the insert: the parent row is gone by the
// time Create runs, so the parent_id foreign key rejects the insert.
type vanishingParentRepo struct {
	*fakeFolderRepo
}

func (r *vanishingParentRepo) Create(ctx context.Context, folder *models.Folder) error {
	if folder.ParentID != nil && !folder.IsSystem {
		r.s.mu.Lock()
		delete(r.s.folders, *folder.ParentID)
		r.s.mu.Unlock()
	}
	return r.fakeFolderRepo.Create(ctx, folder)
}

func TestCreateFolder_ParentDeletedConcurrently(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	parent := seedFolder(t, fx, "alice", "Homework")

	racingSvc := NewFolderService(
		&vanishingParentRepo{fakeFolderRepo: fx.folderRepo},
		fx.fileRepo,
		fx.provisioner,
		fx.dir,
		nil,
		discardLogger(),
	)

	// The losing create fails on its parent reference; no orphan row
	_, err := racingSvc.CreateFolder(ctx, "alice", &svcContent.CreateFolderRequest{
		ScopeKind: models.ScopeUser,
		ScopeID:   "alice",
		ParentID:  &parent.ID,
		Name:      "Orphan",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("create under vanished parent = %v, want not found", err)
	}

	children, err := fx.folderRepo.ListChildren(ctx, parent.ID)
	if err != nil {
		t.Fatalf("ListChildren failed: %v", err)
	}
	if len(children) != 0 {
		t.Errorf("orphaned child rows survived: %d", len(children))
	}
}

func TestCreateFolder_ParentFromOtherScope(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	aliceFolder, err := fx.folderSvc.CreateFolder(ctx, "alice", &svcContent.CreateFolderRequest{
		ScopeKind: models.ScopeUser,
		ScopeID:   "alice",
		Name:      "Homework",
	})
	if err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}

	// bob references alice's folder from his own scope
	_, err = fx.folderSvc.CreateFolder(ctx, "bob", &svcContent.CreateFolderRequest{
		ScopeKind: models.ScopeUser,
		ScopeID:   "bob",
		ParentID:  &aliceFolder.ID,
		Name:      "Sneaky",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("cross-scope parent = %v, want not found", err)
	}
}
