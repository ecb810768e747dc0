package content

import (
	"context"
	"errors"
	"testing"

	"campuscloud/internal/domain"
	models "campuscloud/internal/domain/models/content"
	svcContent "campuscloud/internal/domain/services/content"
)

// seedProfile builds alice's tree for the visitor scenarios:
//
//	root
//	├── Assignments (private)
//	│   └── hw1.pdf (public)
//	└── Notes (public)
//	    ├── lecture1.txt (public)
//	    └── scratch.txt (private)
func seedProfile(t *testing.T, fx *fixture) (assignments, notes *models.Folder) {
	t.Helper()
	ctx := context.Background()

	assignments = seedFolder(t, fx, "alice", "Assignments")

	var err error
	notes, err = fx.folderSvc.CreateFolder(ctx, "alice", &svcContent.CreateFolderRequest{
		ScopeKind: models.ScopeUser,
		ScopeID:   "alice",
		Name:      "Notes",
		IsPublic:  true,
	})
	if err != nil {
		t.Fatalf("seeding Notes failed: %v", err)
	}

	seed := []struct {
		folderID string
		name     string
		isPublic bool
	}{
		{assignments.ID, "hw1.pdf", true},
		{notes.ID, "lecture1.txt", true},
		{notes.ID, "scratch.txt", false},
	}
	for _, f := range seed {
		_, err := fx.fileSvc.CreateFile(ctx, "alice", &svcContent.CreateFileRequest{
			FolderID: f.folderID,
			Name:     f.name,
			URL:      "https://blobs.example.edu/objects/" + f.name,
			MimeType: "application/octet-stream",
			IsPublic: f.isPublic,
		})
		if err != nil {
			t.Fatalf("seeding %s failed: %v", f.name, err)
		}
	}

	return assignments, notes
}

func TestResolve_OwnerSeesEverything(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	seedProfile(t, fx)

	listing, err := fx.resolver.Resolve(ctx, "alice", models.UserScope("alice"), nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if listing.Folder != nil {
		t.Error("root listing should not expose the system root as a folder")
	}
	if len(listing.Folders) != 2 {
		t.Fatalf("owner sees %d folders, want 2", len(listing.Folders))
	}
	if len(listing.Breadcrumbs) != 0 {
		t.Errorf("root listing has %d breadcrumbs, want 0", len(listing.Breadcrumbs))
	}
}

func TestResolve_VisitorSeesOnlyPublic(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	_, notes := seedProfile(t, fx)

	listing, err := fx.resolver.Resolve(ctx, "bob", models.UserScope("alice"), nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	// The private Assignments folder is invisible even though it contains
	// a public file; visibility never bubbles up from descendants
	if len(listing.Folders) != 1 {
		t.Fatalf("visitor sees %d folders, want 1", len(listing.Folders))
	}
	if listing.Folders[0].ID != notes.ID {
		t.Errorf("visitor sees folder %s, want Notes %s", listing.Folders[0].ID, notes.ID)
	}
}

func TestResolve_VisitorDeniedPrivateFolder(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	assignments, _ := seedProfile(t, fx)

	_, err := fx.resolver.Resolve(ctx, "bob", models.UserScope("alice"), &assignments.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("visitor resolving private folder = %v, want forbidden", err)
	}
}

func TestResolve_VisitorFileFiltering(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	_, notes := seedProfile(t, fx)

	listing, err := fx.resolver.Resolve(ctx, "bob", models.UserScope("alice"), &notes.ID)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if len(listing.Files) != 1 {
		t.Fatalf("visitor sees %d files, want 1", len(listing.Files))
	}
	if listing.Files[0].Name != "lecture1.txt" {
		t.Errorf("visitor sees %q, want lecture1.txt", listing.Files[0].Name)
	}
}

func TestResolve_ChildCounts(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	assignments, notes := seedProfile(t, fx)

	listing, err := fx.resolver.Resolve(ctx, "alice", models.UserScope("alice"), nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	counts := make(map[string]int, len(listing.Folders))
	for _, entry := range listing.Folders {
		counts[entry.ID] = entry.ChildCount
	}
	if counts[assignments.ID] != 1 {
		t.Errorf("Assignments child count = %d, want 1", counts[assignments.ID])
	}
	if counts[notes.ID] != 2 {
		t.Errorf("Notes child count = %d, want 2", counts[notes.ID])
	}
}

func TestResolve_Breadcrumbs(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	// root / Projects / Drafts / Final
	projects := seedFolder(t, fx, "alice", "Projects")
	drafts, err := fx.folderSvc.CreateFolder(ctx, "alice", &svcContent.CreateFolderRequest{
		ScopeKind: models.ScopeUser, ScopeID: "alice", ParentID: &projects.ID, Name: "Drafts",
	})
	if err != nil {
		t.Fatalf("seeding Drafts failed: %v", err)
	}
	final, err := fx.folderSvc.CreateFolder(ctx, "alice", &svcContent.CreateFolderRequest{
		ScopeKind: models.ScopeUser, ScopeID: "alice", ParentID: &drafts.ID, Name: "Final",
	})
	if err != nil {
		t.Fatalf("seeding Final failed: %v", err)
	}

	listing, err := fx.resolver.Resolve(ctx, "alice", models.UserScope("alice"), &final.ID)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if listing.Folder == nil || listing.Folder.ID != final.ID {
		t.Fatal("listing does not carry the resolved folder")
	}

	want := []string{"Projects", "Drafts", "Final"}
	if len(listing.Breadcrumbs) != len(want) {
		t.Fatalf("breadcrumbs = %d entries, want %d", len(listing.Breadcrumbs), len(want))
	}
	for i, name := range want {
		if listing.Breadcrumbs[i].Name != name {
			t.Errorf("breadcrumb[%d] = %q, want %q", i, listing.Breadcrumbs[i].Name, name)
		}
	}
}

func TestResolve_CourseOutsiderRejected(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	// bob is not enrolled in cs101; course trees have no public profile
	_, err := fx.resolver.Resolve(ctx, "bob", models.CourseScope("cs101"), nil)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("outsider resolving course scope = %v, want forbidden", err)
	}

	// dave is enrolled and gets the provisioned (empty) root listing
	listing, err := fx.resolver.Resolve(ctx, "dave", models.CourseScope("cs101"), nil)
	if err != nil {
		t.Fatalf("enrolled member resolve failed: %v", err)
	}
	if len(listing.Folders) != 0 || len(listing.Files) != 0 {
		t.Error("fresh course root should list empty")
	}
}

func TestResolve_CrossScopeFolderHidden(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	_, notes := seedProfile(t, fx)

	// Addressing alice's folder through bob's scope must 404, not leak
	_, err := fx.resolver.Resolve(ctx, "bob", models.UserScope("bob"), &notes.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("cross-scope resolve = %v, want not found", err)
	}
}

func TestResolve_UnknownScopeKind(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.resolver.Resolve(ctx, "alice", models.Scope{Kind: "team", ID: "x"}, nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("unknown scope kind = %v, want validation error", err)
	}
}
