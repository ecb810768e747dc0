package content

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"campuscloud/internal/directory"
	"campuscloud/internal/domain"
	models "campuscloud/internal/domain/models/content"
	"campuscloud/internal/domain/repositories"
	svcContent "campuscloud/internal/domain/services/content"
	"campuscloud/internal/policy"
)

// store is the shared in-memory backing for the fake repositories. It
// enforces the same constraints the real schema does: one system root per
// scope, and foreign-key style lookups by parent.
type store struct {
	mu      sync.Mutex
	folders map[string]models.Folder
	files   map[string]models.File
}

func newStore() *store {
	return &store{
		folders: make(map[string]models.Folder),
		files:   make(map[string]models.File),
	}
}

type fakeFolderRepo struct {
	s *store
}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if folder.IsSystem {
		for _, f := range r.s.folders {
			if f.IsSystem && f.ScopeKind == folder.ScopeKind && f.ScopeID == folder.ScopeID {
				return fmt.Errorf("system root for %s/%s: %w", folder.ScopeKind, folder.ScopeID, domain.ErrConflict)
			}
		}
	}

	// parent_id foreign key: inserting under a removed folder fails
	if folder.ParentID != nil {
		if _, ok := r.s.folders[*folder.ParentID]; !ok {
			return fmt.Errorf("folder %s: %w", *folder.ParentID, domain.ErrNotFound)
		}
	}

	r.s.folders[folder.ID] = *folder
	return nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f, ok := r.s.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	out := f
	return &out, nil
}

func (r *fakeFolderRepo) GetSystemRoot(ctx context.Context, scope models.Scope) (*models.Folder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, f := range r.s.folders {
		if f.IsSystem && f.ScopeKind == scope.Kind && f.ScopeID == scope.ID {
			out := f
			return &out, nil
		}
	}
	return nil, fmt.Errorf("system root for %s/%s: %w", scope.Kind, scope.ID, domain.ErrNotFound)
}

func (r *fakeFolderRepo) Update(ctx context.Context, folder *models.Folder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.folders[folder.ID]; !ok {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}
	r.s.folders[folder.ID] = *folder
	return nil
}

func (r *fakeFolderRepo) ListChildren(ctx context.Context, parentID string) ([]models.Folder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.Folder
	for _, f := range r.s.folders {
		if f.ParentID != nil && *f.ParentID == parentID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) ChildCounts(ctx context.Context, folderIDs []string) (map[string]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	counts := make(map[string]int, len(folderIDs))
	for _, id := range folderIDs {
		counts[id] = 0
	}
	for _, f := range r.s.folders {
		if f.ParentID == nil {
			continue
		}
		if _, ok := counts[*f.ParentID]; ok {
			counts[*f.ParentID]++
		}
	}
	for _, f := range r.s.files {
		if _, ok := counts[f.FolderID]; ok {
			counts[f.FolderID]++
		}
	}
	return counts, nil
}

func (r *fakeFolderRepo) DeleteSubtree(ctx context.Context, folderID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.folders[folderID]; !ok {
		return 0, fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}

	removed := 0
	frontier := []string{folderID}
	for len(frontier) > 0 {
		var next []string
		for _, id := range frontier {
			for childID, f := range r.s.folders {
				if f.ParentID != nil && *f.ParentID == id {
					next = append(next, childID)
				}
			}
			for fileID, f := range r.s.files {
				if f.FolderID == id {
					delete(r.s.files, fileID)
					removed++
				}
			}
			delete(r.s.folders, id)
			removed++
		}
		frontier = next
	}
	return removed, nil
}

type fakeFileRepo struct {
	s *store
}

func (r *fakeFileRepo) Create(ctx context.Context, file *models.File) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.folders[file.FolderID]; !ok {
		return fmt.Errorf("folder %s: %w", file.FolderID, domain.ErrNotFound)
	}
	r.s.files[file.ID] = *file
	return nil
}

func (r *fakeFileRepo) GetByID(ctx context.Context, id string) (*models.File, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f, ok := r.s.files[id]
	if !ok {
		return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	out := f
	return &out, nil
}

func (r *fakeFileRepo) Update(ctx context.Context, file *models.File) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.files[file.ID]; !ok {
		return fmt.Errorf("file %s: %w", file.ID, domain.ErrNotFound)
	}
	r.s.files[file.ID] = *file
	return nil
}

func (r *fakeFileRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.files[id]; !ok {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	delete(r.s.files, id)
	return nil
}

func (r *fakeFileRepo) ListByFolder(ctx context.Context, folderID string) ([]models.File, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.File
	for _, f := range r.s.files {
		if f.FolderID == folderID {
			out = append(out, f)
		}
	}
	return out, nil
}

// fakeDirectory is a canned user/course directory.
type fakeDirectory struct {
	users       map[string]bool
	courses     map[string]*directory.Course
	enrollments map[string]bool // "userID/courseID"
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		users: map[string]bool{
			"alice": true,
			"bob":   true,
			"carol": true,
			"dave":  true,
		},
		courses: map[string]*directory.Course{
			"cs101": {ID: "cs101", Name: "Intro to CS", PrimaryInstructorID: "carol"},
		},
		enrollments: map[string]bool{
			"dave/cs101": true,
		},
	}
}

func (d *fakeDirectory) UserExists(ctx context.Context, userID string) (bool, error) {
	return d.users[userID], nil
}

func (d *fakeDirectory) GetCourse(ctx context.Context, courseID string) (*directory.Course, error) {
	c, ok := d.courses[courseID]
	if !ok {
		return nil, fmt.Errorf("course %s: %w", courseID, domain.ErrNotFound)
	}
	return c, nil
}

func (d *fakeDirectory) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	return d.enrollments[userID+"/"+courseID], nil
}

// nopTxManager runs the function without a real transaction
type nopTxManager struct{}

func (nopTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// fixture wires the full service stack over the in-memory store
type fixture struct {
	store       *store
	folderRepo  *fakeFolderRepo
	fileRepo    *fakeFileRepo
	dir         *fakeDirectory
	provisioner svcContent.RootProvisioner
	folderSvc   svcContent.FolderService
	fileSvc     svcContent.FileService
	nodeSvc     svcContent.NodeService
	resolver    svcContent.ContentResolver
}

func newFixture(t testingT) *fixture {
	t.Helper()

	s := newStore()
	folderRepo := &fakeFolderRepo{s: s}
	fileRepo := &fakeFileRepo{s: s}
	dir := newFakeDirectory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	policies := testPolicies(t)

	provisioner := NewRootProvisioner(folderRepo, dir, policies, logger)

	return &fixture{
		store:       s,
		folderRepo:  folderRepo,
		fileRepo:    fileRepo,
		dir:         dir,
		provisioner: provisioner,
		folderSvc:   NewFolderService(folderRepo, fileRepo, provisioner, dir, nil, logger),
		fileSvc:     NewFileService(folderRepo, fileRepo, dir, nil, logger),
		nodeSvc:     NewNodeService(folderRepo, fileRepo, nopTxManager{}, dir, nil, logger),
		resolver:    NewContentResolver(folderRepo, fileRepo, provisioner, dir, nil, logger),
	}
}

// testingT is the subset of *testing.T the fixture needs
type testingT interface {
	Helper()
	Fatalf(format string, args ...any)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPolicies(t testingT) *policy.Registry {
	t.Helper()
	policies, err := policy.NewRegistry()
	if err != nil {
		t.Fatalf("policy registry: %v", err)
	}
	return policies
}
