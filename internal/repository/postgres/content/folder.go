package content

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"campuscloud/internal/config"
	"campuscloud/internal/domain"
	models "campuscloud/internal/domain/models/content"
	contentRepo "campuscloud/internal/domain/repositories/content"
	"campuscloud/internal/repository/postgres"
)

const folderColumns = "id, scope_kind, scope_id, parent_id, name, owner_id, is_public, is_system, allow_uploads, created_at, updated_at"

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(cfg *postgres.RepositoryConfig) contentRepo.FolderRepository {
	return &PostgresFolderRepository{
		pool:   cfg.Pool,
		tables: cfg.Tables,
	}
}

func scanFolder(row interface{ Scan(...interface{}) error }, f *models.Folder) error {
	return row.Scan(
		&f.ID,
		&f.ScopeKind,
		&f.ScopeID,
		&f.ParentID,
		&f.Name,
		&f.OwnerID,
		&f.IsPublic,
		&f.IsSystem,
		&f.AllowUploads,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
}

// Create inserts a new folder. A partial unique index on
// (scope_kind, scope_id) WHERE is_system guarantees at most one system
// root per scope; violating it surfaces as domain.ErrConflict so the
// provisioner can retry its lookup. parent_id carries a self-referencing
// foreign key to this table, so inserting under a folder that a concurrent
// subtree delete has already removed fails with NotFound instead of
// leaving an orphan.
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, r.tables.Folders, folderColumns)

	exec := postgres.GetExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, query,
		folder.ID,
		folder.ScopeKind,
		folder.ScopeID,
		folder.ParentID,
		folder.Name,
		folder.OwnerID,
		folder.IsPublic,
		folder.IsSystem,
		folder.AllowUploads,
		folder.CreatedAt,
		folder.UpdatedAt,
	)

	if err != nil {
		if postgres.IsForeignKeyError(err) {
			parentID := ""
			if folder.ParentID != nil {
				parentID = *folder.ParentID
			}
			return fmt.Errorf("folder %s: %w", parentID, domain.ErrNotFound)
		}
		if postgres.IsDuplicateError(err) {
			return fmt.Errorf("folder '%s': %w", folder.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, folderColumns, r.tables.Folders)

	exec := postgres.GetExecutor(ctx, r.pool)
	var folder models.Folder
	err := scanFolder(exec.QueryRow(ctx, query, id), &folder)

	if err != nil {
		if postgres.IsNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// GetSystemRoot retrieves the provisioned system root for a scope
func (r *PostgresFolderRepository) GetSystemRoot(ctx context.Context, scope models.Scope) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE scope_kind = $1 AND scope_id = $2 AND is_system
	`, folderColumns, r.tables.Folders)

	exec := postgres.GetExecutor(ctx, r.pool)
	var folder models.Folder
	err := scanFolder(exec.QueryRow(ctx, query, scope.Kind, scope.ID), &folder)

	if err != nil {
		if postgres.IsNoRowsError(err) {
			return nil, fmt.Errorf("system root for %s: %w", scope.CacheKey(), domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get system root: %w", err)
	}

	return &folder, nil
}

// Update persists mutable folder fields. Scope, owner and the system flag
// never change after creation and are deliberately absent from the SET list.
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_id = $1, name = $2, is_public = $3, allow_uploads = $4, updated_at = $5
		WHERE id = $6
	`, r.tables.Folders)

	exec := postgres.GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query,
		folder.ParentID,
		folder.Name,
		folder.IsPublic,
		folder.AllowUploads,
		folder.UpdatedAt,
		folder.ID,
	)

	if err != nil {
		if postgres.IsDuplicateError(err) {
			return fmt.Errorf("folder '%s': %w", folder.Name, domain.ErrConflict)
		}
		return fmt.Errorf("update folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}

	return nil
}

// ListChildren lists immediate child folders ordered by name
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, parentID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE parent_id = $1
		ORDER BY name ASC
	`, folderColumns, r.tables.Folders)

	exec := postgres.GetExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list folder children: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		if err := scanFolder(rows, &folder); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// ChildCounts returns immediate child totals (folders + files) per folder ID
func (r *PostgresFolderRepository) ChildCounts(ctx context.Context, folderIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(folderIDs))
	if len(folderIDs) == 0 {
		return counts, nil
	}

	exec := postgres.GetExecutor(ctx, r.pool)

	folderQuery := fmt.Sprintf(`
		SELECT parent_id, COUNT(*)
		FROM %s
		WHERE parent_id = ANY($1)
		GROUP BY parent_id
	`, r.tables.Folders)

	rows, err := exec.Query(ctx, folderQuery, folderIDs)
	if err != nil {
		return nil, fmt.Errorf("count child folders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var parentID string
		var n int
		if err := rows.Scan(&parentID, &n); err != nil {
			return nil, fmt.Errorf("scan folder count: %w", err)
		}
		counts[parentID] += n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folder counts: %w", err)
	}

	fileQuery := fmt.Sprintf(`
		SELECT folder_id, COUNT(*)
		FROM %s
		WHERE folder_id = ANY($1)
		GROUP BY folder_id
	`, r.tables.Files)

	fileRows, err := exec.Query(ctx, fileQuery, folderIDs)
	if err != nil {
		return nil, fmt.Errorf("count child files: %w", err)
	}
	defer fileRows.Close()

	for fileRows.Next() {
		var folderID string
		var n int
		if err := fileRows.Scan(&folderID, &n); err != nil {
			return nil, fmt.Errorf("scan file count: %w", err)
		}
		counts[folderID] += n
	}
	if err := fileRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate file counts: %w", err)
	}

	return counts, nil
}

// DeleteSubtree removes a folder and everything reachable from it.
// Descendants are enumerated level by level over the parent_id index
// (iterative, bounded by MaxTreeDepth), then files and folders are removed
// in two statements. The caller wraps this in a transaction so the removal
// is all-or-nothing.
func (r *PostgresFolderRepository) DeleteSubtree(ctx context.Context, folderID string) (int, error) {
	exec := postgres.GetExecutor(ctx, r.pool)

	childQuery := fmt.Sprintf(`
		SELECT id FROM %s WHERE parent_id = ANY($1)
	`, r.tables.Folders)

	all := []string{folderID}
	frontier := []string{folderID}

	for depth := 0; len(frontier) > 0; depth++ {
		if depth > config.MaxTreeDepth {
			return 0, fmt.Errorf("%w: subtree deeper than %d levels", domain.ErrValidation, config.MaxTreeDepth)
		}

		rows, err := exec.Query(ctx, childQuery, frontier)
		if err != nil {
			return 0, fmt.Errorf("enumerate subtree: %w", err)
		}

		var next []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return 0, fmt.Errorf("scan subtree id: %w", err)
			}
			next = append(next, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("iterate subtree ids: %w", err)
		}

		all = append(all, next...)
		frontier = next
	}

	deleteFiles := fmt.Sprintf(`DELETE FROM %s WHERE folder_id = ANY($1)`, r.tables.Files)
	filesTag, err := exec.Exec(ctx, deleteFiles, all)
	if err != nil {
		return 0, fmt.Errorf("delete subtree files: %w", err)
	}

	deleteFolders := fmt.Sprintf(`DELETE FROM %s WHERE id = ANY($1)`, r.tables.Folders)
	foldersTag, err := exec.Exec(ctx, deleteFolders, all)
	if err != nil {
		return 0, fmt.Errorf("delete subtree folders: %w", err)
	}

	if foldersTag.RowsAffected() == 0 {
		return 0, fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}

	return int(filesTag.RowsAffected() + foldersTag.RowsAffected()), nil
}
