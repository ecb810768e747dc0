package content

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"campuscloud/internal/domain"
	models "campuscloud/internal/domain/models/content"
	contentRepo "campuscloud/internal/domain/repositories/content"
	"campuscloud/internal/repository/postgres"
)

const fileColumns = "id, folder_id, name, url, mime_type, size_bytes, is_public, uploaded_by, created_at, updated_at"

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewFileRepository creates a new file repository
func NewFileRepository(cfg *postgres.RepositoryConfig) contentRepo.FileRepository {
	return &PostgresFileRepository{
		pool:   cfg.Pool,
		tables: cfg.Tables,
	}
}

func scanFile(row interface{ Scan(...interface{}) error }, f *models.File) error {
	return row.Scan(
		&f.ID,
		&f.FolderID,
		&f.Name,
		&f.URL,
		&f.MimeType,
		&f.SizeBytes,
		&f.IsPublic,
		&f.UploadedBy,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
}

// Create inserts a new file record. The folder_id column carries a foreign
// key to the folders table, so registering a file under a folder that a
// concurrent subtree delete already removed fails here with NotFound
// instead of leaving an orphan.
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, r.tables.Files, fileColumns)

	exec := postgres.GetExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, query,
		file.ID,
		file.FolderID,
		file.Name,
		file.URL,
		file.MimeType,
		file.SizeBytes,
		file.IsPublic,
		file.UploadedBy,
		file.CreatedAt,
		file.UpdatedAt,
	)

	if err != nil {
		if postgres.IsForeignKeyError(err) {
			return fmt.Errorf("folder %s: %w", file.FolderID, domain.ErrNotFound)
		}
		if postgres.IsDuplicateError(err) {
			return fmt.Errorf("file '%s': %w", file.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create file: %w", err)
	}

	return nil
}

// GetByID retrieves a file by ID
func (r *PostgresFileRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, fileColumns, r.tables.Files)

	exec := postgres.GetExecutor(ctx, r.pool)
	var file models.File
	err := scanFile(exec.QueryRow(ctx, query, id), &file)

	if err != nil {
		if postgres.IsNoRowsError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	return &file, nil
}

// Update persists mutable file fields. The blob URL is immutable and the
// containing folder does not change (files move with their folder).
func (r *PostgresFileRepository) Update(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, is_public = $2, updated_at = $3
		WHERE id = $4
	`, r.tables.Files)

	exec := postgres.GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query,
		file.Name,
		file.IsPublic,
		file.UpdatedAt,
		file.ID,
	)

	if err != nil {
		return fmt.Errorf("update file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", file.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a file record
func (r *PostgresFileRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Files)

	exec := postgres.GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByFolder lists the files directly inside a folder ordered by name
func (r *PostgresFileRepository) ListByFolder(ctx context.Context, folderID string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE folder_id = $1
		ORDER BY name ASC
	`, fileColumns, r.tables.Files)

	exec := postgres.GetExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, folderID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		var file models.File
		if err := scanFile(rows, &file); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return files, nil
}
