package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mbetts-dev/campusdocs/internal/database"
	"github.com/mbetts-dev/campusdocs/internal/models"
)

type UserUploadRepository struct {
	pool *pgxpool.Pool
}

func NewUserUploadRepository(db *database.DB) *UserUploadRepository {
	return &UserUploadRepository{pool: db.Pool}
}

const userUploadColumns = `id, title, subject, semester, description, file_name, file_url, status, submitter_email, uploaded_at`

func scanUserUploadRow(scanner rowScanner) (*models.UserUpload, error) {
	var u models.UserUpload
	err := scanner.Scan(
		&u.ID, &u.Title, &u.Subject, &u.Semester, &u.Description,
		&u.FileName, &u.FileURL, &u.Status, &u.SubmitterEmail, &u.UploadedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &u, nil
}

func (r *UserUploadRepository) collect(ctx context.Context, query string, args ...any) ([]*models.UserUpload, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query user uploads: %w", err)
	}
	defer rows.Close()

	uploads := make([]*models.UserUpload, 0)
	for rows.Next() {
		u, err := scanUserUploadRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user upload: %w", err)
		}
		uploads = append(uploads, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return uploads, nil
}

// List returns all submissions, newest first.
func (r *UserUploadRepository) List(ctx context.Context) ([]*models.UserUpload, error) {
	query := `SELECT ` + userUploadColumns + ` FROM user_uploads ORDER BY uploaded_at DESC`
	return r.collect(ctx, query)
}

// ListByStatus returns submissions in one moderation state, newest first.
func (r *UserUploadRepository) ListByStatus(ctx context.Context, status string) ([]*models.UserUpload, error) {
	query := `SELECT ` + userUploadColumns + ` FROM user_uploads WHERE status = $1 ORDER BY uploaded_at DESC`
	return r.collect(ctx, query, status)
}

func (r *UserUploadRepository) UpdateStatus(ctx context.Context, id, status string) (*models.UserUpload, error) {
	query := `
		UPDATE user_uploads SET status = $1
		WHERE id = $2
		RETURNING ` + userUploadColumns

	return scanUserUploadRow(r.pool.QueryRow(ctx, query, status, id))
}

// Update applies a partial metadata update; nil fields keep their value.
func (r *UserUploadRepository) Update(ctx context.Context, id string, update *models.UserUploadUpdate) (*models.UserUpload, error) {
	query := `
		UPDATE user_uploads SET
			title = COALESCE($1, title),
			subject = COALESCE($2, subject),
			semester = COALESCE($3, semester),
			description = COALESCE($4, description)
		WHERE id = $5
		RETURNING ` + userUploadColumns

	return scanUserUploadRow(r.pool.QueryRow(ctx, query,
		update.Title, update.Subject, update.Semester, update.Description, id,
	))
}

func (r *UserUploadRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM user_uploads WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
