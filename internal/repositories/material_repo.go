package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mbetts-dev/campusdocs/internal/database"
	"github.com/mbetts-dev/campusdocs/internal/models"
)

type MaterialRepository struct {
	pool *pgxpool.Pool
}

func NewMaterialRepository(db *database.DB) *MaterialRepository {
	return &MaterialRepository{pool: db.Pool}
}

func scanMaterialRow(scanner rowScanner) (*models.Material, error) {
	var m models.Material
	err := scanner.Scan(
		&m.ID, &m.Title, &m.Type, &m.Semester, &m.Subject,
		&m.Description, &m.FileName, &m.FileURL, &m.UploadedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &m, nil
}

// List returns all materials, newest first.
func (r *MaterialRepository) List(ctx context.Context) ([]*models.Material, error) {
	query := `
		SELECT id, title, type, semester, subject, description, file_name, file_url, uploaded_at
		FROM materials ORDER BY uploaded_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query materials: %w", err)
	}
	defer rows.Close()

	materials := make([]*models.Material, 0)
	for rows.Next() {
		m, err := scanMaterialRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		materials = append(materials, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return materials, nil
}

func (r *MaterialRepository) Create(ctx context.Context, m *models.Material) (*models.Material, error) {
	m.ID = uuid.New().String()
	m.UploadedAt = time.Now()

	query := `
		INSERT INTO materials (id, title, type, semester, subject, description, file_name, file_url, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, title, type, semester, subject, description, file_name, file_url, uploaded_at
	`

	return scanMaterialRow(r.pool.QueryRow(ctx, query,
		m.ID, m.Title, m.Type, m.Semester, m.Subject,
		m.Description, m.FileName, m.FileURL, m.UploadedAt,
	))
}

// Update applies a partial metadata update; nil fields keep their value.
func (r *MaterialRepository) Update(ctx context.Context, id string, update *models.MaterialUpdate) (*models.Material, error) {
	query := `
		UPDATE materials SET
			title = COALESCE($1, title),
			type = COALESCE($2, type),
			semester = COALESCE($3, semester),
			subject = COALESCE($4, subject),
			description = COALESCE($5, description)
		WHERE id = $6
		RETURNING id, title, type, semester, subject, description, file_name, file_url, uploaded_at
	`

	return scanMaterialRow(r.pool.QueryRow(ctx, query,
		update.Title, update.Type, update.Semester, update.Subject, update.Description, id,
	))
}

func (r *MaterialRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM materials WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
