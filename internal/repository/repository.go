package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/BerylCAtieno/file-query-client/internal/models"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, sub *models.Submission) error
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	List(ctx context.Context, limit int) ([]models.Submission, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, sub *models.Submission) error {
	query := `
		INSERT INTO submissions (id, filename, file_size, content_type, file_type, query, result, s3_key, created_at)
		VALUES (:id, :filename, :file_size, :content_type, :file_type, :query, :result, :s3_key, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, sub)
	return err
}

func (r *repository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	var sub models.Submission

	query := `
		SELECT id, filename, file_size, content_type, file_type, query, result, s3_key, created_at
		FROM submissions
		WHERE id = ?
	`

	err := r.db.GetContext(ctx, &sub, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &sub, nil
}

func (r *repository) List(ctx context.Context, limit int) ([]models.Submission, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, filename, file_size, content_type, file_type, query, result, s3_key, created_at
		FROM submissions
		ORDER BY created_at DESC
		LIMIT ?
	`

	subs := []models.Submission{}
	if err := r.db.SelectContext(ctx, &subs, query, limit); err != nil {
		return nil, err
	}

	return subs, nil
}
