package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lekha/internal/domain"
	"lekha/internal/port"
)

type uploadJobRepo struct {
	db *sqlx.DB
}

// NewUploadJobRepo creates a new PostgreSQL-backed UploadJobRepository.
func NewUploadJobRepo(db *sqlx.DB) port.UploadJobRepository {
	return &uploadJobRepo{db: db}
}

func (r *uploadJobRepo) Create(ctx context.Context, job *domain.UploadJob) error {
	now := time.Now().UTC()
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	job.CreatedAt = now
	job.UpdatedAt = now

	query := `INSERT INTO upload_jobs
		(id, file_name, file_type, file_size, s3_bucket, s3_key, status,
		 attempts, error, voucher_id, uploaded_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.ExecContext(ctx, query,
		job.ID, job.FileName, job.FileType, job.FileSize, job.S3Bucket, job.S3Key,
		job.Status, job.Attempts, job.Error, job.VoucherID, job.UploadedBy,
		job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("uploadJobRepo.Create: %w", err)
	}
	return nil
}

func (r *uploadJobRepo) Update(ctx context.Context, job *domain.UploadJob) error {
	job.UpdatedAt = time.Now().UTC()
	query := `UPDATE upload_jobs
		SET status = $2, attempts = $3, error = $4, voucher_id = $5, updated_at = $6
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		job.ID, job.Status, job.Attempts, job.Error, job.VoucherID, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("uploadJobRepo.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *uploadJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.UploadJob, error) {
	var job domain.UploadJob
	err := r.db.GetContext(ctx, &job, "SELECT * FROM upload_jobs WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("uploadJobRepo.GetByID: %w", err)
	}
	return &job, nil
}

func (r *uploadJobRepo) List(ctx context.Context, offset, limit int) ([]domain.UploadJob, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM upload_jobs"); err != nil {
		return nil, 0, fmt.Errorf("uploadJobRepo.List count: %w", err)
	}

	var jobs []domain.UploadJob
	err := r.db.SelectContext(ctx, &jobs,
		"SELECT * FROM upload_jobs ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("uploadJobRepo.List: %w", err)
	}
	return jobs, total, nil
}
