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

type stockItemRepo struct {
	db *sqlx.DB
}

// NewStockItemRepo creates a new PostgreSQL-backed StockItemRepository.
func NewStockItemRepo(db *sqlx.DB) port.StockItemRepository {
	return &stockItemRepo{db: db}
}

func (r *stockItemRepo) Create(ctx context.Context, it *domain.StockItem) error {
	now := time.Now().UTC()
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	it.CreatedAt = now
	it.UpdatedAt = now

	query := `INSERT INTO stock_items (id, name, gst_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, it.ID, it.Name, it.GSTRate, it.CreatedAt, it.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("stockItemRepo.Create: %w", err)
	}
	return nil
}

func (r *stockItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.StockItem, error) {
	var it domain.StockItem
	err := r.db.GetContext(ctx, &it, "SELECT * FROM stock_items WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("stockItemRepo.GetByID: %w", err)
	}
	return &it, nil
}

func (r *stockItemRepo) List(ctx context.Context) ([]domain.StockItem, error) {
	var items []domain.StockItem
	err := r.db.SelectContext(ctx, &items, "SELECT * FROM stock_items ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("stockItemRepo.List: %w", err)
	}
	return items, nil
}

func (r *stockItemRepo) Update(ctx context.Context, it *domain.StockItem) error {
	it.UpdatedAt = time.Now().UTC()
	query := `UPDATE stock_items SET name = $2, gst_rate = $3, updated_at = $4 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, it.ID, it.Name, it.GSTRate, it.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("stockItemRepo.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *stockItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM stock_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("stockItemRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
