package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lekha/internal/domain"
	"lekha/internal/port"
)

type ledgerRepo struct {
	db *sqlx.DB
}

// NewLedgerRepo creates a new PostgreSQL-backed LedgerRepository.
func NewLedgerRepo(db *sqlx.DB) port.LedgerRepository {
	return &ledgerRepo{db: db}
}

// isUniqueViolation reports whether err is a unique constraint violation.
// The ledgers table carries a unique index on lower(name), so two ledgers
// differing only by case are rejected here.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}

func (r *ledgerRepo) Create(ctx context.Context, l *domain.Ledger) error {
	now := time.Now().UTC()
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	l.CreatedAt = now
	l.UpdatedAt = now

	query := `INSERT INTO ledgers
		(id, name, state, registration_type, gstin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.Name, l.State, l.RegistrationType, l.GSTIN, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("ledgerRepo.Create: %w", err)
	}
	return nil
}

func (r *ledgerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ledger, error) {
	var l domain.Ledger
	err := r.db.GetContext(ctx, &l, "SELECT * FROM ledgers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ledgerRepo.GetByID: %w", err)
	}
	return &l, nil
}

func (r *ledgerRepo) List(ctx context.Context) ([]domain.Ledger, error) {
	var ledgers []domain.Ledger
	err := r.db.SelectContext(ctx, &ledgers, "SELECT * FROM ledgers ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("ledgerRepo.List: %w", err)
	}
	return ledgers, nil
}

func (r *ledgerRepo) Update(ctx context.Context, l *domain.Ledger) error {
	l.UpdatedAt = time.Now().UTC()
	query := `UPDATE ledgers
		SET name = $2, state = $3, registration_type = $4, gstin = $5, updated_at = $6
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		l.ID, l.Name, l.State, l.RegistrationType, l.GSTIN, l.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("ledgerRepo.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ledgerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM ledgers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("ledgerRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
