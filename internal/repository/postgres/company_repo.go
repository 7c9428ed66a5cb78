package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"lekha/internal/domain"
	"lekha/internal/port"
)

type companyRepo struct {
	db *sqlx.DB
}

// NewCompanyRepo creates a new PostgreSQL-backed CompanyRepository.
// The company_details table holds exactly one row, seeded by migration.
func NewCompanyRepo(db *sqlx.DB) port.CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Get(ctx context.Context) (*domain.CompanyDetails, error) {
	var c domain.CompanyDetails
	err := r.db.GetContext(ctx, &c, "SELECT * FROM company_details LIMIT 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("companyRepo.Get: %w", err)
	}
	return &c, nil
}

func (r *companyRepo) Update(ctx context.Context, c *domain.CompanyDetails) error {
	c.UpdatedAt = time.Now().UTC()
	query := `UPDATE company_details
		SET name = $2, state = $3, gstin = $4, address = $5, updated_at = $6
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.State, c.GSTIN, c.Address, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("companyRepo.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
