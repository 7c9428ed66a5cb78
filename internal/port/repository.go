// Package port defines the interfaces between the core services and their
// collaborators (database, object storage, extraction providers).
package port

import (
	"context"

	"github.com/google/uuid"

	"lekha/internal/domain"
)

// VoucherRepository persists vouchers of all six types.
type VoucherRepository interface {
	Create(ctx context.Context, v *domain.Voucher) error
	CreateBatch(ctx context.Context, vs []domain.Voucher) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Voucher, error)
	List(ctx context.Context) ([]domain.Voucher, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// LedgerRepository persists ledger master data.
type LedgerRepository interface {
	Create(ctx context.Context, l *domain.Ledger) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ledger, error)
	List(ctx context.Context) ([]domain.Ledger, error)
	Update(ctx context.Context, l *domain.Ledger) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StockItemRepository persists stock item master data.
type StockItemRepository interface {
	Create(ctx context.Context, it *domain.StockItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StockItem, error)
	List(ctx context.Context) ([]domain.StockItem, error)
	Update(ctx context.Context, it *domain.StockItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CompanyRepository persists the single company profile.
type CompanyRepository interface {
	Get(ctx context.Context) (*domain.CompanyDetails, error)
	Update(ctx context.Context, c *domain.CompanyDetails) error
}

// UploadJobRepository persists per-file extraction status.
type UploadJobRepository interface {
	Create(ctx context.Context, job *domain.UploadJob) error
	Update(ctx context.Context, job *domain.UploadJob) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UploadJob, error)
	List(ctx context.Context, offset, limit int) ([]domain.UploadJob, int, error)
}

// UserRepository persists application users.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
