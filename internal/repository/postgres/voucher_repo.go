package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lekha/internal/domain"
	"lekha/internal/port"
)

type voucherRepo struct {
	db *sqlx.DB
}

// NewVoucherRepo creates a new PostgreSQL-backed VoucherRepository.
func NewVoucherRepo(db *sqlx.DB) port.VoucherRepository {
	return &voucherRepo{db: db}
}

// voucherRow is the flat table shape; line items and journal entries live in
// JSONB columns.
type voucherRow struct {
	ID                 uuid.UUID          `db:"id"`
	Type               domain.VoucherType `db:"type"`
	Date               time.Time          `db:"date"`
	Party              string             `db:"party"`
	IsInterState       bool               `db:"is_inter_state"`
	Items              []byte             `db:"items"`
	TotalTaxableAmount float64            `db:"total_taxable_amount"`
	TotalCGST          float64            `db:"total_cgst"`
	TotalSGST          float64            `db:"total_sgst"`
	TotalIGST          float64            `db:"total_igst"`
	Total              float64            `db:"total"`
	InvoiceNo          string             `db:"invoice_no"`
	Narration          string             `db:"narration"`
	Account            string             `db:"account"`
	Amount             float64            `db:"amount"`
	FromAccount        string             `db:"from_account"`
	ToAccount          string             `db:"to_account"`
	Entries            []byte             `db:"entries"`
	CreatedAt          time.Time          `db:"created_at"`
	UpdatedAt          time.Time          `db:"updated_at"`
}

func toRow(v *domain.Voucher) (*voucherRow, error) {
	items, err := json.Marshal(v.Items)
	if err != nil {
		return nil, fmt.Errorf("marshaling items: %w", err)
	}
	entries, err := json.Marshal(v.Entries)
	if err != nil {
		return nil, fmt.Errorf("marshaling entries: %w", err)
	}
	return &voucherRow{
		ID: v.ID, Type: v.Type, Date: v.Date,
		Party: v.Party, IsInterState: v.IsInterState, Items: items,
		TotalTaxableAmount: v.TotalTaxableAmount,
		TotalCGST:          v.TotalCGST, TotalSGST: v.TotalSGST, TotalIGST: v.TotalIGST,
		Total: v.Total, InvoiceNo: v.InvoiceNo, Narration: v.Narration,
		Account: v.Account, Amount: v.Amount,
		FromAccount: v.FromAccount, ToAccount: v.ToAccount, Entries: entries,
		CreatedAt: v.CreatedAt, UpdatedAt: v.UpdatedAt,
	}, nil
}

func (r *voucherRow) toDomain() (domain.Voucher, error) {
	v := domain.Voucher{
		ID: r.ID, Type: r.Type, Date: r.Date,
		Party: r.Party, IsInterState: r.IsInterState,
		TotalTaxableAmount: r.TotalTaxableAmount,
		TotalCGST:          r.TotalCGST, TotalSGST: r.TotalSGST, TotalIGST: r.TotalIGST,
		Total: r.Total, InvoiceNo: r.InvoiceNo, Narration: r.Narration,
		Account: r.Account, Amount: r.Amount,
		FromAccount: r.FromAccount, ToAccount: r.ToAccount,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
	if len(r.Items) > 0 {
		if err := json.Unmarshal(r.Items, &v.Items); err != nil {
			return v, fmt.Errorf("unmarshaling items: %w", err)
		}
	}
	if len(r.Entries) > 0 {
		if err := json.Unmarshal(r.Entries, &v.Entries); err != nil {
			return v, fmt.Errorf("unmarshaling entries: %w", err)
		}
	}
	return v, nil
}

const voucherInsert = `INSERT INTO vouchers
	(id, type, date, party, is_inter_state, items, total_taxable_amount,
	 total_cgst, total_sgst, total_igst, total, invoice_no, narration,
	 account, amount, from_account, to_account, entries, created_at, updated_at)
	VALUES (:id, :type, :date, :party, :is_inter_state, :items, :total_taxable_amount,
	 :total_cgst, :total_sgst, :total_igst, :total, :invoice_no, :narration,
	 :account, :amount, :from_account, :to_account, :entries, :created_at, :updated_at)`

func (r *voucherRepo) Create(ctx context.Context, v *domain.Voucher) error {
	now := time.Now().UTC()
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = now
	v.UpdatedAt = now

	row, err := toRow(v)
	if err != nil {
		return fmt.Errorf("voucherRepo.Create: %w", err)
	}
	if _, err := r.db.NamedExecContext(ctx, voucherInsert, row); err != nil {
		return fmt.Errorf("voucherRepo.Create: %w", err)
	}
	return nil
}

func (r *voucherRepo) CreateBatch(ctx context.Context, vs []domain.Voucher) error {
	if len(vs) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("voucherRepo.CreateBatch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	for i := range vs {
		if vs[i].ID == uuid.Nil {
			vs[i].ID = uuid.New()
		}
		vs[i].CreatedAt = now
		vs[i].UpdatedAt = now
		row, err := toRow(&vs[i])
		if err != nil {
			return fmt.Errorf("voucherRepo.CreateBatch: %w", err)
		}
		if _, err := tx.NamedExecContext(ctx, voucherInsert, row); err != nil {
			return fmt.Errorf("voucherRepo.CreateBatch: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("voucherRepo.CreateBatch commit: %w", err)
	}
	return nil
}

func (r *voucherRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Voucher, error) {
	var row voucherRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM vouchers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("voucherRepo.GetByID: %w", err)
	}
	v, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("voucherRepo.GetByID: %w", err)
	}
	return &v, nil
}

func (r *voucherRepo) List(ctx context.Context) ([]domain.Voucher, error) {
	var rows []voucherRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM vouchers ORDER BY date, created_at")
	if err != nil {
		return nil, fmt.Errorf("voucherRepo.List: %w", err)
	}
	vouchers := make([]domain.Voucher, 0, len(rows))
	for i := range rows {
		v, err := rows[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("voucherRepo.List: %w", err)
		}
		vouchers = append(vouchers, v)
	}
	return vouchers, nil
}

func (r *voucherRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM vouchers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("voucherRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
