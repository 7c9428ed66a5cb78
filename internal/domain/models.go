package domain

import (
	"time"

	"github.com/google/uuid"
)

// CompanyDetails holds the company's own profile. The State field drives
// inter-state determination against a party ledger's state.
type CompanyDetails struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	State     string    `db:"state" json:"state"`
	GSTIN     string    `db:"gstin" json:"gstin"`
	Address   string    `db:"address" json:"address"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Ledger is a master-data account. Names join against vouchers
// case-insensitively; two ledgers differing only by case are rejected at
// entry time.
type Ledger struct {
	ID               uuid.UUID        `db:"id" json:"id"`
	Name             string           `db:"name" json:"name"`
	State            string           `db:"state" json:"state"`
	RegistrationType RegistrationType `db:"registration_type" json:"registration_type"`
	GSTIN            string           `db:"gstin" json:"gstin"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`
}

// StockItem is a master-data inventory item carrying its GST rate percentage.
type StockItem struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	GSTRate   float64   `db:"gst_rate" json:"gst_rate"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// VoucherItem is a single line on a purchase or sales voucher.
// TaxableAmount = Qty * Rate; TotalAmount = TaxableAmount + tax. Exactly one
// of CGST+SGST or IGST is non-zero, per the voucher's IsInterState flag.
type VoucherItem struct {
	Name          string  `json:"name"`
	Qty           float64 `json:"qty"`
	Rate          float64 `json:"rate"`
	TaxableAmount float64 `json:"taxable_amount"`
	CGSTAmount    float64 `json:"cgst_amount"`
	SGSTAmount    float64 `json:"sgst_amount"`
	IGSTAmount    float64 `json:"igst_amount"`
	TotalAmount   float64 `json:"total_amount"`
}

// JournalEntry is a single debit/credit line on a journal voucher.
type JournalEntry struct {
	Ledger string  `json:"ledger"`
	Debit  float64 `json:"debit"`
	Credit float64 `json:"credit"`
}

// Voucher is the closed set of voucher variants, discriminated by Type.
// Which fields are meaningful depends on the variant:
//   - purchase/sales: Party, IsInterState, Items, the Total* fields,
//     InvoiceNo, Narration
//   - payment/receipt: Party, Account, Amount
//   - contra: FromAccount, ToAccount, Amount
//   - journal: Entries
//
// Vouchers are immutable inputs to every report computation; editing derives
// a new voucher, it never mutates a stored one.
type Voucher struct {
	ID   uuid.UUID   `json:"id"`
	Type VoucherType `json:"type"`
	Date time.Time   `json:"date"`

	Party              string        `json:"party,omitempty"`
	IsInterState       bool          `json:"is_inter_state,omitempty"`
	Items              []VoucherItem `json:"items,omitempty"`
	TotalTaxableAmount float64       `json:"total_taxable_amount,omitempty"`
	TotalCGST          float64       `json:"total_cgst,omitempty"`
	TotalSGST          float64       `json:"total_sgst,omitempty"`
	TotalIGST          float64       `json:"total_igst,omitempty"`
	Total              float64       `json:"total,omitempty"`
	InvoiceNo          string        `json:"invoice_no,omitempty"`
	Narration          string        `json:"narration,omitempty"`

	Account string  `json:"account,omitempty"`
	Amount  float64 `json:"amount,omitempty"`

	FromAccount string `json:"from_account,omitempty"`
	ToAccount   string `json:"to_account,omitempty"`

	Entries []JournalEntry `json:"entries,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExtractedLineItem is one line of an extracted invoice. Untrusted input;
// any field may be missing or zero.
type ExtractedLineItem struct {
	ItemDescription string  `json:"item_description"`
	HSNCode         string  `json:"hsn_code"`
	Quantity        float64 `json:"quantity"`
	Rate            float64 `json:"rate"`
}

// ExtractedInvoice is the structured output of the external extraction
// service. The amount fields are advisory only; the normalizer recomputes
// totals from line items.
type ExtractedInvoice struct {
	SellerName    string              `json:"seller_name"`
	InvoiceNumber string              `json:"invoice_number"`
	InvoiceDate   string              `json:"invoice_date"`
	Subtotal      float64             `json:"subtotal"`
	CGSTAmount    float64             `json:"cgst_amount"`
	SGSTAmount    float64             `json:"sgst_amount"`
	TotalAmount   float64             `json:"total_amount"`
	LineItems     []ExtractedLineItem `json:"line_items"`
}

// UploadJob tracks one uploaded invoice file through extraction.
type UploadJob struct {
	ID         uuid.UUID    `db:"id" json:"id"`
	FileName   string       `db:"file_name" json:"file_name"`
	FileType   FileType     `db:"file_type" json:"file_type"`
	FileSize   int64        `db:"file_size" json:"file_size"`
	S3Bucket   string       `db:"s3_bucket" json:"s3_bucket"`
	S3Key      string       `db:"s3_key" json:"s3_key"`
	Status     UploadStatus `db:"status" json:"status"`
	Attempts   int          `db:"attempts" json:"attempts"`
	Error      string       `db:"error" json:"error"`
	VoucherID  *uuid.UUID   `db:"voucher_id" json:"voucher_id"`
	UploadedBy uuid.UUID    `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at" json:"updated_at"`
}

// User is an authenticated application user.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
