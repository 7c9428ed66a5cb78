package domain

// VoucherType discriminates the six voucher variants. Aggregators switch
// over all six explicitly; an unrecognized type contributes nothing.
type VoucherType string

const (
	VoucherTypePurchase VoucherType = "purchase"
	VoucherTypeSales    VoucherType = "sales"
	VoucherTypePayment  VoucherType = "payment"
	VoucherTypeReceipt  VoucherType = "receipt"
	VoucherTypeContra   VoucherType = "contra"
	VoucherTypeJournal  VoucherType = "journal"
)

// AllVoucherTypes lists every voucher variant.
var AllVoucherTypes = []VoucherType{
	VoucherTypePurchase,
	VoucherTypeSales,
	VoucherTypePayment,
	VoucherTypeReceipt,
	VoucherTypeContra,
	VoucherTypeJournal,
}

// RegistrationType classifies a party ledger for GST filing purposes.
type RegistrationType string

const (
	RegistrationRegistered   RegistrationType = "registered"
	RegistrationUnregistered RegistrationType = "unregistered"
	RegistrationComposition  RegistrationType = "composition"
)

// UploadStatus is the lifecycle of an uploaded invoice file. Transitions are
// monotonic per file: pending -> processing -> success|error.
type UploadStatus string

const (
	UploadStatusPending    UploadStatus = "pending"
	UploadStatusProcessing UploadStatus = "processing"
	UploadStatusSuccess    UploadStatus = "success"
	UploadStatusError      UploadStatus = "error"
)

// FileType represents the allowed file types for invoice upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedContentTypes maps MIME content types to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// UserRole defines the application role hierarchy.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)
