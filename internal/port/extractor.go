package port

import (
	"context"

	"lekha/internal/domain"
)

// ExtractInput carries one uploaded file to the extraction service.
type ExtractInput struct {
	FileBytes   []byte
	ContentType string
	FileName    string
}

// InvoiceExtractor abstracts the external OCR/LLM invoice extraction
// service. Output is untrusted; callers default every field defensively.
type InvoiceExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*domain.ExtractedInvoice, error)
}
