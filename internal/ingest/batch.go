package ingest

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"lekha/internal/domain"
	"lekha/internal/port"
)

const (
	// DefaultMaxAttempts bounds extraction retries per file.
	DefaultMaxAttempts = 3
	// DefaultBaseDelay is the first backoff delay; it doubles each attempt.
	DefaultBaseDelay = 1000 * time.Millisecond
)

// File is one queued upload to run through extraction.
type File struct {
	JobID       uuid.UUID
	Name        string
	Bytes       []byte
	ContentType string
}

// FileResult is the terminal state of one file after the batch has visited
// it. Status transitions observed via OnUpdate are monotonic per file:
// pending -> processing -> success|error.
type FileResult struct {
	JobID    uuid.UUID
	Name     string
	Status   domain.UploadStatus
	Attempts int
	Invoice  *domain.ExtractedInvoice
	Err      string
}

// Processor runs extraction over a batch of files, one file at a time so
// per-file status feedback stays ordered. One bad file never aborts the
// batch. Cancellation is honored between files and between retry attempts.
type Processor struct {
	extractor   port.InvoiceExtractor
	maxAttempts int
	baseDelay   time.Duration

	// sleep is injected so retry timing is testable without waiting.
	sleep func(ctx context.Context, d time.Duration) error

	// onUpdate, when set, observes every status transition.
	onUpdate func(FileResult)
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithMaxAttempts overrides the retry bound.
func WithMaxAttempts(n int) ProcessorOption {
	return func(p *Processor) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// WithBaseDelay overrides the initial backoff delay.
func WithBaseDelay(d time.Duration) ProcessorOption {
	return func(p *Processor) {
		if d > 0 {
			p.baseDelay = d
		}
	}
}

// WithSleeper replaces the backoff sleeper (used by tests).
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) ProcessorOption {
	return func(p *Processor) { p.sleep = sleep }
}

// WithStatusObserver registers a callback invoked on every per-file status
// transition.
func WithStatusObserver(fn func(FileResult)) ProcessorOption {
	return func(p *Processor) { p.onUpdate = fn }
}

// NewProcessor creates a batch Processor around an extractor.
func NewProcessor(extractor port.InvoiceExtractor, opts ...ProcessorOption) *Processor {
	p := &Processor{
		extractor:   extractor,
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
		sleep:       sleepCtx,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run processes the batch sequentially and returns one result per file, in
// input order. A canceled context stops before the next file; files not yet
// visited are reported as pending.
func (p *Processor) Run(ctx context.Context, files []File) []FileResult {
	results := make([]FileResult, len(files))
	for i, f := range files {
		results[i] = FileResult{JobID: f.JobID, Name: f.Name, Status: domain.UploadStatusPending}
	}

	for i, f := range files {
		if ctx.Err() != nil {
			log.Printf("ingest.Processor: batch canceled after %d of %d files", i, len(files))
			break
		}
		results[i].Status = domain.UploadStatusProcessing
		p.notify(results[i])

		results[i] = p.processFile(ctx, f)
		p.notify(results[i])
	}
	return results
}

// processFile retries extraction with exponential backoff until success or
// the attempt bound is hit, then reports the last error.
func (p *Processor) processFile(ctx context.Context, f File) FileResult {
	res := FileResult{JobID: f.JobID, Name: f.Name, Status: domain.UploadStatusProcessing}

	delay := p.baseDelay
	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		res.Attempts = attempt
		inv, err := p.extractor.Extract(ctx, port.ExtractInput{
			FileBytes:   f.Bytes,
			ContentType: f.ContentType,
			FileName:    f.Name,
		})
		if err == nil {
			res.Status = domain.UploadStatusSuccess
			res.Invoice = inv
			return res
		}
		lastErr = err
		log.Printf("ingest.Processor: %s attempt %d/%d failed: %v", f.Name, attempt, p.maxAttempts, err)

		if attempt == p.maxAttempts {
			break
		}
		if err := p.sleep(ctx, delay); err != nil {
			// canceled mid-backoff; surface the extraction error, not the
			// context error
			break
		}
		delay *= 2
	}

	res.Status = domain.UploadStatusError
	if lastErr != nil {
		res.Err = lastErr.Error()
	}
	return res
}

func (p *Processor) notify(r FileResult) {
	if p.onUpdate != nil {
		p.onUpdate(r)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
