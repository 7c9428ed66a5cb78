package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"lekha/internal/domain"
	"lekha/internal/ingest"
	"lekha/internal/port"
)

// UploadFileInput is one file received from the upload endpoint.
type UploadFileInput struct {
	FileName    string
	ContentType string
	Size        int64
	Content     []byte
}

// IngestService accepts invoice files, stores them, and runs them through
// extraction into purchase vouchers.
type IngestService interface {
	// UploadBatch validates and stores the files, creates one pending job
	// per file and kicks off extraction in the background. It returns the
	// created jobs immediately.
	UploadBatch(ctx context.Context, files []UploadFileInput, uploadedBy uuid.UUID) ([]domain.UploadJob, error)
	GetJob(ctx context.Context, id uuid.UUID) (*domain.UploadJob, error)
	ListJobs(ctx context.Context, offset, limit int) ([]domain.UploadJob, int, error)
}

// IngestServiceConfig tunes upload validation and extraction retries.
type IngestServiceConfig struct {
	Bucket        string
	MaxFileSizeMB int64
	MaxFilesBatch int
	MaxAttempts   int
	BaseDelay     time.Duration
}

type ingestService struct {
	jobs      port.UploadJobRepository
	vouchers  port.VoucherRepository
	ledgers   port.LedgerRepository
	stock     port.StockItemRepository
	companies port.CompanyRepository
	storage   port.ObjectStorage
	extractor port.InvoiceExtractor
	cfg       IngestServiceConfig
}

// NewIngestService wires the upload pipeline.
func NewIngestService(
	jobs port.UploadJobRepository,
	vouchers port.VoucherRepository,
	ledgers port.LedgerRepository,
	stock port.StockItemRepository,
	companies port.CompanyRepository,
	storage port.ObjectStorage,
	extractor port.InvoiceExtractor,
	cfg IngestServiceConfig,
) IngestService {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = ingest.DefaultMaxAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = ingest.DefaultBaseDelay
	}
	if cfg.MaxFilesBatch <= 0 {
		cfg.MaxFilesBatch = 20
	}
	if cfg.MaxFileSizeMB <= 0 {
		cfg.MaxFileSizeMB = 25
	}
	return &ingestService{
		jobs:      jobs,
		vouchers:  vouchers,
		ledgers:   ledgers,
		stock:     stock,
		companies: companies,
		storage:   storage,
		extractor: extractor,
		cfg:       cfg,
	}
}

func (s *ingestService) UploadBatch(ctx context.Context, files []UploadFileInput, uploadedBy uuid.UUID) ([]domain.UploadJob, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("ingestService.UploadBatch: %w: no files provided", domain.ErrValidation)
	}
	if len(files) > s.cfg.MaxFilesBatch {
		return nil, fmt.Errorf("ingestService.UploadBatch: %w: at most %d files per batch", domain.ErrValidation, s.cfg.MaxFilesBatch)
	}

	// Validate the whole batch before storing anything, so a bad file is
	// rejected up front rather than after its siblings were uploaded.
	fileTypes := make([]domain.FileType, len(files))
	for i, f := range files {
		ft, err := validateUpload(f, s.cfg.MaxFileSizeMB)
		if err != nil {
			return nil, fmt.Errorf("ingestService.UploadBatch: %s: %w", f.FileName, err)
		}
		fileTypes[i] = ft
	}

	now := time.Now().UTC()
	jobs := make([]domain.UploadJob, 0, len(files))
	batch := make([]ingest.File, 0, len(files))
	for i, f := range files {
		jobID := uuid.New()
		key := fmt.Sprintf("invoices/%s/%s%s", now.Format("2006/01/02"), jobID, strings.ToLower(filepath.Ext(f.FileName)))

		if _, err := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.cfg.Bucket,
			Key:         key,
			Body:        bytes.NewReader(f.Content),
			ContentType: f.ContentType,
			Size:        f.Size,
		}); err != nil {
			log.Printf("ingestService.UploadBatch: upload of %s failed: %v", f.FileName, err)
			return nil, fmt.Errorf("ingestService.UploadBatch: %s: %w", f.FileName, domain.ErrUploadFailed)
		}

		job := domain.UploadJob{
			ID:         jobID,
			FileName:   f.FileName,
			FileType:   fileTypes[i],
			FileSize:   f.Size,
			S3Bucket:   s.cfg.Bucket,
			S3Key:      key,
			Status:     domain.UploadStatusPending,
			UploadedBy: uploadedBy,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.jobs.Create(ctx, &job); err != nil {
			return nil, fmt.Errorf("ingestService.UploadBatch: create job for %s: %w", f.FileName, err)
		}
		jobs = append(jobs, job)
		batch = append(batch, ingest.File{
			JobID:       jobID,
			Name:        f.FileName,
			Bytes:       f.Content,
			ContentType: f.ContentType,
		})
	}

	// Extraction happens off the request; job status is the progress
	// channel for callers.
	go s.processBatch(context.Background(), batch)

	return jobs, nil
}

func (s *ingestService) GetJob(ctx context.Context, id uuid.UUID) (*domain.UploadJob, error) {
	return s.jobs.GetByID(ctx, id)
}

func (s *ingestService) ListJobs(ctx context.Context, offset, limit int) ([]domain.UploadJob, int, error) {
	return s.jobs.List(ctx, offset, limit)
}

// processBatch runs extraction for the batch and records each file's
// terminal state, creating one purchase voucher per successful extraction.
func (s *ingestService) processBatch(ctx context.Context, files []ingest.File) {
	ledgers, err := s.ledgers.List(ctx)
	if err != nil {
		log.Printf("ingestService.processBatch: loading ledgers: %v", err)
	}
	items, err := s.stock.List(ctx)
	if err != nil {
		log.Printf("ingestService.processBatch: loading stock items: %v", err)
	}
	var company domain.CompanyDetails
	if c, err := s.companies.Get(ctx); err == nil {
		company = *c
	} else {
		log.Printf("ingestService.processBatch: loading company: %v", err)
	}

	proc := ingest.NewProcessor(s.extractor,
		ingest.WithMaxAttempts(s.cfg.MaxAttempts),
		ingest.WithBaseDelay(s.cfg.BaseDelay),
		ingest.WithStatusObserver(func(r ingest.FileResult) {
			// Intermediate transitions only; terminal states are written
			// below once the voucher outcome is known.
			if r.Status == domain.UploadStatusProcessing {
				s.updateJob(ctx, r.JobID, func(job *domain.UploadJob) {
					job.Status = domain.UploadStatusProcessing
					job.Attempts = r.Attempts
				})
			}
		}),
	)

	results := proc.Run(ctx, files)
	for _, r := range results {
		switch r.Status {
		case domain.UploadStatusSuccess:
			v := ingest.NormalizeInvoice(*r.Invoice, ledgers, items, company, r.Name, time.Now().UTC())
			v.ID = uuid.New()
			if err := s.vouchers.Create(ctx, &v); err != nil {
				log.Printf("ingestService.processBatch: voucher for %s: %v", r.Name, err)
				s.updateJob(ctx, r.JobID, func(job *domain.UploadJob) {
					job.Status = domain.UploadStatusError
					job.Attempts = r.Attempts
					job.Error = fmt.Sprintf("storing voucher: %v", err)
				})
				continue
			}
			voucherID := v.ID
			s.updateJob(ctx, r.JobID, func(job *domain.UploadJob) {
				job.Status = domain.UploadStatusSuccess
				job.Attempts = r.Attempts
				job.Error = ""
				job.VoucherID = &voucherID
			})
		case domain.UploadStatusError:
			s.updateJob(ctx, r.JobID, func(job *domain.UploadJob) {
				job.Status = domain.UploadStatusError
				job.Attempts = r.Attempts
				job.Error = r.Err
			})
		default:
			// pending: the batch was canceled before this file was reached.
		}
	}
}

func (s *ingestService) updateJob(ctx context.Context, id uuid.UUID, mutate func(*domain.UploadJob)) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		log.Printf("ingestService.updateJob: load %s: %v", id, err)
		return
	}
	mutate(job)
	job.UpdatedAt = time.Now().UTC()
	if err := s.jobs.Update(ctx, job); err != nil {
		log.Printf("ingestService.updateJob: save %s: %v", id, err)
	}
}

// validateUpload checks content type (falling back to the file extension)
// and size, returning the resolved file type.
func validateUpload(f UploadFileInput, maxSizeMB int64) (domain.FileType, error) {
	ft, ok := domain.AllowedContentTypes[strings.ToLower(f.ContentType)]
	if !ok {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(f.FileName)), ".")
		ft, ok = domain.AllowedExtensions[ext]
		if !ok {
			return "", domain.ErrUnsupportedFileType
		}
	}
	if f.Size > maxSizeMB*1024*1024 {
		return "", domain.ErrFileTooLarge
	}
	return ft, nil
}
