package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lekha/internal/domain"
	"lekha/internal/port"
	"lekha/internal/service"
	"lekha/mocks"
)

type ingestFixture struct {
	jobs      *mocks.MockUploadJobRepo
	vouchers  *mocks.MockVoucherRepo
	ledgers   *mocks.MockLedgerRepo
	stock     *mocks.MockStockItemRepo
	company   *mocks.MockCompanyRepo
	storage   *mocks.MockObjectStorage
	extractor *mocks.MockInvoiceExtractor
	svc       service.IngestService
}

func newIngestFixture(cfg service.IngestServiceConfig) *ingestFixture {
	f := &ingestFixture{
		jobs:      new(mocks.MockUploadJobRepo),
		vouchers:  new(mocks.MockVoucherRepo),
		ledgers:   new(mocks.MockLedgerRepo),
		stock:     new(mocks.MockStockItemRepo),
		company:   new(mocks.MockCompanyRepo),
		storage:   new(mocks.MockObjectStorage),
		extractor: new(mocks.MockInvoiceExtractor),
	}
	f.svc = service.NewIngestService(f.jobs, f.vouchers, f.ledgers, f.stock, f.company, f.storage, f.extractor, cfg)
	return f
}

func pdfFile(name string) service.UploadFileInput {
	return service.UploadFileInput{
		FileName:    name,
		ContentType: "application/pdf",
		Size:        1024,
		Content:     []byte("%PDF-1.4 fake"),
	}
}

func TestIngestService_UploadBatchNoFiles(t *testing.T) {
	f := newIngestFixture(service.IngestServiceConfig{Bucket: "test"})

	_, err := f.svc.UploadBatch(context.Background(), nil, uuid.New())

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestIngestService_UploadBatchTooManyFiles(t *testing.T) {
	f := newIngestFixture(service.IngestServiceConfig{Bucket: "test", MaxFilesBatch: 2})

	files := []service.UploadFileInput{pdfFile("a.pdf"), pdfFile("b.pdf"), pdfFile("c.pdf")}
	_, err := f.svc.UploadBatch(context.Background(), files, uuid.New())

	assert.ErrorIs(t, err, domain.ErrValidation)
	f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestIngestService_UploadBatchUnsupportedType(t *testing.T) {
	f := newIngestFixture(service.IngestServiceConfig{Bucket: "test"})

	files := []service.UploadFileInput{{
		FileName:    "notes.txt",
		ContentType: "text/plain",
		Size:        100,
		Content:     []byte("hello"),
	}}
	_, err := f.svc.UploadBatch(context.Background(), files, uuid.New())

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestIngestService_UploadBatchFileTooLarge(t *testing.T) {
	f := newIngestFixture(service.IngestServiceConfig{Bucket: "test", MaxFileSizeMB: 1})

	big := pdfFile("big.pdf")
	big.Size = 2 * 1024 * 1024
	_, err := f.svc.UploadBatch(context.Background(), []service.UploadFileInput{big}, uuid.New())

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestIngestService_UploadBatchRejectsBeforeStoringAnything(t *testing.T) {
	f := newIngestFixture(service.IngestServiceConfig{Bucket: "test"})

	// second file is invalid, so the first one must not be uploaded either
	files := []service.UploadFileInput{pdfFile("good.pdf"), {
		FileName:    "bad.txt",
		ContentType: "text/plain",
		Size:        10,
		Content:     []byte("x"),
	}}
	_, err := f.svc.UploadBatch(context.Background(), files, uuid.New())

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	f.jobs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIngestService_UploadBatchStorageFailure(t *testing.T) {
	f := newIngestFixture(service.IngestServiceConfig{Bucket: "test"})
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	_, err := f.svc.UploadBatch(context.Background(), []service.UploadFileInput{pdfFile("inv.pdf")}, uuid.New())

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}

func TestIngestService_UploadBatchProcessesInBackground(t *testing.T) {
	f := newIngestFixture(service.IngestServiceConfig{
		Bucket:      "test",
		MaxAttempts: 1,
		BaseDelay:   time.Millisecond,
	})

	f.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{Location: "s3://test/k"}, nil)
	f.jobs.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.ledgers.On("List", mock.Anything).Return([]domain.Ledger{}, nil)
	f.stock.On("List", mock.Anything).Return([]domain.StockItem{}, nil)
	f.company.On("Get", mock.Anything).Return(&domain.CompanyDetails{State: "Maharashtra"}, nil)
	f.extractor.On("Extract", mock.Anything, mock.Anything).Return(&domain.ExtractedInvoice{
		SellerName: "Acme Traders",
		LineItems: []domain.ExtractedLineItem{
			{ItemDescription: "Cement", Quantity: 2, Rate: 100},
		},
	}, nil)
	f.vouchers.On("Create", mock.Anything, mock.Anything).Return(nil)

	var jobCopy domain.UploadJob
	f.jobs.On("GetByID", mock.Anything, mock.Anything).Return(&jobCopy, nil)

	done := make(chan domain.UploadJob, 4)
	f.jobs.On("Update", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		done <- *args.Get(1).(*domain.UploadJob)
	}).Return(nil)

	jobs, err := f.svc.UploadBatch(context.Background(), []service.UploadFileInput{pdfFile("inv-042.pdf")}, uuid.New())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, domain.UploadStatusPending, jobs[0].Status)
	assert.Equal(t, domain.FileTypePDF, jobs[0].FileType)
	assert.Contains(t, jobs[0].S3Key, jobs[0].ID.String())

	waitForStatus := func() domain.UploadJob {
		select {
		case j := <-done:
			return j
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for job update")
			return domain.UploadJob{}
		}
	}

	first := waitForStatus()
	assert.Equal(t, domain.UploadStatusProcessing, first.Status)

	final := waitForStatus()
	assert.Equal(t, domain.UploadStatusSuccess, final.Status)
	require.NotNil(t, final.VoucherID)
	f.vouchers.AssertCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIngestService_GetJob(t *testing.T) {
	f := newIngestFixture(service.IngestServiceConfig{Bucket: "test"})
	id := uuid.New()
	f.jobs.On("GetByID", mock.Anything, id).Return(&domain.UploadJob{ID: id}, nil)

	job, err := f.svc.GetJob(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, job.ID)
}
