package main

import (
	"fmt"
	"log"
	"time"

	"lekha/internal/config"
	"lekha/internal/extract"
	"lekha/internal/extract/claude"
	"lekha/internal/extract/openai"
	"lekha/internal/handler"
	"lekha/internal/port"
	"lekha/internal/repository/postgres"
	"lekha/internal/router"
	"lekha/internal/service"
	s3storage "lekha/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	voucherRepo := postgres.NewVoucherRepo(db)
	ledgerRepo := postgres.NewLedgerRepo(db)
	stockRepo := postgres.NewStockItemRepo(db)
	companyRepo := postgres.NewCompanyRepo(db)
	jobRepo := postgres.NewUploadJobRepo(db)
	userRepo := postgres.NewUserRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize extraction providers
	extractor, err := buildExtractor(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize extractor: %w", err)
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	voucherSvc := service.NewVoucherService(voucherRepo, ledgerRepo, stockRepo, companyRepo, cfg.GST.FallbackRatePercent)
	masterSvc := service.NewMasterService(ledgerRepo, stockRepo, companyRepo)
	reportSvc := service.NewReportService(voucherRepo, ledgerRepo, stockRepo, companyRepo)
	ingestSvc := service.NewIngestService(jobRepo, voucherRepo, ledgerRepo, stockRepo, companyRepo, s3Client, extractor, service.IngestServiceConfig{
		Bucket:        cfg.S3.Bucket,
		MaxFileSizeMB: cfg.S3.MaxFileSizeMB,
		MaxFilesBatch: cfg.Ingest.MaxFilesBatch,
		MaxAttempts:   cfg.Ingest.MaxAttempts,
		BaseDelay:     time.Duration(cfg.Ingest.BaseDelayMS) * time.Millisecond,
	})

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	voucherH := handler.NewVoucherHandler(voucherSvc)
	masterH := handler.NewMasterHandler(masterSvc)
	uploadH := handler.NewUploadHandler(ingestSvc)
	reportH := handler.NewReportHandler(reportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg.Server.AllowedOrigins, authSvc, authH, voucherH, masterH, uploadH, reportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// buildExtractor creates the configured extraction provider, wrapping
// primary and secondary in a fallback chain when both are set.
func buildExtractor(cfg *config.Config) (port.InvoiceExtractor, error) {
	extract.RegisterProvider("claude", func(pc *config.ExtractProviderConfig) (port.InvoiceExtractor, error) {
		return claude.NewExtractor(pc), nil
	})
	extract.RegisterProvider("openai", func(pc *config.ExtractProviderConfig) (port.InvoiceExtractor, error) {
		return openai.NewExtractor(pc), nil
	})

	primary, err := extract.NewExtractor(&cfg.Extract.Primary)
	if err != nil {
		return nil, err
	}

	secondaryCfg := cfg.Extract.SecondaryConfig()
	if secondaryCfg == nil {
		return primary, nil
	}
	secondary, err := extract.NewExtractor(secondaryCfg)
	if err != nil {
		return nil, err
	}

	return extract.NewFallbackExtractor(
		[]port.InvoiceExtractor{primary, secondary},
		[]string{cfg.Extract.Primary.Provider, secondaryCfg.Provider},
	), nil
}
