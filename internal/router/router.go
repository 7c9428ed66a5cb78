package router

import (
	"github.com/gin-gonic/gin"

	"lekha/internal/domain"
	"lekha/internal/handler"
	"lekha/internal/middleware"
	"lekha/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	allowedOrigins []string,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	voucherH *handler.VoucherHandler,
	masterH *handler.MasterHandler,
	uploadH *handler.UploadHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Voucher routes
	vouchers := protected.Group("/vouchers")
	vouchers.POST("", voucherH.Create)
	vouchers.GET("", voucherH.List)
	vouchers.GET("/:id", voucherH.Get)
	vouchers.POST("/:id/recalculate", voucherH.Recalculate)
	vouchers.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), voucherH.Delete)

	// Master data routes
	ledgers := protected.Group("/ledgers")
	ledgers.POST("", masterH.CreateLedger)
	ledgers.GET("", masterH.ListLedgers)
	ledgers.GET("/:id", masterH.GetLedger)
	ledgers.PUT("/:id", masterH.UpdateLedger)
	ledgers.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), masterH.DeleteLedger)

	stock := protected.Group("/stock-items")
	stock.POST("", masterH.CreateStockItem)
	stock.GET("", masterH.ListStockItems)
	stock.GET("/:id", masterH.GetStockItem)
	stock.PUT("/:id", masterH.UpdateStockItem)
	stock.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), masterH.DeleteStockItem)

	protected.GET("/company", masterH.GetCompany)
	protected.PUT("/company", middleware.RequireRole(domain.RoleAdmin), masterH.UpdateCompany)

	// Invoice upload routes
	uploads := protected.Group("/uploads")
	uploads.POST("", uploadH.Upload)
	uploads.GET("", uploadH.ListJobs)
	uploads.GET("/:id", uploadH.GetJob)

	// Report routes
	reports := protected.Group("/reports")
	reports.GET("/trial-balance", reportH.TrialBalance)
	reports.GET("/trial-balance/export", reportH.ExportTrialBalance)
	reports.GET("/stock-summary", reportH.StockSummary)
	reports.GET("/stock-summary/export", reportH.ExportStockSummary)
	reports.GET("/stock-valuation", reportH.StockValuation)
	reports.GET("/stock-valuation/export", reportH.ExportStockValuation)
	reports.GET("/gst-filings", reportH.GSTFilings)
	reports.GET("/gst-filings/export", reportH.ExportGSTFilings)
	reports.GET("/sales-tax-summary", reportH.SalesTaxSummary)
	reports.GET("/day-book", reportH.DayBook)

	return r
}
