package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lekha/internal/service"
)

// MasterHandler handles ledger, stock item and company endpoints.
type MasterHandler struct {
	masterService service.MasterService
}

// NewMasterHandler creates a new MasterHandler.
func NewMasterHandler(masterService service.MasterService) *MasterHandler {
	return &MasterHandler{masterService: masterService}
}

// CreateLedger handles POST /api/v1/ledgers
func (h *MasterHandler) CreateLedger(c *gin.Context) {
	var input service.LedgerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	l, err := h.masterService.CreateLedger(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, l)
}

// GetLedger handles GET /api/v1/ledgers/:id
func (h *MasterHandler) GetLedger(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid ledger id")
		return
	}

	l, err := h.masterService.GetLedger(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, l)
}

// ListLedgers handles GET /api/v1/ledgers
func (h *MasterHandler) ListLedgers(c *gin.Context) {
	ledgers, err := h.masterService.ListLedgers(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, ledgers)
}

// UpdateLedger handles PUT /api/v1/ledgers/:id
func (h *MasterHandler) UpdateLedger(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid ledger id")
		return
	}

	var input service.LedgerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	l, err := h.masterService.UpdateLedger(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, l)
}

// DeleteLedger handles DELETE /api/v1/ledgers/:id
func (h *MasterHandler) DeleteLedger(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid ledger id")
		return
	}

	if err := h.masterService.DeleteLedger(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

// CreateStockItem handles POST /api/v1/stock-items
func (h *MasterHandler) CreateStockItem(c *gin.Context) {
	var input service.StockItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	it, err := h.masterService.CreateStockItem(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, it)
}

// GetStockItem handles GET /api/v1/stock-items/:id
func (h *MasterHandler) GetStockItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid stock item id")
		return
	}

	it, err := h.masterService.GetStockItem(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, it)
}

// ListStockItems handles GET /api/v1/stock-items
func (h *MasterHandler) ListStockItems(c *gin.Context) {
	items, err := h.masterService.ListStockItems(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, items)
}

// UpdateStockItem handles PUT /api/v1/stock-items/:id
func (h *MasterHandler) UpdateStockItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid stock item id")
		return
	}

	var input service.StockItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	it, err := h.masterService.UpdateStockItem(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, it)
}

// DeleteStockItem handles DELETE /api/v1/stock-items/:id
func (h *MasterHandler) DeleteStockItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid stock item id")
		return
	}

	if err := h.masterService.DeleteStockItem(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

// GetCompany handles GET /api/v1/company
func (h *MasterHandler) GetCompany(c *gin.Context) {
	company, err := h.masterService.GetCompany(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, company)
}

// UpdateCompany handles PUT /api/v1/company
func (h *MasterHandler) UpdateCompany(c *gin.Context) {
	var input service.CompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	company, err := h.masterService.UpdateCompany(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, company)
}
