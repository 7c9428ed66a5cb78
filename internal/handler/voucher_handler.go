package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lekha/internal/service"
)

// VoucherHandler handles voucher CRUD endpoints.
type VoucherHandler struct {
	voucherService service.VoucherService
}

// NewVoucherHandler creates a new VoucherHandler.
func NewVoucherHandler(voucherService service.VoucherService) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService}
}

// Create handles POST /api/v1/vouchers
func (h *VoucherHandler) Create(c *gin.Context) {
	var input service.CreateVoucherInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	v, err := h.voucherService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, v)
}

// Get handles GET /api/v1/vouchers/:id
func (h *VoucherHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid voucher id")
		return
	}

	v, err := h.voucherService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, v)
}

// List handles GET /api/v1/vouchers
func (h *VoucherHandler) List(c *gin.Context) {
	vouchers, err := h.voucherService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, vouchers)
}

// Delete handles DELETE /api/v1/vouchers/:id
func (h *VoucherHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid voucher id")
		return
	}

	if err := h.voucherService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

// recalculateRequest carries replacement line items for a stored voucher.
type recalculateRequest struct {
	Items []service.ItemInput `json:"items" binding:"required,min=1,dive"`
}

// Recalculate handles POST /api/v1/vouchers/:id/recalculate. The stored
// voucher is untouched; the response is a derived voucher with the new items
// and recomputed totals.
func (h *VoucherHandler) Recalculate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid voucher id")
		return
	}

	var req recalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	base, err := h.voucherService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	derived, err := h.voucherService.Recalculate(c.Request.Context(), *base, req.Items)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, derived)
}
