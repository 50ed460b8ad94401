package handlers

import (
	"net/http"

	"guaravita-backend/models"
	"guaravita-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/admin/debtors
func (h *Handler) CreateDebtor(c *gin.Context) {
	var req models.CreateDebtorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	debtor, err := h.Ledger.CreateDebtor(c.Request.Context(), req.Name)
	if err != nil {
		ledgerError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Debtor created", debtor)
}

// POST /api/admin/debtors/:id/adjust
func (h *Handler) AdjustAmount(c *gin.Context) {
	debtorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid debtor ID")
		return
	}

	var req models.AdjustAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.Ledger.AdjustAmount(c.Request.Context(), debtorID, *req.Delta); err != nil {
		ledgerError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Amount adjusted", nil)
}

// POST /api/admin/debtors/:id/visibility
func (h *Handler) ToggleVisibility(c *gin.Context) {
	debtorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid debtor ID")
		return
	}

	if err := h.Ledger.ToggleVisibility(c.Request.Context(), debtorID); err != nil {
		ledgerError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Visibility toggled", nil)
}

// DELETE /api/admin/debtors/:id
func (h *Handler) RemoveDebtor(c *gin.Context) {
	debtorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid debtor ID")
		return
	}

	if err := h.Ledger.RemoveDebtor(c.Request.Context(), debtorID); err != nil {
		ledgerError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Debtor removed", nil)
}
