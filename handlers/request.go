package handlers

import (
	"net/http"

	"guaravita-backend/models"
	"guaravita-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/requests — guest claims a debt was paid
func (h *Handler) CreateRequest(c *gin.Context) {
	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	debtorID, err := uuid.Parse(req.DebtorID)
	if err != nil {
		utils.BadRequest(c, "Invalid debtor ID")
		return
	}

	request, err := h.Ledger.CreateRequest(c.Request.Context(), debtorID)
	if err != nil {
		ledgerError(c, err)
		return
	}

	// Tell the admin, fire-and-forget
	go h.Notifier.NotifyRequestCreated(*request)

	utils.SuccessResponse(c, http.StatusCreated, "Request sent", request)
}

// POST /api/admin/requests/:id/process
func (h *Handler) ProcessRequest(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid request ID")
		return
	}

	var req models.ProcessRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.Ledger.ProcessRequest(c.Request.Context(), requestID, *req.Approved); err != nil {
		ledgerError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Request processed", nil)
}
