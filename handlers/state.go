package handlers

import (
	"net/http"

	"guaravita-backend/models"
	"guaravita-backend/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/state — guest snapshot: hidden debtors stripped, aggregates
// precomputed
func (h *Handler) GetPublicState(c *gin.Context) {
	snapshot, err := h.Ledger.Snapshot(c.Request.Context())
	if err != nil {
		ledgerError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", snapshot.Public())
}

// GET /api/admin/state — everything, hidden debtors included
func (h *Handler) GetAdminState(c *gin.Context) {
	snapshot, err := h.Ledger.Snapshot(c.Request.Context())
	if err != nil {
		ledgerError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", snapshot)
}

type MoodResponse struct {
	Mood             string `json:"mood"`
	TotalOutstanding int    `json:"total_outstanding"`
}

// GET /api/mood — cosmetic; falls back to a fixed phrase on any
// annotator failure, never errors
func (h *Handler) GetMood(c *gin.Context) {
	snapshot, err := h.Ledger.Snapshot(c.Request.Context())
	if err != nil {
		ledgerError(c, err)
		return
	}

	total := models.TotalOutstanding(snapshot.Debtors)
	utils.SuccessResponse(c, http.StatusOK, "", MoodResponse{
		Mood:             h.Mood.Mood(c.Request.Context(), total),
		TotalOutstanding: total,
	})
}

type ConfigStatus struct {
	Configured bool   `json:"configured"`
	AppName    string `json:"app_name"`
}

// GET /api/config — the only endpoint that carries data while the
// backend is not configured
func (h *Handler) GetConfigStatus(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", ConfigStatus{
		Configured: h.Cfg.Configured(),
		AppName:    h.Cfg.AppName,
	})
}
