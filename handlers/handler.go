package handlers

import (
	"errors"
	"log"

	"guaravita-backend/config"
	"guaravita-backend/services"
	"guaravita-backend/utils"

	"github.com/gin-gonic/gin"
)

// Handler carries the injected collaborators for all HTTP handlers.
// Nothing in here is package-global; main builds one and hands it to
// the router.
type Handler struct {
	Cfg      *config.Config
	Ledger   *services.Ledger
	Mood     *services.MoodService
	Notifier *services.NotificationService
	Sessions *services.SessionStore
}

func New(cfg *config.Config, ledger *services.Ledger, mood *services.MoodService, notifier *services.NotificationService, sessions *services.SessionStore) *Handler {
	return &Handler{
		Cfg:      cfg,
		Ledger:   ledger,
		Mood:     mood,
		Notifier: notifier,
		Sessions: sessions,
	}
}

// ledgerError maps ledger sentinels onto HTTP status codes. Anything
// unrecognized is a persistence failure and stays a 500.
func ledgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyName):
		utils.BadRequest(c, "Debtor name must not be empty")
	case errors.Is(err, services.ErrDebtorNotFound):
		utils.NotFound(c, "Debtor not found")
	case errors.Is(err, services.ErrRequestNotFound):
		utils.NotFound(c, "Payment request not found")
	case errors.Is(err, services.ErrRequestAlreadyProcessed):
		utils.Conflict(c, "Payment request already processed")
	default:
		log.Printf("❌ Ledger operation failed: %v", err)
		utils.InternalError(c, "Operation failed")
	}
}
