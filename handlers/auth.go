package handlers

import (
	"crypto/subtle"
	"net/http"

	"guaravita-backend/middleware"
	"guaravita-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
}

// POST /auth/admin
//
// The shared-password gate. This is a convenience gate for a single
// admin, not an authentication system: one password, one role.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if !h.passwordMatches(req.Password) {
		utils.Unauthorized(c, "Senha incorreta, vacilão!")
		return
	}

	sessionID := uuid.NewString()
	if err := h.Sessions.Create(c.Request.Context(), sessionID); err != nil {
		utils.InternalError(c, "Failed to create session")
		return
	}

	token, err := utils.GenerateAdminToken(h.Cfg.JWTSecret, sessionID)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", AdminLoginResponse{Token: token})
}

// POST /auth/logout
func (h *Handler) AdminLogout(c *gin.Context) {
	h.Sessions.Revoke(c.Request.Context(), middleware.SessionID(c))
	utils.SuccessResponse(c, http.StatusOK, "Logged out", nil)
}

func (h *Handler) passwordMatches(password string) bool {
	if h.Cfg.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(h.Cfg.AdminPasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(h.Cfg.AdminPassword), []byte(password)) == 1
}
