package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"healthtrack-backend/internal/shared/server/middleware"
	"healthtrack-backend/internal/shared/server/respond"
	"healthtrack-backend/internal/shared/telemetry"
)

// Handler exposes the account endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register handles POST /api/v1/auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_failed", "invalid registration payload", err.Error())
		return
	}

	u, token, err := h.svc.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if errors.Is(err, ErrDuplicateIdentity) {
		respond.Error(c, http.StatusConflict, "duplicate_identity", "email already registered", nil)
		return
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not register", nil)
		return
	}

	telemetry.Info("user.registered", map[string]any{"user_id": u.ID})
	respond.JSON(c, http.StatusCreated, newAuthResponse(token, u))
}

// Login handles POST /api/v1/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_failed", "invalid login payload", err.Error())
		return
	}

	u, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", nil)
		return
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not log in", nil)
		return
	}

	respond.OK(c, newAuthResponse(token, u))
}

// Me handles GET /api/v1/auth/me.
func (h *Handler) Me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	u, err := h.svc.Resolve(c.Request.Context(), userID)
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusUnauthorized, "identity_not_found", "account no longer exists", nil)
		return
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not load account", nil)
		return
	}
	respond.OK(c, gin.H{"user": ToDTO(u)})
}

// SetGeminiKey handles PUT /api/v1/auth/gemini-key.
func (h *Handler) SetGeminiKey(c *gin.Context) {
	var req geminiKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_failed", "gemini_api_key is required", err.Error())
		return
	}

	userID := middleware.UserIDFromContext(c)
	err := h.svc.SetGeminiKey(c.Request.Context(), userID, req.GeminiAPIKey)
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusUnauthorized, "identity_not_found", "account no longer exists", nil)
		return
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not store credential", nil)
		return
	}

	telemetry.Info("user.gemini_key_set", map[string]any{"user_id": userID})
	respond.OK(c, gin.H{"message": "credential stored"})
}
