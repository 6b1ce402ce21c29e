package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthtrack-backend/internal/shared/server/middleware"
	"healthtrack-backend/internal/shared/server/respond"
)

// Handler exposes GET /api/v1/dashboard.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Summary(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	view, err := h.svc.Summarize(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not build dashboard", nil)
		return
	}
	respond.OK(c, view)
}
