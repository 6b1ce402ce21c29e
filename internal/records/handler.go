package records

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"healthtrack-backend/internal/shared/server/middleware"
	"healthtrack-backend/internal/shared/server/respond"
)

// Handler exposes the record endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type createRequest struct {
	RecordType string          `json:"record_type" binding:"required"`
	Data       json.RawMessage `json:"data"`
	Timestamp  *time.Time      `json:"timestamp"`
}

// Create handles POST /api/v1/records.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_failed", "record_type is required", err.Error())
		return
	}

	userID := middleware.UserIDFromContext(c)
	rec, err := h.svc.Add(c.Request.Context(), userID, req.RecordType, req.Data, req.Timestamp)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not store record", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"record": rec})
}

// List handles GET /api/v1/records.
func (h *Handler) List(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	recs, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not list records", nil)
		return
	}
	respond.OK(c, gin.H{"records": recs})
}
