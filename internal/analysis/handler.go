package analysis

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"healthtrack-backend/internal/documents"
	"healthtrack-backend/internal/shared/server/middleware"
	"healthtrack-backend/internal/shared/server/respond"
	"healthtrack-backend/internal/users"
)

// Handler exposes the analysis endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type analyzeRequest struct {
	DocumentID string `json:"document_id" binding:"required"`
}

// Hair handles POST /api/v1/analysis/hair.
func (h *Handler) Hair(c *gin.Context) {
	h.run(c, KindHair)
}

// Document handles POST /api/v1/analysis/document.
func (h *Handler) Document(c *gin.Context) {
	h.run(c, KindDocument)
}

func (h *Handler) run(c *gin.Context, kind Kind) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_failed", "document_id is required", err.Error())
		return
	}

	userID := middleware.UserIDFromContext(c)
	c.Set("documentId", req.DocumentID)
	c.Set("analysisKind", string(kind))

	result, err := h.svc.Run(c.Request.Context(), userID, req.DocumentID, kind)
	switch {
	case errors.Is(err, users.ErrNotFound):
		respond.Error(c, http.StatusUnauthorized, "identity_not_found", "account no longer exists", nil)
		return
	case errors.Is(err, ErrMissingCredential):
		respond.Error(c, http.StatusBadRequest, "missing_credential", "store a Gemini API key before requesting analyses", nil)
		return
	case errors.Is(err, documents.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "document_not_found", "document not found", nil)
		return
	case errors.Is(err, ErrTypeMismatch):
		respond.Error(c, http.StatusBadRequest, "type_mismatch", err.Error(), nil)
		return
	case errors.Is(err, ErrNoAnalysisProduced):
		respond.Error(c, http.StatusBadGateway, "no_analysis_produced", "analysis service returned no result", nil)
		return
	case errors.Is(err, ErrServiceUnavailable):
		respond.Error(c, http.StatusBadGateway, "external_service_unavailable", "analysis service unavailable", nil)
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not run analysis", nil)
		return
	}

	respond.OK(c, gin.H{"analysis": result})
}
