package documents

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"healthtrack-backend/internal/shared/server/middleware"
	"healthtrack-backend/internal/shared/server/respond"
)

// Handler exposes the document endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Upload handles POST /api/v1/documents (multipart: file, document_type).
func (h *Handler) Upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	docType := Type(strings.TrimSpace(c.PostForm("document_type")))
	if !ValidType(docType) {
		respond.Error(c, http.StatusBadRequest, "unsupported_document_type", "document_type must be image or pdf", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_failed", "file is required", nil)
		return
	}
	if fileHeader.Size > MaxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "file exceeds 10 MiB limit", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_failed", "could not read file", nil)
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, MaxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_failed", "could not read file", nil)
		return
	}
	if len(payload) > MaxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "file exceeds 10 MiB limit", nil)
		return
	}

	doc, err := h.svc.Upload(c.Request.Context(), userID, docType, fileHeader.Filename, payload)
	switch {
	case errors.Is(err, ErrExtractionFailed):
		respond.Error(c, http.StatusUnprocessableEntity, "content_extraction_failed", "could not extract text from document", nil)
		return
	case errors.Is(err, ErrPayloadTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "file exceeds 10 MiB limit", nil)
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not store document", nil)
		return
	}

	c.Set("documentId", doc.ID)
	respond.JSON(c, http.StatusCreated, gin.H{"document": ToSummary(doc)})
}

// List handles GET /api/v1/documents.
func (h *Handler) List(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	docs, err := h.svc.List(c.Request.Context(), userID, 0)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not list documents", nil)
		return
	}
	respond.OK(c, gin.H{"documents": ToSummaries(docs)})
}
