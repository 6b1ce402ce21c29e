package documents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"healthtrack-backend/internal/extract"
	"healthtrack-backend/internal/shared/metrics"
	"healthtrack-backend/internal/shared/telemetry"
)

// MaxUploadBytes caps accepted payloads.
const MaxUploadBytes = 10 << 20

// Service owns the document lifecycle: upload with type-dependent content
// encoding, listing and analysis-result storage.
type Service struct {
	repo Repo
	now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Upload validates and persists a payload. The stored content is fixed here:
// images are base64-encoded, PDFs are reduced to extracted text. A PDF that
// yields no text fails with ErrExtractionFailed and nothing is persisted.
func (s *Service) Upload(ctx context.Context, userID string, docType Type, filename string, payload []byte) (Document, error) {
	if !ValidType(docType) {
		return Document{}, ErrUnsupportedType
	}
	if len(payload) == 0 {
		return Document{}, fmt.Errorf("%w: empty payload", ErrExtractionFailed)
	}
	if len(payload) > MaxUploadBytes {
		return Document{}, ErrPayloadTooLarge
	}

	var content string
	switch docType {
	case TypeImage:
		content = extract.ImageBase64(payload)
	case TypePDF:
		text, err := extract.PDFText(payload)
		if err != nil {
			telemetry.Warn("document.extraction_failed", map[string]any{
				"user_id":  userID,
				"filename": filename,
				"error":    err.Error(),
			})
			return Document{}, errors.Join(ErrExtractionFailed, err)
		}
		content = text
	}

	d := Document{
		ID:               uuid.NewString(),
		UserID:           userID,
		Type:             docType,
		OriginalFilename: filename,
		Content:          content,
		CreatedAt:        s.now().UTC(),
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return Document{}, err
	}

	metrics.ObserveUpload(string(docType))
	telemetry.Info("document.uploaded", map[string]any{
		"user_id":       userID,
		"document_id":   d.ID,
		"document_type": string(docType),
		"size_bytes":    len(payload),
	})
	return d, nil
}

// Get returns the caller's document or ErrNotFound.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	return s.repo.GetByID(ctx, userID, documentID)
}

// List returns the caller's documents, newest first. limit <= 0 lists all.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]Document, error) {
	return s.repo.ListByUser(ctx, userID, limit)
}

// StoreAnalysisResult overwrites the document's stored result. Re-analysis
// is last-write-wins.
func (s *Service) StoreAnalysisResult(ctx context.Context, userID, documentID string, result json.RawMessage) error {
	return s.repo.SetAnalysisResult(ctx, userID, documentID, result)
}
