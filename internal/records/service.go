package records

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service owns record creation and listing. Records are append-only; there
// is no update or delete.
type Service struct {
	repo Repo
	now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Add stores a data point. An absent timestamp defaults to now.
func (s *Service) Add(ctx context.Context, userID, recordType string, data json.RawMessage, recordedAt *time.Time) (Record, error) {
	at := s.now().UTC()
	if recordedAt != nil && !recordedAt.IsZero() {
		at = recordedAt.UTC()
	}
	if len(data) == 0 {
		data = json.RawMessage(`{}`)
	}
	rec := Record{
		ID:         uuid.NewString(),
		UserID:     userID,
		RecordType: strings.TrimSpace(recordType),
		Data:       data,
		RecordedAt: at,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// List returns the caller's records, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Record, error) {
	return s.repo.ListByUser(ctx, userID)
}
