package documents

import (
	"context"
	"encoding/json"
)

// Repo persists documents. All reads are scoped by owner.
type Repo interface {
	Create(ctx context.Context, d Document) error
	GetByID(ctx context.Context, userID, documentID string) (Document, error)
	// ListByUser returns the owner's documents newest first. limit <= 0
	// means no limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]Document, error)
	SetAnalysisResult(ctx context.Context, userID, documentID string, result json.RawMessage) error
}
