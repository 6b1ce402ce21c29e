package records

import "context"

// Repo persists records; append-only, owner-scoped reads.
type Repo interface {
	Create(ctx context.Context, r Record) error
	ListByUser(ctx context.Context, userID string) ([]Record, error)
}
