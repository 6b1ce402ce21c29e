package users

import "context"

// Repo persists users. Implementations: Postgres-backed and in-memory.
type Repo interface {
	Create(ctx context.Context, u User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	SetGeminiKey(ctx context.Context, id, key string) error
	// UpsertByEmail inserts the user if the email is new, otherwise returns
	// the existing account (refreshing the display name when it was empty).
	UpsertByEmail(ctx context.Context, u User) (User, error)
}
