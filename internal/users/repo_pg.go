package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo is the Postgres-backed Repo.
type PGRepo struct {
	db *sql.DB
}

func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{db: db}
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *PGRepo) Create(ctx context.Context, u User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, password_hash, gemini_api_key, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
	`, u.ID, normalizeEmail(u.Email), u.Name, u.PasswordHash, u.GeminiAPIKey, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateIdentity
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, COALESCE(gemini_api_key, ''), created_at
		FROM users
		WHERE email = $1
	`, normalizeEmail(email))
	return scanUser(row)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, COALESCE(gemini_api_key, ''), created_at
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *PGRepo) SetGeminiKey(ctx context.Context, id, key string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET gemini_api_key = NULLIF($2, '') WHERE id = $1
	`, id, key)
	if err != nil {
		return fmt.Errorf("update gemini key: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update gemini key: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) UpsertByEmail(ctx context.Context, u User) (User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, '', $4)
		ON CONFLICT (email) DO UPDATE
		SET name = CASE WHEN users.name = '' THEN EXCLUDED.name ELSE users.name END
		RETURNING id, email, name, password_hash, COALESCE(gemini_api_key, ''), created_at
	`, u.ID, normalizeEmail(u.Email), strings.TrimSpace(u.Name), u.CreatedAt)
	return scanUser(row)
}

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.GeminiAPIKey, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}
