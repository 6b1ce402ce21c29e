package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo is the Postgres-backed Repo.
type PGRepo struct {
	db *sql.DB
}

func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{db: db}
}

func (r *PGRepo) Create(ctx context.Context, d Document) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (id, user_id, document_type, original_filename, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, d.ID, d.UserID, string(d.Type), d.OriginalFilename, d.Content, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, document_type, original_filename, content, analysis_result, created_at
		FROM documents
		WHERE id = $1 AND user_id = $2
	`, documentID, userID)
	return scanDocument(row)
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Document, error) {
	query := `
		SELECT id, user_id, document_type, original_filename, content, analysis_result, created_at
		FROM documents
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	out := make([]Document, 0)
	for rows.Next() {
		var d Document
		var docType string
		var result []byte
		if err := rows.Scan(&d.ID, &d.UserID, &docType, &d.OriginalFilename, &d.Content, &result, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		d.Type = Type(docType)
		if len(result) > 0 {
			d.AnalysisResult = json.RawMessage(result)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return out, nil
}

func (r *PGRepo) SetAnalysisResult(ctx context.Context, userID, documentID string, result json.RawMessage) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE documents SET analysis_result = $3 WHERE id = $1 AND user_id = $2
	`, documentID, userID, []byte(result))
	if err != nil {
		return fmt.Errorf("update analysis result: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update analysis result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDocument(row *sql.Row) (Document, error) {
	var d Document
	var docType string
	var result []byte
	err := row.Scan(&d.ID, &d.UserID, &docType, &d.OriginalFilename, &d.Content, &result, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("scan document: %w", err)
	}
	d.Type = Type(docType)
	if len(result) > 0 {
		d.AnalysisResult = json.RawMessage(result)
	}
	return d, nil
}
