package documents

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "document_type", "original_filename", "content", "analysis_result", "created_at"}).
		AddRow("d2", "u1", "pdf", "labs.pdf", "glucose 95", []byte(`{"summary":"ok"}`), created.Add(time.Hour)).
		AddRow("d1", "u1", "image", "scalp.png", "aGVsbG8=", nil, created)
	mock.ExpectQuery(regexp.QuoteMeta("FROM documents")).
		WithArgs("u1").
		WillReturnRows(rows)

	repo := NewPGRepo(db)
	docs, err := repo.ListByUser(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("want 2 docs, got %d", len(docs))
	}
	if !docs[0].Analyzed() || docs[1].Analyzed() {
		t.Fatal("nullable analysis_result mapped wrong")
	}
	if docs[0].Type != TypePDF {
		t.Fatalf("type = %q", docs[0].Type)
	}
}

func TestPGRepoSetAnalysisResultScopesOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE documents SET analysis_result")).
		WithArgs("d1", "intruder", []byte(`{}`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPGRepo(db)
	err = repo.SetAnalysisResult(context.Background(), "intruder", "d1", json.RawMessage(`{}`))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
