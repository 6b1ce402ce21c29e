package documents

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestUploadImageEncodesBase64(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	payload := []byte{0x89, 0x50, 0x4E, 0x47}

	doc, err := svc.Upload(context.Background(), "u1", TypeImage, "scalp.png", payload)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(doc.Content)
	if err != nil {
		t.Fatalf("content is not valid base64: %v", err)
	}
	if !bytes.Equal(decoded, payload) {
		t.Fatal("content does not round-trip to the original bytes")
	}
	if doc.Analyzed() {
		t.Fatal("fresh document must not be analyzed")
	}
}

func TestUploadRejectsUnknownType(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	_, err := svc.Upload(context.Background(), "u1", Type("spreadsheet"), "x.xlsx", []byte("data"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("want ErrUnsupportedType, got %v", err)
	}
}

func TestUploadRejectsOversizedPayload(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	_, err := svc.Upload(context.Background(), "u1", TypeImage, "big.png", make([]byte, MaxUploadBytes+1))
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("want ErrPayloadTooLarge, got %v", err)
	}
}

func TestUploadBadPDFPersistsNothing(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	_, err := svc.Upload(context.Background(), "u1", TypePDF, "report.pdf", []byte("not a pdf"))
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("want ErrExtractionFailed, got %v", err)
	}
	docs, err := repo.ListByUser(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("failed extraction must not persist, found %d docs", len(docs))
	}
}

func TestListNewestFirstAndOwnerScoped(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, owner := range []string{"u1", "u1", "u2"} {
		svc.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		if _, err := svc.Upload(ctx, owner, TypeImage, "img.png", []byte{byte(i)}); err != nil {
			t.Fatalf("Upload %d: %v", i, err)
		}
	}

	docs, err := svc.List(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("u1 should see 2 documents, got %d", len(docs))
	}
	if !docs[0].CreatedAt.After(docs[1].CreatedAt) {
		t.Fatal("listing must be newest first")
	}
}

func TestStoreAnalysisResultOverwrites(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "u1", TypeImage, "img.png", []byte{1})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	first := json.RawMessage(`{"summary":"first"}`)
	second := json.RawMessage(`{"summary":"second"}`)
	if err := svc.StoreAnalysisResult(ctx, "u1", doc.ID, first); err != nil {
		t.Fatalf("first store: %v", err)
	}
	if err := svc.StoreAnalysisResult(ctx, "u1", doc.ID, second); err != nil {
		t.Fatalf("second store: %v", err)
	}

	got, err := svc.Get(ctx, "u1", doc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got.AnalysisResult) != string(second) {
		t.Fatalf("re-analysis must overwrite, got %s", got.AnalysisResult)
	}

	if err := svc.StoreAnalysisResult(ctx, "u2", doc.ID, first); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other users must not reach the document, got %v", err)
	}
}

func TestGetIsOwnerScoped(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "u1", TypeImage, "img.png", []byte{1})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if _, err := svc.Get(ctx, "u2", doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign document must read as missing, got %v", err)
	}
}
