package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"healthtrack-backend/internal/documents"
	"healthtrack-backend/internal/shared/metrics"
	"healthtrack-backend/internal/shared/telemetry"
	"healthtrack-backend/internal/users"
)

// CredentialSource resolves the caller's account, including the stored
// analysis credential. Satisfied by *users.Service.
type CredentialSource interface {
	Resolve(ctx context.Context, userID string) (users.User, error)
}

// DocumentStore is the slice of the documents service the analysis flow
// needs. Satisfied by *documents.Service.
type DocumentStore interface {
	Get(ctx context.Context, userID, documentID string) (documents.Document, error)
	StoreAnalysisResult(ctx context.Context, userID, documentID string, result json.RawMessage) error
}

// Service runs one analysis in-request: resolve credential, load the
// document, call the provider, parse or degrade, persist, return.
type Service struct {
	creds  CredentialSource
	docs   DocumentStore
	client Analyzer
	now    func() time.Time
}

func NewService(creds CredentialSource, docs DocumentStore, client Analyzer) *Service {
	return &Service{creds: creds, docs: docs, client: client, now: time.Now}
}

// admissibleType maps an analysis kind to the one document type it accepts.
func admissibleType(kind Kind) documents.Type {
	if kind == KindHair {
		return documents.TypeImage
	}
	return documents.TypePDF
}

// Run performs the analysis and persists the result onto the document,
// overwriting any earlier result. Degraded parses return normally with
// Outcome set; only transport failures and empty answers are errors.
func (s *Service) Run(ctx context.Context, userID, documentID string, kind Kind) (Result, error) {
	user, err := s.creds.Resolve(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if !user.HasGeminiKey() {
		return Result{}, ErrMissingCredential
	}

	doc, err := s.docs.Get(ctx, userID, documentID)
	if err != nil {
		return Result{}, err
	}
	if doc.Type != admissibleType(kind) {
		return Result{}, fmt.Errorf("%w: %s analysis needs a %s document",
			ErrTypeMismatch, kind, admissibleType(kind))
	}

	var text string
	if kind == KindHair {
		text, err = s.client.AnalyzeImage(ctx, user.GeminiAPIKey, doc.Content)
	} else {
		text, err = s.client.AnalyzeText(ctx, user.GeminiAPIKey, doc.Content)
	}
	if err != nil {
		metrics.ObserveAnalysis(string(kind), outcomeForError(err))
		telemetry.Warn("analysis.provider_failed", map[string]any{
			"user_id":     userID,
			"document_id": documentID,
			"kind":        string(kind),
			"error":       err.Error(),
		})
		return Result{}, err
	}

	result := Result{Kind: kind, AnalyzedAt: s.now().UTC()}
	if kind == KindHair {
		hair, outcome := parseHair(text)
		result.Hair = &hair
		result.Outcome = outcome
	} else {
		report, outcome := parseReport(text)
		result.Report = &report
		result.Outcome = outcome
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return Result{}, fmt.Errorf("encode result: %w", err)
	}
	if err := s.docs.StoreAnalysisResult(ctx, userID, documentID, raw); err != nil {
		return Result{}, err
	}

	if result.Outcome == OutcomeDegraded {
		metrics.ObserveAnalysis(string(kind), "degraded")
	} else {
		metrics.ObserveAnalysis(string(kind), "ok")
	}
	telemetry.Info("analysis.completed", map[string]any{
		"user_id":     userID,
		"document_id": documentID,
		"kind":        string(kind),
		"outcome":     string(result.Outcome),
	})
	return result, nil
}

func outcomeForError(err error) string {
	if errors.Is(err, ErrNoAnalysisProduced) {
		return "empty"
	}
	return "unavailable"
}
