// Package dashboard is a pure read path: it composes document listings into
// a summary view and never writes.
package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"healthtrack-backend/internal/documents"
)

const (
	recentWindow = 10
	maxAnalyses  = 5
)

// DocumentLister is the slice of the documents service the dashboard reads
// through. Satisfied by *documents.Service.
type DocumentLister interface {
	List(ctx context.Context, userID string, limit int) ([]documents.Document, error)
}

// Entry is one analyzed document with its embedded result.
type Entry struct {
	ID        string          `json:"id"`
	Filename  string          `json:"filename"`
	Type      string          `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
	Analysis  json.RawMessage `json:"analysis"`
}

// View is the dashboard summary over the user's recent documents.
type View struct {
	TotalDocuments    int     `json:"total_documents"`
	AnalyzedDocuments int     `json:"analyzed_documents"`
	RecentAnalyses    []Entry `json:"recent_analyses"`
}

// Service summarizes a user's recent documents.
type Service struct {
	docs DocumentLister
}

func NewService(docs DocumentLister) *Service {
	return &Service{docs: docs}
}

// Summarize considers the user's 10 most recent documents and reports the
// totals plus the 5 most recent analyzed ones, newest first.
func (s *Service) Summarize(ctx context.Context, userID string) (View, error) {
	docs, err := s.docs.List(ctx, userID, recentWindow)
	if err != nil {
		return View{}, err
	}

	view := View{
		TotalDocuments: len(docs),
		RecentAnalyses: make([]Entry, 0, maxAnalyses),
	}
	for _, d := range docs {
		if !d.Analyzed() {
			continue
		}
		view.AnalyzedDocuments++
		if len(view.RecentAnalyses) < maxAnalyses {
			view.RecentAnalyses = append(view.RecentAnalyses, Entry{
				ID:        d.ID,
				Filename:  d.OriginalFilename,
				Type:      string(d.Type),
				CreatedAt: d.CreatedAt,
				Analysis:  d.AnalysisResult,
			})
		}
	}
	return view, nil
}
