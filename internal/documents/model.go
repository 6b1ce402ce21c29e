package documents

import (
	"encoding/json"
	"time"
)

// Type distinguishes what a document holds and how its content was encoded.
type Type string

const (
	TypeImage Type = "image" // content is base64 of the raw bytes
	TypePDF   Type = "pdf"   // content is extracted plain text
)

// ValidType reports whether t is a supported document type.
func ValidType(t Type) bool {
	return t == TypeImage || t == TypePDF
}

// Document is an uploaded payload plus, once analyzed, its result.
// Content is fixed at creation; AnalysisResult is nil until an analysis
// succeeds and is overwritten by later re-analyses.
type Document struct {
	ID               string
	UserID           string
	Type             Type
	OriginalFilename string
	Content          string
	AnalysisResult   json.RawMessage
	CreatedAt        time.Time
}

// Analyzed reports whether the document carries a stored analysis result.
func (d Document) Analyzed() bool {
	return len(d.AnalysisResult) > 0
}
