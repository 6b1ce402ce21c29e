package documents

import "time"

// Summary is the listing shape: raw content and stored results stay out of
// listings, only metadata and the analysis flag go over the wire.
type Summary struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Type        string    `json:"type"`
	HasAnalysis bool      `json:"has_analysis"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToSummary converts a document to its listing shape.
func ToSummary(d Document) Summary {
	return Summary{
		ID:          d.ID,
		Filename:    d.OriginalFilename,
		Type:        string(d.Type),
		HasAnalysis: d.Analyzed(),
		CreatedAt:   d.CreatedAt,
	}
}

// ToSummaries maps a slice of documents preserving order.
func ToSummaries(docs []Document) []Summary {
	out := make([]Summary, 0, len(docs))
	for _, d := range docs {
		out = append(out, ToSummary(d))
	}
	return out
}
