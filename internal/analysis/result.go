package analysis

import (
	"encoding/json"
	"strings"
	"time"
)

// Kind selects the prompt and the admissible document type.
type Kind string

const (
	KindHair     Kind = "hair"     // image documents
	KindDocument Kind = "document" // pdf documents
)

// Outcome records how the provider's answer was handled.
type Outcome string

const (
	// OutcomeParsed means the answer carried the expected JSON.
	OutcomeParsed Outcome = "parsed"
	// OutcomeDegraded means the answer did not parse and the raw text was
	// kept instead. Degraded results are successes, not errors.
	OutcomeDegraded Outcome = "degraded"
)

// degradedConfidence is the fixed score attached to degraded results.
const degradedConfidence = 0.25

// rawTextLimit caps how much raw provider text a degraded result keeps.
const rawTextLimit = 500

// RiskLevel tolerates both the object form {"level":..,"confidence":..} and a
// bare string level in provider answers.
type RiskLevel struct {
	Level      string  `json:"level"`
	Confidence float64 `json:"confidence,omitempty"`
}

func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	var level string
	if err := json.Unmarshal(data, &level); err == nil {
		r.Level = level
		r.Confidence = 0
		return nil
	}
	type riskAlias RiskLevel
	var alias riskAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*r = RiskLevel(alias)
	return nil
}

// HairAnalysis is the structured result of a scalp image analysis.
type HairAnalysis struct {
	HairCountEstimate string    `json:"hair_count_estimate"`
	BaldnessZones     []string  `json:"baldness_zones"`
	Risk3Years        RiskLevel `json:"risk_3_years"`
	Risk5Years        RiskLevel `json:"risk_5_years"`
	Risk10Years       RiskLevel `json:"risk_10_years"`
	Recommendations   []string  `json:"recommendations"`
	ConfidenceScore   float64   `json:"confidence_score"`
}

// ReportAnalysis is the structured result of a medical report analysis.
type ReportAnalysis struct {
	MainFindings    []string `json:"main_findings"`
	Recommendations []string `json:"recommendations"`
	FollowUp        []string `json:"follow_up"`
	Summary         string   `json:"summary"`
	ConfidenceScore float64  `json:"confidence_score"`
}

// Result is what gets persisted onto the document and returned to callers.
type Result struct {
	Kind       Kind            `json:"kind"`
	Outcome    Outcome         `json:"outcome"`
	Hair       *HairAnalysis   `json:"hair_analysis,omitempty"`
	Report     *ReportAnalysis `json:"report_analysis,omitempty"`
	AnalyzedAt time.Time       `json:"analyzed_at"`
}

// parseHair interprets the provider's text as a HairAnalysis. Unparseable
// answers degrade: fixed confidence, raw text kept as the one recommendation.
func parseHair(text string) (HairAnalysis, Outcome) {
	if body, ok := extractJSON(text); ok {
		var out HairAnalysis
		if err := json.Unmarshal([]byte(body), &out); err == nil {
			return out, OutcomeParsed
		}
	}
	return HairAnalysis{
		Recommendations: []string{truncateRunes(text, rawTextLimit)},
		ConfidenceScore: degradedConfidence,
	}, OutcomeDegraded
}

// parseReport interprets the provider's text as a ReportAnalysis. Unparseable
// answers degrade with the raw text as the summary.
func parseReport(text string) (ReportAnalysis, Outcome) {
	if body, ok := extractJSON(text); ok {
		var out ReportAnalysis
		if err := json.Unmarshal([]byte(body), &out); err == nil {
			return out, OutcomeParsed
		}
	}
	return ReportAnalysis{
		Summary:         truncateRunes(text, rawTextLimit),
		ConfidenceScore: degradedConfidence,
	}, OutcomeDegraded
}

// extractJSON isolates the substring from the first '{' to the last '}',
// which strips markdown fences and prose the provider wraps around the JSON.
func extractJSON(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
