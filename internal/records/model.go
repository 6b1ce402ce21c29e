package records

import (
	"encoding/json"
	"time"
)

// Record is a generic owned data point (weight, blood pressure, symptoms).
// Data is opaque JSON; the service never interprets it.
type Record struct {
	ID         string          `json:"id"`
	UserID     string          `json:"-"`
	RecordType string          `json:"record_type"`
	Data       json.RawMessage `json:"data"`
	RecordedAt time.Time       `json:"recorded_at"`
}
