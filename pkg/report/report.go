// Package report renders extracted label data for people and downstream systems.
//
// Key Features:
//
// - JSON summaries matching the analysis response body
// - CSV sheets with one row per label and a fixed column set
// - XLSX workbooks with a Fields and a Lines sheet
// - PDF reports with one page per label
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gardar/ocrlabels/pkg/blocks"
)

// Summary is the serialized form of one analyzed label
type Summary struct {
	Message     string         `json:"message,omitempty"`
	Bucket      string         `json:"bucket,omitempty"`
	ImageKey    string         `json:"image_key"`
	KeyValues   *blocks.Fields `json:"key_value_pairs"`
	AllText     []string       `json:"all_text"`
	AnalyzedAt  string         `json:"analyzed_at"`
	BlocksCount int            `json:"blocks_count"`
}

// NewSummary builds a Summary from an extraction result
func NewSummary(bucket, imageKey string, analyzedAt time.Time, res *blocks.Result) Summary {
	s := Summary{
		Bucket:     bucket,
		ImageKey:   imageKey,
		KeyValues:  blocks.NewFields(),
		AllText:    []string{},
		AnalyzedAt: analyzedAt.Format(time.RFC3339),
	}
	if res != nil {
		if res.KeyValues != nil {
			s.KeyValues = res.KeyValues
		}
		if res.Lines != nil {
			s.AllText = res.Lines
		}
		s.BlocksCount = res.BlockCount
	}
	return s
}

// ParseSummary decodes a summary previously written with WriteJSON
func ParseSummary(data []byte) (Summary, error) {
	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return Summary{}, fmt.Errorf("failed to decode summary: %w", err)
	}
	if s.KeyValues == nil {
		s.KeyValues = blocks.NewFields()
	}
	if s.AllText == nil {
		s.AllText = []string{}
	}
	return s, nil
}

// WriteJSON writes v as indented JSON without escaping HTML characters
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
