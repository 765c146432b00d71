package blocks

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// analysisResponse is the subset of an AnalyzeDocument response this package reads
type analysisResponse struct {
	Blocks []Block `json:"Blocks"`
}

// ParseJSON decodes blocks from Textract-shaped JSON.
// It accepts either a full response object with a "Blocks" field or a bare array of blocks.
func ParseJSON(data []byte) ([]Block, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document: %w", ErrInvalidInput)
	}

	if trimmed[0] == '[' {
		var blocks []Block
		if err := json.Unmarshal(trimmed, &blocks); err != nil {
			return nil, fmt.Errorf("failed to decode block array: %w", err)
		}
		return blocks, nil
	}

	var resp analysisResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode analysis response: %w", err)
	}
	if resp.Blocks == nil {
		resp.Blocks = []Block{}
	}
	return resp.Blocks, nil
}
