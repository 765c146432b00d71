package blocks

import "fmt"

// Result holds everything reconstructed from one analysis result
type Result struct {
	KeyValues  *Fields  `json:"key_value_pairs"`
	Lines      []string `json:"all_text"`
	BlockCount int      `json:"blocks_count"`
}

// Analyze indexes blocks once and runs both extractors over it.
// A nil collection is a caller error; an empty one yields an empty Result.
func Analyze(blocks []Block) (*Result, error) {
	if blocks == nil {
		return nil, fmt.Errorf("no block collection provided: %w", ErrInvalidInput)
	}

	idx := NewIndex(blocks)

	return &Result{
		KeyValues:  ExtractKeyValues(idx),
		Lines:      ExtractLines(blocks),
		BlockCount: len(blocks),
	}, nil
}
