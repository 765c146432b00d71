package hocr

import (
	"fmt"
	"strings"

	"github.com/gardar/ocrlabels/pkg/blocks"
)

// Blocks converts a parsed hOCR document into LINE and WORD blocks.
// A line's text is its words joined by single spaces. Element ids from the document are reused
// when present, otherwise positional ids are generated.
func Blocks(doc *Document) []blocks.Block {
	result := make([]blocks.Block, 0)
	if doc == nil {
		return result
	}

	for pidx, page := range doc.Pages {
		pageNum := pidx + 1
		var words []blocks.Block

		for lidx, line := range page.Lines {
			lineID := line.ID
			if lineID == "" {
				lineID = fmt.Sprintf("p%d-l%d", pageNum, lidx)
			}

			texts := make([]string, 0, len(line.Words))
			children := make([]string, 0, len(line.Words))
			for widx, w := range line.Words {
				wordID := w.ID
				if wordID == "" {
					wordID = fmt.Sprintf("%s-w%d", lineID, widx)
				}
				word := blocks.Block{
					ID:        wordID,
					BlockType: blocks.BlockTypeWord,
					Text:      blocks.String(w.Text),
					Page:      pageNum,
				}
				if w.Confidence > 0 {
					c := float32(w.Confidence)
					word.Confidence = &c
				}
				words = append(words, word)
				children = append(children, wordID)
				texts = append(texts, w.Text)
			}

			block := blocks.Block{
				ID:        lineID,
				BlockType: blocks.BlockTypeLine,
				Text:      blocks.String(strings.Join(texts, " ")),
				Page:      pageNum,
			}
			if len(children) > 0 {
				block.Relationships = []blocks.Relationship{{Type: blocks.RelationChild, IDs: children}}
			}
			result = append(result, block)
		}

		result = append(result, words...)
	}

	return result
}
