package gdocai

import (
	"fmt"
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/ocrlabels/pkg/blocks"
)

// token is a converted Document AI token with the text range it covers
type token struct {
	id    string
	spans []span
}

// Blocks converts a Document AI response into a block list.
//
// Per page it emits LINE blocks (with CHILD edges to their words), one KEY and one VALUE
// KEY_VALUE_SET block per form field and finally the WORD blocks for the tokens. A form field
// half whose anchor covers no token gets a synthetic WORD child holding the anchor text.
func Blocks(doc *documentaipb.Document) []blocks.Block {
	result := make([]blocks.Block, 0)
	if doc == nil {
		return result
	}

	runes := []rune(doc.Text)

	for pidx, page := range doc.Pages {
		pageNum := int(page.PageNumber)
		if pageNum <= 0 {
			pageNum = pidx + 1
		}
		prefix := fmt.Sprintf("p%d", pageNum)

		// Collect tokens (words)
		words := make([]blocks.Block, 0, len(page.Tokens))
		tokens := make([]token, 0, len(page.Tokens))
		for tidx, tok := range page.Tokens {
			spans := spansFromLayout(tok.Layout, len(runes))
			id := fmt.Sprintf("%s-t%d", prefix, tidx)
			tokens = append(tokens, token{id: id, spans: spans})
			words = append(words, blocks.Block{
				ID:         id,
				BlockType:  blocks.BlockTypeWord,
				Text:       blocks.String(strings.TrimSpace(textFromSpans(spans, runes))),
				Confidence: confidence(tok.Layout),
				Page:       pageNum,
			})
		}

		// Collect lines
		for lidx, line := range page.Lines {
			spans := spansFromLayout(line.Layout, len(runes))
			block := blocks.Block{
				ID:         fmt.Sprintf("%s-l%d", prefix, lidx),
				BlockType:  blocks.BlockTypeLine,
				Text:       blocks.String(strings.TrimSpace(textFromSpans(spans, runes))),
				Confidence: confidence(line.Layout),
				Page:       pageNum,
			}
			if children := childIDs(spans, tokens); len(children) > 0 {
				block.Relationships = []blocks.Relationship{{Type: blocks.RelationChild, IDs: children}}
			}
			result = append(result, block)
		}

		// Collect form fields as key/value pairs
		for fidx, field := range page.FormFields {
			keyID := fmt.Sprintf("%s-f%d-key", prefix, fidx)
			valueID := fmt.Sprintf("%s-f%d-value", prefix, fidx)

			key, keyWords := fieldBlock(keyID, blocks.EntityTypeKey, field.FieldName, runes, tokens, pageNum)
			key.Relationships = append(key.Relationships, blocks.Relationship{Type: blocks.RelationValue, IDs: []string{valueID}})
			value, valueWords := fieldBlock(valueID, blocks.EntityTypeValue, field.FieldValue, runes, tokens, pageNum)

			result = append(result, key, value)
			words = append(words, keyWords...)
			words = append(words, valueWords...)
		}

		result = append(result, words...)
	}

	return result
}

// fieldBlock builds one half of a form field and any synthetic words it needs
func fieldBlock(id string, entity blocks.EntityType, layout *documentaipb.Document_Page_Layout, runes []rune, tokens []token, pageNum int) (blocks.Block, []blocks.Block) {
	block := blocks.Block{
		ID:          id,
		BlockType:   blocks.BlockTypeKeyValueSet,
		EntityTypes: []blocks.EntityType{entity},
		Confidence:  confidence(layout),
		Page:        pageNum,
	}

	spans := spansFromLayout(layout, len(runes))
	children := childIDs(spans, tokens)

	var synthetic []blocks.Block
	if len(children) == 0 {
		text := strings.TrimSpace(textFromSpans(spans, runes))
		if text == "" {
			return block, nil
		}
		wordID := id + "-text"
		synthetic = append(synthetic, blocks.Block{
			ID:        wordID,
			BlockType: blocks.BlockTypeWord,
			Text:      blocks.String(text),
			Page:      pageNum,
		})
		children = []string{wordID}
	}

	block.Relationships = []blocks.Relationship{{Type: blocks.RelationChild, IDs: children}}
	return block, synthetic
}

// childIDs returns the ids of tokens that fall inside spans, in token order
func childIDs(spans []span, tokens []token) []string {
	if len(spans) == 0 {
		return nil
	}
	var ids []string
	for _, t := range tokens {
		if within(t.spans, spans) {
			ids = append(ids, t.id)
		}
	}
	return ids
}

func confidence(layout *documentaipb.Document_Page_Layout) *float32 {
	if layout == nil || layout.Confidence == 0 {
		return nil
	}
	c := layout.Confidence * 100
	return &c
}
