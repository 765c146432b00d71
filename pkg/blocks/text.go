package blocks

import "strings"

const wordSeparator = " "

// ResolveText rebuilds the visible text of a block from its direct WORD children,
// in relationship order. The block's own Text field is not consulted.
// Missing children are skipped and non-WORD children are ignored.
func ResolveText(block Block, idx *Index) string {
	var builder strings.Builder

	for _, rel := range block.Relationships {
		if rel.Type != RelationChild {
			continue
		}
		for _, childID := range rel.IDs {
			child, ok := idx.Lookup(childID)
			if !ok || child.BlockType != BlockTypeWord {
				continue
			}
			builder.WriteString(child.TextOrEmpty())
			builder.WriteString(wordSeparator)
		}
	}

	return strings.TrimSuffix(builder.String(), wordSeparator)
}
