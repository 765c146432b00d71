package blocks

import "strings"

// ExtractKeyValues scans the index for KEY blocks and pairs each one with its VALUE block.
//
// Keys are normalized by trimming whitespace and a single trailing colon. A key that is empty
// after normalization is dropped. A key without a resolvable value maps to "". When two keys
// normalize to the same string, the one visited later wins.
func ExtractKeyValues(idx *Index) *Fields {
	fields := NewFields()

	for _, block := range idx.Blocks() {
		if !block.IsKey() {
			continue
		}

		key := NormalizeKey(ResolveText(block, idx))
		if key == "" {
			continue
		}

		fields.Set(key, valueText(block, idx))
	}

	return fields
}

// NormalizeKey trims surrounding whitespace and one trailing ':' from a key label
func NormalizeKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.TrimSuffix(key, ":")
	return strings.TrimSpace(key)
}

// valueText resolves the text of the block referenced by the first VALUE relationship
func valueText(key Block, idx *Index) string {
	rel, ok := key.FirstRelationship(RelationValue)
	if !ok || len(rel.IDs) == 0 {
		return ""
	}

	value, ok := idx.Lookup(rel.IDs[0])
	if !ok {
		return ""
	}

	return strings.TrimSpace(ResolveText(value, idx))
}
