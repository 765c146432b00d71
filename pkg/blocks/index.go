package blocks

import "slices"

// Index maps block ids to blocks for a single analysis result.
// It is read-only once built and may be shared by readers of the same pass.
type Index struct {
	byID  map[string]int
	order []Block
}

// DanglingReference is a relationship target that is not present in the index
type DanglingReference struct {
	From     string
	Relation RelationType
	Target   string
}

// NewIndex builds an Index in one pass over blocks.
// When an id occurs more than once the later block replaces the earlier one.
func NewIndex(blocks []Block) *Index {
	last := make(map[string]int, len(blocks))
	for i, b := range blocks {
		last[b.ID] = i
	}

	idx := &Index{
		byID:  make(map[string]int, len(last)),
		order: make([]Block, 0, len(last)),
	}
	for i, b := range blocks {
		// Superseded occurrences are skipped so each id is visited once
		if last[b.ID] != i {
			continue
		}
		idx.byID[b.ID] = len(idx.order)
		idx.order = append(idx.order, b)
	}

	return idx
}

// Lookup returns the block with the given id
func (idx *Index) Lookup(id string) (Block, bool) {
	pos, ok := idx.byID[id]
	if !ok {
		return Block{}, false
	}
	return idx.order[pos], true
}

// Blocks returns a copy of the indexed blocks in input order
func (idx *Index) Blocks() []Block {
	return slices.Clone(idx.order)
}

// Len returns the number of distinct ids in the index
func (idx *Index) Len() int {
	return len(idx.order)
}

// DanglingReferences lists every relationship target missing from the index,
// in block order and then relationship order.
func (idx *Index) DanglingReferences() []DanglingReference {
	var result []DanglingReference
	for _, b := range idx.order {
		for _, rel := range b.Relationships {
			for _, id := range rel.IDs {
				if _, ok := idx.byID[id]; !ok {
					result = append(result, DanglingReference{From: b.ID, Relation: rel.Type, Target: id})
				}
			}
		}
	}
	return result
}
