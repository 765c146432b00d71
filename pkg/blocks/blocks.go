// Package blocks reconstructs form fields and plain text from the block graph returned by
// document-analysis services such as AWS Textract.
//
// An analysis result is a flat list of blocks. Blocks reference each other by id through typed
// relationships: a KEY block points at its WORD children and at its paired VALUE block, which in
// turn points at its own WORD children. Relationships may be missing or point at ids that are not
// in the result, so every lookup in this package degrades to empty text instead of failing.
//
// Key Features:
//
// - Build an id index over a block list (last occurrence of an id wins)
// - Rebuild the text of a block from its direct WORD children
// - Extract normalized key/value pairs from KEY_VALUE_SET blocks
// - Collect LINE texts in source order
//
// Main Functions:
//
// - NewIndex: Builds the lookup index for one analysis result
// - ResolveText: Rebuilds the text of a single block
// - ExtractKeyValues: Produces the ordered key/value mapping
// - ExtractLines: Produces the line texts
// - Analyze: Runs the whole pass and returns a Result
package blocks

// BlockType classifies a block. Only KEY_VALUE_SET, WORD and LINE are interpreted here,
// every other value is carried through untouched.
type BlockType string

const (
	BlockTypeKeyValueSet BlockType = "KEY_VALUE_SET"
	BlockTypeWord        BlockType = "WORD"
	BlockTypeLine        BlockType = "LINE"
	BlockTypePage        BlockType = "PAGE"
)

// EntityType tags a KEY_VALUE_SET block as the key or the value half of a field
type EntityType string

const (
	EntityTypeKey   EntityType = "KEY"
	EntityTypeValue EntityType = "VALUE"
)

// RelationType is the kind of edge a Relationship describes
type RelationType string

const (
	RelationChild RelationType = "CHILD"
	RelationValue RelationType = "VALUE"
)

// Relationship is a typed, ordered edge list from one block to others
type Relationship struct {
	Type RelationType `json:"Type"`
	IDs  []string     `json:"Ids"`
}

// Block is a single annotated unit of an analysis result.
// Optional fields are pointers; nil means the service did not send the field.
type Block struct {
	ID            string         `json:"Id"`
	BlockType     BlockType      `json:"BlockType"`
	EntityTypes   []EntityType   `json:"EntityTypes,omitempty"`
	Text          *string        `json:"Text,omitempty"`
	Relationships []Relationship `json:"Relationships,omitempty"`
	Confidence    *float32       `json:"Confidence,omitempty"`
	Page          int            `json:"Page,omitempty"`
}

// TextOrEmpty returns the literal text of the block, or "" when it has none
func (b Block) TextOrEmpty() string {
	if b.Text == nil {
		return ""
	}
	return *b.Text
}

// HasEntityType reports whether the block is tagged with t
func (b Block) HasEntityType(t EntityType) bool {
	for _, et := range b.EntityTypes {
		if et == t {
			return true
		}
	}
	return false
}

// IsKey reports whether the block is the key half of a form field
func (b Block) IsKey() bool {
	return b.BlockType == BlockTypeKeyValueSet && b.HasEntityType(EntityTypeKey)
}

// FirstRelationship returns the first relationship of the given type
func (b Block) FirstRelationship(t RelationType) (Relationship, bool) {
	for _, rel := range b.Relationships {
		if rel.Type == t {
			return rel, true
		}
	}
	return Relationship{}, false
}

// String returns a pointer to s, for building blocks with literal text
func String(s string) *string {
	return &s
}
