package blocks

func word(id, text string) Block {
	return Block{ID: id, BlockType: BlockTypeWord, Text: String(text)}
}

func line(id, text string) Block {
	return Block{ID: id, BlockType: BlockTypeLine, Text: String(text)}
}

func keyBlock(id string, children []string, valueID string) Block {
	b := Block{ID: id, BlockType: BlockTypeKeyValueSet, EntityTypes: []EntityType{EntityTypeKey}}
	if children != nil {
		b.Relationships = append(b.Relationships, Relationship{Type: RelationChild, IDs: children})
	}
	if valueID != "" {
		b.Relationships = append(b.Relationships, Relationship{Type: RelationValue, IDs: []string{valueID}})
	}
	return b
}

func valueBlock(id string, children []string) Block {
	b := Block{ID: id, BlockType: BlockTypeKeyValueSet, EntityTypes: []EntityType{EntityTypeValue}}
	if children != nil {
		b.Relationships = []Relationship{{Type: RelationChild, IDs: children}}
	}
	return b
}
