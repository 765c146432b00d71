package textract

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/gardar/ocrlabels/pkg/blocks"
)

// FromTypes converts Textract SDK blocks into blocks.Block, keeping order.
// The result is never nil so it can be passed straight to blocks.Analyze.
func FromTypes(in []types.Block) []blocks.Block {
	out := make([]blocks.Block, 0, len(in))
	for _, b := range in {
		out = append(out, fromType(b))
	}
	return out
}

func fromType(b types.Block) blocks.Block {
	block := blocks.Block{
		ID:         aws.ToString(b.Id),
		BlockType:  blocks.BlockType(b.BlockType),
		Text:       b.Text,
		Confidence: b.Confidence,
		Page:       int(aws.ToInt32(b.Page)),
	}

	for _, et := range b.EntityTypes {
		block.EntityTypes = append(block.EntityTypes, blocks.EntityType(et))
	}
	for _, rel := range b.Relationships {
		block.Relationships = append(block.Relationships, blocks.Relationship{
			Type: blocks.RelationType(rel.Type),
			IDs:  rel.Ids,
		})
	}

	return block
}
