package blocks

import (
	"reflect"
	"testing"
)

func TestExtractLines_BeforeKeyValueBlocks(t *testing.T) {
	input := []Block{
		line("l1", "Row1"),
		line("l2", "Row2"),
		keyBlock("k1", []string{"w1"}, ""),
		word("w1", "Row3"),
	}

	got := ExtractLines(input)
	want := []string{"Row1", "Row2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractLines(t *testing.T) {
	tests := []struct {
		name   string
		blocks []Block
		want   []string
	}{
		{
			name:   "empty input",
			blocks: nil,
			want:   []string{},
		},
		{
			name: "source order kept around other blocks",
			blocks: []Block{
				keyBlock("k1", []string{"w1"}, ""),
				line("l2", "second"),
				word("w1", "x"),
				line("l1", "first"),
			},
			want: []string{"second", "first"},
		},
		{
			name: "line without text",
			blocks: []Block{
				{ID: "l1", BlockType: BlockTypeLine},
				line("l2", "Row"),
			},
			want: []string{"", "Row"},
		},
		{
			name: "children are not consulted",
			blocks: []Block{
				{ID: "l1", BlockType: BlockTypeLine, Text: String("literal"), Relationships: []Relationship{{Type: RelationChild, IDs: []string{"w1"}}}},
				word("w1", "child"),
			},
			want: []string{"literal"},
		},
		{
			name: "untyped block skipped",
			blocks: []Block{
				{ID: "x", Text: String("nothing")},
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractLines(tt.blocks); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
