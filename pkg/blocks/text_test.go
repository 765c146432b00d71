package blocks

import "testing"

func TestResolveText(t *testing.T) {
	idx := NewIndex([]Block{
		word("w1", "Invoice"),
		word("w2", "Number:"),
		{ID: "w3", BlockType: BlockTypeWord},
		line("l1", "Invoice Number:"),
		{ID: "sel", BlockType: "SELECTION_ELEMENT"},
	})

	tests := []struct {
		name  string
		block Block
		want  string
	}{
		{
			name:  "no relationships",
			block: Block{ID: "b", BlockType: BlockTypeKeyValueSet, Text: String("ignored")},
			want:  "",
		},
		{
			name:  "words in child order",
			block: keyBlock("k", []string{"w2", "w1"}, ""),
			want:  "Number: Invoice",
		},
		{
			name:  "missing child skipped",
			block: keyBlock("k", []string{"w1", "nope", "w2"}, ""),
			want:  "Invoice Number:",
		},
		{
			name:  "non word children ignored",
			block: keyBlock("k", []string{"l1", "sel", "w1"}, ""),
			want:  "Invoice",
		},
		{
			name:  "word without text keeps separator",
			block: keyBlock("k", []string{"w1", "w3", "w2"}, ""),
			want:  "Invoice  Number:",
		},
		{
			name:  "only dangling children",
			block: keyBlock("k", []string{"x", "y"}, ""),
			want:  "",
		},
		{
			name: "several child relationships walked in order",
			block: Block{ID: "k", Relationships: []Relationship{
				{Type: RelationChild, IDs: []string{"w1"}},
				{Type: RelationValue, IDs: []string{"w3"}},
				{Type: RelationChild, IDs: []string{"w2"}},
			}},
			want: "Invoice Number:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveText(tt.block, idx); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestResolveText_TrimsOnlyOneSeparator(t *testing.T) {
	idx := NewIndex([]Block{word("w1", "Total "), word("w2", "")})
	got := ResolveText(keyBlock("k", []string{"w1"}, ""), idx)
	if got != "Total " {
		t.Fatalf("expected word's own trailing space kept, got %q", got)
	}
}
