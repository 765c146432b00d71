package blocks

import (
	"errors"
	"testing"
)

const analyzeResponse = `{
  "DocumentMetadata": {"Pages": 1},
  "Blocks": [
    {"BlockType": "LINE", "Id": "l1", "Text": "Invoice 12345", "Confidence": 99.1, "Page": 1},
    {"BlockType": "KEY_VALUE_SET", "Id": "k1", "EntityTypes": ["KEY"],
     "Relationships": [{"Type": "VALUE", "Ids": ["v1"]}, {"Type": "CHILD", "Ids": ["w1"]}]},
    {"BlockType": "KEY_VALUE_SET", "Id": "v1", "EntityTypes": ["VALUE"],
     "Relationships": [{"Type": "CHILD", "Ids": ["w2"]}]},
    {"BlockType": "WORD", "Id": "w1", "Text": "Invoice"},
    {"BlockType": "WORD", "Id": "w2", "Text": "12345"}
  ]
}`

func TestParseJSON_Response(t *testing.T) {
	blocks, err := ParseJSON([]byte(analyzeResponse))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(blocks) != 5 {
		t.Fatalf("expected 5 blocks, got %d", len(blocks))
	}
	if blocks[0].Page != 1 || blocks[0].Confidence == nil {
		t.Fatalf("expected page and confidence on first block, got %+v", blocks[0])
	}
	if blocks[1].Text != nil {
		t.Fatalf("expected absent text on key block, got %q", *blocks[1].Text)
	}

	res, err := Analyze(blocks)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if v, _ := res.KeyValues.Get("Invoice"); v != "12345" {
		t.Fatalf("expected Invoice=12345, got %v", res.KeyValues.Map())
	}
}

func TestParseJSON_BareArray(t *testing.T) {
	blocks, err := ParseJSON([]byte(`[{"BlockType":"LINE","Id":"l1","Text":"Row1"}]`))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(blocks) != 1 || blocks[0].TextOrEmpty() != "Row1" {
		t.Fatalf("unexpected blocks %+v", blocks)
	}
}

func TestParseJSON_Errors(t *testing.T) {
	if _, err := ParseJSON([]byte("   ")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := ParseJSON([]byte(`{"Blocks": 3}`)); err == nil {
		t.Fatal("expected decode error, got nil")
	}
}

func TestParseJSON_NoBlocksField(t *testing.T) {
	blocks, err := ParseJSON([]byte(`{}`))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if blocks == nil || len(blocks) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", blocks)
	}
}
