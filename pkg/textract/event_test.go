package textract

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Source
	}{
		{
			name: "s3 notification",
			raw:  `{"Records":[{"s3":{"bucket":{"name":"outposts-fotos"},"object":{"key":"fotos/etiqueta+001.jpg"}}}]}`,
			want: []Source{{Bucket: "outposts-fotos", Key: "fotos/etiqueta 001.jpg"}},
		},
		{
			name: "several records",
			raw:  `{"Records":[{"s3":{"bucket":{"name":"a"},"object":{"key":"1.jpg"}}},{"s3":{"bucket":{"name":"b"},"object":{"key":"2%2B.jpg"}}}]}`,
			want: []Source{{Bucket: "a", Key: "1.jpg"}, {Bucket: "b", Key: "2+.jpg"}},
		},
		{
			name: "manual invocation",
			raw:  `{"bucket_name":"labels","image_key":"etiqueta_002.png"}`,
			want: []Source{{Bucket: "labels", Key: "etiqueta_002.png"}},
		},
		{
			name: "manual invocation default bucket",
			raw:  `{"image_key":"etiqueta_003.png"}`,
			want: []Source{{Bucket: "outposts-fotos", Key: "etiqueta_003.png"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEvent(json.RawMessage(tt.raw), "outposts-fotos")
			if err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestParseEvent_Errors(t *testing.T) {
	if _, err := ParseEvent(json.RawMessage(`{"bucket_name":"b"}`), "d"); !errors.Is(err, ErrMissingImageKey) {
		t.Fatalf("expected ErrMissingImageKey, got %v", err)
	}
	if _, err := ParseEvent(json.RawMessage(`not json`), "d"); err == nil {
		t.Fatal("expected decode error")
	}
}
