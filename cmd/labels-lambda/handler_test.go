package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/gardar/ocrlabels/pkg/blocks"
	"github.com/gardar/ocrlabels/pkg/textract"
)

type fakeAnalyzer struct {
	err  error
	srcs []textract.Source
}

func (f *fakeAnalyzer) AnalyzeBatch(ctx context.Context, srcs []textract.Source) ([]*textract.Analysis, error) {
	f.srcs = srcs
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*textract.Analysis, len(srcs))
	for i, src := range srcs {
		fields := blocks.NewFields()
		fields.Set("Order ID", "ORD-12345")
		out[i] = &textract.Analysis{
			ID:         uuid.MustParse("6f1c2d3e-0000-4000-8000-000000000001"),
			Bucket:     src.Bucket,
			Key:        src.Key,
			AnalyzedAt: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
			Result:     &blocks.Result{KeyValues: fields, Lines: []string{"Order ID: ORD-12345"}, BlockCount: 6},
		}
	}
	return out, nil
}

type fakeStore struct {
	objects map[string]string
}

func (f *fakeStore) Put(ctx context.Context, key, contentType string, body []byte) error {
	f.objects[key] = string(body)
	return nil
}

func newTestHandler(a batchAnalyzer) *handler {
	return &handler{
		analyzer:      a,
		bucket:        "outposts-fotos",
		resultsPrefix: "results/",
		logger:        log.New(io.Discard),
	}
}

func TestHandle_Manual(t *testing.T) {
	fa := &fakeAnalyzer{}
	h := newTestHandler(fa)

	resp, err := h.Handle(context.Background(), json.RawMessage(`{"image_key":"etiqueta_001.jpg"}`))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, resp.Body)
	}
	if len(fa.srcs) != 1 || fa.srcs[0].Bucket != "outposts-fotos" {
		t.Fatalf("unexpected sources %+v", fa.srcs)
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	for _, key := range []string{"message", "bucket", "image_key", "key_value_pairs", "all_text", "analyzed_at", "blocks_count"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("expected %s in body %s", key, resp.Body)
		}
	}
	if body["message"] != successMessage || body["blocks_count"] != float64(6) {
		t.Fatalf("unexpected body %s", resp.Body)
	}
}

func TestHandle_S3EventStoresResults(t *testing.T) {
	store := &fakeStore{objects: map[string]string{}}
	h := newTestHandler(&fakeAnalyzer{})
	h.store = store

	event := `{"Records":[
		{"s3":{"bucket":{"name":"uploads"},"object":{"key":"a.jpg"}}},
		{"s3":{"bucket":{"name":"uploads"},"object":{"key":"b.jpg"}}}
	]}`
	resp, err := h.Handle(context.Background(), json.RawMessage(event))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body []map[string]any
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("expected an array body, got %s", resp.Body)
	}
	if len(body) != 2 || body[1]["image_key"] != "b.jpg" {
		t.Fatalf("unexpected body %s", resp.Body)
	}

	stored, ok := store.objects["results/a-6f1c2d3e-0000-4000-8000-000000000001.json"]
	if !ok {
		t.Fatalf("expected stored result, got keys %v", store.objects)
	}
	if !strings.Contains(stored, `"bucket": "uploads"`) {
		t.Fatalf("unexpected stored result %s", stored)
	}
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		event      string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "missing key", event: `{"bucket_name":"b"}`, wantStatus: http.StatusBadRequest, wantError: "image_key is required"},
		{name: "not found", event: `{"image_key":"x.jpg"}`, err: textract.ErrImageNotFound, wantStatus: http.StatusNotFound, wantError: "Image not found"},
		{name: "unsupported", event: `{"image_key":"x.gif"}`, err: textract.ErrUnsupportedDocument, wantStatus: http.StatusBadRequest, wantError: "Unsupported format"},
		{name: "internal", event: `{"image_key":"x.jpg"}`, err: errors.New("throttled"), wantStatus: http.StatusInternalServerError, wantError: "Internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&fakeAnalyzer{err: tt.err})
			resp, err := h.Handle(context.Background(), json.RawMessage(tt.event))
			if err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, resp.StatusCode)
			}
			var body errorBody
			if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Error != tt.wantError {
				t.Fatalf("expected error %q, got %q", tt.wantError, body.Error)
			}
		})
	}
}
