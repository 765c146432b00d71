// Package gdocai turns Google Document AI results into the block graph understood by package blocks.
//
// Document AI describes text through anchors into one document-wide string, while Textract
// describes it through id relationships. This package bridges the two so that form fields and
// lines found by a Document AI form processor go through the same extraction as Textract output.
//
// Key Features:
//
// - Process PDFs and images with a Google Document AI processor
// - Convert tokens, lines and form fields into WORD, LINE and KEY_VALUE_SET blocks
// - Dump raw responses as JSON for debugging (WriteDebugJSON)
//
// Main Functions:
//
// - ProcessDocument: Sends a document to Google Document AI for processing
// - Blocks: Converts a Document AI response into blocks
// - Analyze: Processes a document and extracts its fields and lines
// - Extract: Extracts fields and lines from an already processed document
//
// Usage Requirements:
//
// - Google Cloud project with Document AI API enabled
// - Document AI form parser processor
// - Authentication via GOOGLE_APPLICATION_CREDENTIALS environment variable
package gdocai

import (
	"context"
	"fmt"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/ocrlabels/pkg/blocks"
)

// Config identifies the Document AI processor to use
type Config struct {
	ProjectID   string
	Location    string
	ProcessorID string
}

// Analysis pairs the raw Document AI response with what was extracted from it
type Analysis struct {
	Document *documentaipb.Document
	Result   *blocks.Result
}

// Analyze processes a document with Document AI and extracts its form fields and lines
func Analyze(ctx context.Context, data []byte, mimeType string, cfg *Config) (*Analysis, error) {
	doc, err := ProcessDocument(ctx, data, mimeType, cfg)
	if err != nil {
		return nil, err
	}

	result, err := Extract(doc)
	if err != nil {
		return nil, err
	}
	return &Analysis{Document: doc, Result: result}, nil
}

// Extract runs field and line extraction over an already processed document
func Extract(doc *documentaipb.Document) (*blocks.Result, error) {
	result, err := blocks.Analyze(Blocks(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to extract document: %w", err)
	}
	return result, nil
}
