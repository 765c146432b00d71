package gdocai

import (
	"fmt"
	"io"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/protobuf/encoding/protojson"
)

// WriteDebugJSON writes the raw Document AI response as indented JSON
func WriteDebugJSON(w io.Writer, doc *documentaipb.Document) error {
	if doc == nil {
		return fmt.Errorf("no document to dump")
	}
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write document JSON: %w", err)
	}
	return nil
}
