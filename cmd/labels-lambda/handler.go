package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/charmbracelet/log"

	"github.com/gardar/ocrlabels/pkg/report"
	"github.com/gardar/ocrlabels/pkg/storage"
	"github.com/gardar/ocrlabels/pkg/textract"
)

const successMessage = "Image analyzed successfully"

type batchAnalyzer interface {
	AnalyzeBatch(ctx context.Context, srcs []textract.Source) ([]*textract.Analysis, error)
}

type resultStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
}

type handler struct {
	analyzer      batchAnalyzer
	store         resultStore
	bucket        string
	resultsPrefix string
	logger        *log.Logger
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Handle answers with one summary for a single image and an array of summaries when an S3
// notification carries several records.
func (h *handler) Handle(ctx context.Context, raw json.RawMessage) (events.APIGatewayProxyResponse, error) {
	srcs, err := textract.ParseEvent(raw, h.bucket)
	if err != nil {
		if errors.Is(err, textract.ErrMissingImageKey) {
			return h.respond(http.StatusBadRequest, errorBody{Error: err.Error(), Message: "Provide the S3 path of the image"})
		}
		return h.respond(http.StatusBadRequest, errorBody{Error: "Invalid event", Message: err.Error()})
	}
	for _, src := range srcs {
		h.logger.Info("Analyzing image", "bucket", src.Bucket, "key", src.Key)
	}

	analyses, err := h.analyzer.AnalyzeBatch(ctx, srcs)
	if err != nil {
		return h.failure(err)
	}

	summaries := make([]report.Summary, len(analyses))
	for i, a := range analyses {
		summaries[i] = report.NewSummary(a.Bucket, a.Key, a.AnalyzedAt, a.Result)
		summaries[i].Message = successMessage
		if err := h.storeResult(ctx, a, summaries[i]); err != nil {
			return h.failure(err)
		}
	}

	if len(summaries) == 1 {
		return h.respond(http.StatusOK, summaries[0])
	}
	return h.respond(http.StatusOK, summaries)
}

func (h *handler) storeResult(ctx context.Context, a *textract.Analysis, s report.Summary) error {
	if h.store == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := report.WriteJSON(&buf, s); err != nil {
		return err
	}
	key := storage.ResultKey(h.resultsPrefix, a.Key, a.ID)
	if err := h.store.Put(ctx, key, "application/json", buf.Bytes()); err != nil {
		return err
	}
	h.logger.Debug("Stored result", "key", key)
	return nil
}

func (h *handler) failure(err error) (events.APIGatewayProxyResponse, error) {
	switch {
	case errors.Is(err, textract.ErrImageNotFound):
		return h.respond(http.StatusNotFound, errorBody{Error: "Image not found", Message: err.Error()})
	case errors.Is(err, textract.ErrUnsupportedDocument):
		return h.respond(http.StatusBadRequest, errorBody{Error: "Unsupported format", Message: "The image format is not supported. Use JPG, PNG or PDF."})
	default:
		h.logger.Error("Analysis failed", "err", err)
		return h.respond(http.StatusInternalServerError, errorBody{Error: "Internal error", Message: err.Error()})
	}
}

func (h *handler) respond(status int, body any) (events.APIGatewayProxyResponse, error) {
	var buf bytes.Buffer
	if err := report.WriteJSON(&buf, body); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       buf.String(),
	}, nil
}
