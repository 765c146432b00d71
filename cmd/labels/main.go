// labels is a command-line tool for extracting form fields and text lines from photographed labels.
//
// The label can come from AWS Textract (an image in S3 or a saved AnalyzeDocument response), from
// Google Document AI or from an hOCR file. Whatever the source, the blocks go through the same
// key/value and line extraction and can be exported as JSON, CSV, XLSX or PDF, or uploaded to S3.
//
// Configuration:
//
// An optional YAML configuration file, a .env file and the environment are read in that order:
//
//	aws:
//	  region: "us-east-1"
//	bucket: "outposts-fotos"
//	results_bucket: "outposts-results"
//	gdocai:
//	  project_id: "your-gcp-project-id"
//	  location: "us"
//	  processor_id: "your-processor-id"
//
// Usage:
//
//	labels [-config config.yml] <input> <outputs>
//
// Input options (exactly one required):
//
//	-image string       Comma separated S3 keys to analyze with Textract
//	-image-file string  Comma separated local image paths to analyze with Textract
//	-blocks string      Path to a saved Textract AnalyzeDocument JSON response
//	-hocr string        Path to an hOCR file
//	-gdocai-pdf string  Path to a PDF to analyze with Google Document AI
//	-result string      Comma separated keys of stored results to export again
//
// Output options (at least one required):
//
//	-json string  Path to save the analysis as JSON
//	-csv string   Path to save the fields as CSV
//	-xlsx string  Path to save fields and lines as an XLSX workbook
//	-pdf string   Path to save a PDF report
//	-upload       Store each analysis as JSON in the results bucket
//
// Debug options:
//
//	-debug-dump string  Path to save the raw Document AI response (with -gdocai-pdf)
//
// Example:
//
//	labels -image etiqueta_001.jpg,etiqueta_002.jpg -csv labels.csv -upload
//	labels -blocks response.json -json labels.json
//	labels -config config.yml -gdocai-pdf etiqueta.pdf -xlsx labels.xlsx -debug-dump response.json
//	labels -result results/etiqueta_001-<id>.json -pdf etiqueta_001.pdf
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/gardar/ocrlabels/pkg/blocks"
	"github.com/gardar/ocrlabels/pkg/config"
	"github.com/gardar/ocrlabels/pkg/gdocai"
	"github.com/gardar/ocrlabels/pkg/hocr"
	"github.com/gardar/ocrlabels/pkg/logger"
	"github.com/gardar/ocrlabels/pkg/report"
	"github.com/gardar/ocrlabels/pkg/storage"
	"github.com/gardar/ocrlabels/pkg/textract"
)

// label is one analyzed document ready for export
type label struct {
	id      uuid.UUID
	summary report.Summary
	fields  *blocks.Fields
}

func main() {
	configPath := flag.String("config", "", "Path to the config YAML file")

	// Input flags
	imageKeys := flag.String("image", "", "Comma-separated S3 keys of label images to analyze with Textract")
	bucket := flag.String("bucket", "", "S3 bucket holding the images (defaults to the configured bucket)")
	blocksPath := flag.String("blocks", "", "Path to a saved Textract AnalyzeDocument JSON response")
	hocrPath := flag.String("hocr", "", "Path to an hOCR file")
	gdocaiPath := flag.String("gdocai-pdf", "", "Path to a PDF to analyze with Google Document AI")
	imageFiles := flag.String("image-file", "", "Comma-separated local image paths to analyze with Textract")
	resultKeys := flag.String("result", "", "Comma-separated keys of stored results in the results bucket")

	// Output flags
	jsonPath := flag.String("json", "", "Path to save the analysis as JSON")
	csvPath := flag.String("csv", "", "Path to save the fields as CSV")
	xlsxPath := flag.String("xlsx", "", "Path to save fields and lines as an XLSX workbook")
	pdfPath := flag.String("pdf", "", "Path to save a PDF report")
	upload := flag.Bool("upload", false, "Store each analysis as JSON in the results bucket")

	// Debug flags
	debugDump := flag.String("debug-dump", "", "Path to save the raw Document AI response as JSON (requires -gdocai-pdf)")

	flag.Parse()

	inputs := 0
	for _, v := range []string{*imageKeys, *imageFiles, *blocksPath, *hocrPath, *gdocaiPath, *resultKeys} {
		if v != "" {
			inputs++
		}
	}
	if inputs != 1 {
		usage("Exactly one of -image, -image-file, -blocks, -hocr, -gdocai-pdf or -result must be provided")
	}
	if *debugDump != "" && *gdocaiPath == "" {
		usage("-debug-dump is only available with -gdocai-pdf")
	}

	if *jsonPath == "" && *csvPath == "" && *xlsxPath == "" && *pdfPath == "" && !*upload {
		usage("At least one output flag must be provided (-json, -csv, -xlsx, -pdf or -upload)")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	lg := logger.New(cfg.Debug)

	if *upload || *resultKeys != "" {
		if err := cfg.RequireResultsBucket(); err != nil {
			lg.Fatal("Results bucket required", "err", err)
		}
	}
	if *bucket == "" {
		*bucket = cfg.Bucket
	}

	ctx := context.Background()
	var labels []label

	switch {
	case *imageKeys != "":
		labels, err = analyzeImages(ctx, cfg, lg, *bucket, splitKeys(*imageKeys))
	case *imageFiles != "":
		var analyzer *textract.Analyzer
		if analyzer, err = newAnalyzer(ctx, cfg, lg); err == nil {
			labels, err = analyzeImageFiles(ctx, analyzer, splitKeys(*imageFiles))
		}
	case *resultKeys != "":
		var store *storage.Store
		if store, err = newResultStore(ctx, cfg); err == nil {
			labels, err = loadResults(ctx, store, splitKeys(*resultKeys))
		}
	case *blocksPath != "":
		labels, err = analyzeFile(*blocksPath, blocks.ParseJSON)
	case *hocrPath != "":
		labels, err = analyzeFile(*hocrPath, func(data []byte) ([]blocks.Block, error) {
			doc, err := hocr.Parse(data)
			if err != nil {
				return nil, err
			}
			return hocr.Blocks(doc), nil
		})
	case *gdocaiPath != "":
		labels, err = analyzeDocumentAI(ctx, cfg, lg, *gdocaiPath, *debugDump)
	}
	if err != nil {
		lg.Fatal("Analysis failed", "err", err)
	}
	lg.Info("Analyzed labels", "count", len(labels))

	summaries := make([]report.Summary, len(labels))
	rows := make([]*blocks.Fields, len(labels))
	for i, l := range labels {
		summaries[i] = l.summary
		rows[i] = l.fields
	}

	if *jsonPath != "" {
		writeOutput(lg, "JSON", *jsonPath, func(w io.Writer) error {
			return report.WriteJSON(w, summaries)
		})
	}
	if *csvPath != "" {
		writeOutput(lg, "CSV", *csvPath, func(w io.Writer) error {
			return report.WriteCSV(w, report.DefaultHeaders, rows)
		})
	}
	if *xlsxPath != "" {
		writeOutput(lg, "XLSX", *xlsxPath, func(w io.Writer) error {
			return report.WriteXLSX(w, summaries)
		})
	}
	if *pdfPath != "" {
		writeOutput(lg, "PDF", *pdfPath, func(w io.Writer) error {
			return report.WritePDF(w, summaries, report.DefaultPDFConfig)
		})
	}

	if *upload {
		if err := uploadResults(ctx, cfg, lg, labels); err != nil {
			lg.Fatal("Upload failed", "err", err)
		}
	}
}

func usage(msg string) {
	fmt.Fprintln(os.Stderr, "Error:", msg)
	fmt.Fprintln(os.Stderr, "Usage:")
	flag.PrintDefaults()
	os.Exit(1)
}

// splitKeys splits a comma separated list, dropping empty entries
func splitKeys(list string) []string {
	var keys []string
	for _, k := range strings.Split(list, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func newAnalyzer(ctx context.Context, cfg *config.Config, logger *log.Logger) (*textract.Analyzer, error) {
	client, err := textract.NewClient(ctx, cfg.AWS)
	if err != nil {
		return nil, err
	}
	return textract.NewAnalyzer(textract.AnalyzerParams{
		API:      client,
		Logger:   logger,
		Parallel: cfg.Parallel,
	}), nil
}

func newResultStore(ctx context.Context, cfg *config.Config) (*storage.Store, error) {
	awsCfg, err := textract.LoadAWSConfig(ctx, cfg.AWS)
	if err != nil {
		return nil, err
	}
	return storage.NewStore(storage.NewClient(awsCfg), cfg.ResultsBucket), nil
}

func analyzeImages(ctx context.Context, cfg *config.Config, logger *log.Logger, bucket string, keys []string) ([]label, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("no image keys given")
	}

	analyzer, err := newAnalyzer(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	srcs := make([]textract.Source, len(keys))
	for i, k := range keys {
		srcs[i] = textract.Source{Bucket: bucket, Key: k}
	}

	analyses, err := analyzer.AnalyzeBatch(ctx, srcs)
	if err != nil {
		return nil, err
	}

	labels := make([]label, len(analyses))
	for i, a := range analyses {
		labels[i] = newLabel(a.ID, a.Bucket, a.Key, a.AnalyzedAt, a.Result)
	}
	return labels, nil
}

// bytesAnalyzer runs Textract on documents held in memory
type bytesAnalyzer interface {
	AnalyzeBytes(ctx context.Context, name string, data []byte) (*textract.Analysis, error)
}

// analyzeImageFiles sends local photos to Textract one by one, in the given order
func analyzeImageFiles(ctx context.Context, analyzer bytesAnalyzer, paths []string) ([]label, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no image files given")
	}

	labels := make([]label, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		a, err := analyzer.AnalyzeBytes(ctx, filepath.Base(p), data)
		if err != nil {
			return nil, err
		}
		labels = append(labels, newLabel(a.ID, "", a.Key, a.AnalyzedAt, a.Result))
	}
	return labels, nil
}

// resultGetter reads stored results
type resultGetter interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// loadResults fetches summaries stored by -upload or the Lambda so they can be exported again
func loadResults(ctx context.Context, store resultGetter, keys []string) ([]label, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("no result keys given")
	}

	labels := make([]label, 0, len(keys))
	for _, key := range keys {
		data, err := store.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		summary, err := report.ParseSummary(data)
		if err != nil {
			return nil, fmt.Errorf("failed to read result %s: %w", key, err)
		}
		summary.Message = ""
		labels = append(labels, label{id: uuid.New(), summary: summary, fields: summary.KeyValues})
	}
	return labels, nil
}

func analyzeFile(path string, parse func([]byte) ([]blocks.Block, error)) ([]label, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	bs, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	res, err := blocks.Analyze(bs)
	if err != nil {
		return nil, err
	}
	return []label{newLabel(uuid.New(), "", filepath.Base(path), time.Now(), res)}, nil
}

func analyzeDocumentAI(ctx context.Context, cfg *config.Config, logger *log.Logger, path, dumpPath string) ([]label, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	analysis, err := gdocai.Analyze(ctx, data, "application/pdf", &gdocai.Config{
		ProjectID:   cfg.DocumentAI.ProjectID,
		Location:    cfg.DocumentAI.Location,
		ProcessorID: cfg.DocumentAI.ProcessorID,
	})
	if err != nil {
		return nil, err
	}

	if dumpPath != "" {
		if err := writeDebugDump(dumpPath, analysis.Document); err != nil {
			return nil, err
		}
		logger.Info("Document AI response saved", "path", dumpPath)
	}

	return []label{newLabel(uuid.New(), "", filepath.Base(path), time.Now(), analysis.Result)}, nil
}

// writeDebugDump saves the raw Document AI response for inspection
func writeDebugDump(path string, doc *documentaipb.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := gdocai.WriteDebugJSON(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newLabel(id uuid.UUID, bucket, key string, analyzedAt time.Time, res *blocks.Result) label {
	summary := report.NewSummary(bucket, key, analyzedAt, res)
	return label{id: id, summary: summary, fields: summary.KeyValues}
}

func writeOutput(logger *log.Logger, kind, path string, write func(io.Writer) error) {
	f, err := os.Create(path)
	if err != nil {
		logger.Fatal("Failed to create output", "format", kind, "path", path, "err", err)
	}
	if err := write(f); err != nil {
		f.Close()
		logger.Fatal("Failed to write output", "format", kind, "path", path, "err", err)
	}
	if err := f.Close(); err != nil {
		logger.Fatal("Failed to close output", "format", kind, "path", path, "err", err)
	}
	logger.Info("Output saved", "format", kind, "path", path)
}

func uploadResults(ctx context.Context, cfg *config.Config, logger *log.Logger, labels []label) error {
	store, err := newResultStore(ctx, cfg)
	if err != nil {
		return err
	}

	for _, l := range labels {
		var buf bytes.Buffer
		if err := report.WriteJSON(&buf, l.summary); err != nil {
			return err
		}
		key := storage.ResultKey(cfg.ResultsPrefix, l.summary.ImageKey, l.id)
		if err := store.Put(ctx, key, "application/json", buf.Bytes()); err != nil {
			return err
		}
		logger.Info("Result stored", "bucket", store.Bucket(), "key", key)
	}
	return nil
}
