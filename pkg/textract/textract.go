// Package textract feeds AWS Textract form analysis into the block extractors.
//
// It owns everything around the core that needs the AWS SDK: building the Textract client,
// calling AnalyzeDocument for images stored in S3 or held in memory, translating SDK blocks into
// blocks.Block and running several analyses in parallel.
//
// Main Functions:
//
// - NewClient: Creates a Textract client from the tool configuration
// - NewAnalyzer: Wraps any AnalyzeAPI implementation
// - Analyzer.Analyze / AnalyzeBytes / AnalyzeBatch: Runs the analysis and the extraction
// - FromTypes: Converts SDK blocks into blocks.Block
// - ParseEvent: Reads image locations from a Lambda event
package textract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/gardar/ocrlabels/pkg/blocks"
	"github.com/gardar/ocrlabels/pkg/config"
)

var (
	// ErrImageNotFound is returned when Textract cannot read the S3 object
	ErrImageNotFound = errors.New("image not found")
	// ErrUnsupportedDocument is returned for formats Textract does not accept
	ErrUnsupportedDocument = errors.New("unsupported document format")
)

// AnalyzeAPI is the part of the Textract client used by Analyzer
type AnalyzeAPI interface {
	AnalyzeDocument(ctx context.Context, params *textract.AnalyzeDocumentInput, optFns ...func(*textract.Options)) (*textract.AnalyzeDocumentOutput, error)
}

// Source locates an image in S3
type Source struct {
	Bucket string
	Key    string
}

// String returns the bucket/key form used in log lines
func (s Source) String() string {
	return s.Bucket + "/" + s.Key
}

// Analysis is the outcome of analyzing one document
type Analysis struct {
	ID         uuid.UUID      `json:"id"`
	Bucket     string         `json:"bucket,omitempty"`
	Key        string         `json:"image_key"`
	AnalyzedAt time.Time      `json:"analyzed_at"`
	Result     *blocks.Result `json:"result"`
}

// Analyzer runs Textract form analysis and extracts fields and lines from the response
type Analyzer struct {
	api      AnalyzeAPI
	logger   *log.Logger
	parallel int
	now      func() time.Time
}

// AnalyzerParams configures an Analyzer
type AnalyzerParams struct {
	API      AnalyzeAPI
	Logger   *log.Logger
	Parallel int
}

// NewAnalyzer creates an Analyzer around the given Textract API
func NewAnalyzer(params AnalyzerParams) *Analyzer {
	logger := params.Logger
	if logger == nil {
		logger = log.Default()
	}
	parallel := params.Parallel
	if parallel <= 0 {
		parallel = config.DefaultParallel
	}
	return &Analyzer{
		api:      params.API,
		logger:   logger,
		parallel: parallel,
		now:      time.Now,
	}
}

// NewClient creates a Textract client. Static credentials are used when both keys are set,
// otherwise the default AWS credential chain applies.
func NewClient(ctx context.Context, cfg config.AWS) (*textract.Client, error) {
	awsCfg, err := LoadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return textract.NewFromConfig(awsCfg), nil
}

// LoadAWSConfig builds the SDK configuration shared by every AWS client of the tool
func LoadAWSConfig(ctx context.Context, cfg config.AWS) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(cfg.Endpoint))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return awsCfg, nil
}

// Analyze runs form analysis on an image stored in S3
func (a *Analyzer) Analyze(ctx context.Context, src Source) (*Analysis, error) {
	a.logger.Debug("Analyzing image", "bucket", src.Bucket, "key", src.Key)

	doc := &types.Document{
		S3Object: &types.S3Object{
			Bucket: aws.String(src.Bucket),
			Name:   aws.String(src.Key),
		},
	}
	analysis, err := a.analyze(ctx, doc, src.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", src, err)
	}
	analysis.Bucket = src.Bucket
	return analysis, nil
}

// AnalyzeBytes runs form analysis on an in-memory image or single-page PDF
func (a *Analyzer) AnalyzeBytes(ctx context.Context, name string, data []byte) (*Analysis, error) {
	a.logger.Debug("Analyzing document bytes", "name", name, "size", len(data))

	analysis, err := a.analyze(ctx, &types.Document{Bytes: data}, name)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", name, err)
	}
	return analysis, nil
}

func (a *Analyzer) analyze(ctx context.Context, doc *types.Document, key string) (*Analysis, error) {
	out, err := a.api.AnalyzeDocument(ctx, &textract.AnalyzeDocumentInput{
		Document:     doc,
		FeatureTypes: []types.FeatureType{types.FeatureTypeForms},
	})
	if err != nil {
		return nil, classifyError(err)
	}

	converted := FromTypes(out.Blocks)
	a.logDangling(key, converted)

	result, err := blocks.Analyze(converted)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("Extracted form data", "key", key, "fields", result.KeyValues.Len(), "lines", len(result.Lines), "blocks", result.BlockCount)

	return &Analysis{
		ID:         uuid.New(),
		Key:        key,
		AnalyzedAt: a.now(),
		Result:     result,
	}, nil
}

// logDangling reports relationship targets Textract did not return
func (a *Analyzer) logDangling(key string, bs []blocks.Block) {
	if a.logger.GetLevel() > log.DebugLevel {
		return
	}
	for _, ref := range blocks.NewIndex(bs).DanglingReferences() {
		a.logger.Debug("Missing block reference", "key", key, "from", ref.From, "relation", ref.Relation, "target", ref.Target)
	}
}

// classifyError maps Textract exceptions onto package sentinel errors
func classifyError(err error) error {
	var notFound *types.InvalidS3ObjectException
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %w", ErrImageNotFound, err)
	}
	var unsupported *types.UnsupportedDocumentException
	if errors.As(err, &unsupported) {
		return fmt.Errorf("%w: %w", ErrUnsupportedDocument, err)
	}
	return fmt.Errorf("textract API call failed: %w", err)
}
