// labels-lambda is the AWS Lambda entry point for label analysis.
//
// It is triggered either by S3 upload notifications or by a direct invocation with
// {"bucket_name": "...", "image_key": "..."}. Each image is analyzed with Textract and the
// extracted fields and lines are returned in an API Gateway style response. When a results
// bucket is configured, every analysis is also stored there as JSON.
//
// Configuration is read from the environment (see package config), typically:
//
//	LABELS_BUCKET=outposts-fotos
//	LABELS_RESULTS_BUCKET=outposts-results
//	LABELS_DEBUG=true
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	awstextract "github.com/aws/aws-sdk-go-v2/service/textract"

	"github.com/gardar/ocrlabels/pkg/config"
	"github.com/gardar/ocrlabels/pkg/logger"
	"github.com/gardar/ocrlabels/pkg/storage"
	"github.com/gardar/ocrlabels/pkg/textract"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logger.New(false).Fatal("Failed to load config", "err", err)
	}
	lg := logger.New(cfg.Debug)

	ctx := context.Background()
	awsCfg, err := textract.LoadAWSConfig(ctx, cfg.AWS)
	if err != nil {
		lg.Fatal("Failed to load AWS config", "err", err)
	}

	h := &handler{
		analyzer: textract.NewAnalyzer(textract.AnalyzerParams{
			API:      awstextract.NewFromConfig(awsCfg),
			Logger:   lg,
			Parallel: cfg.Parallel,
		}),
		bucket:        cfg.Bucket,
		resultsPrefix: cfg.ResultsPrefix,
		logger:        lg,
	}
	if cfg.ResultsBucket != "" {
		h.store = storage.NewStore(storage.NewClient(awsCfg), cfg.ResultsBucket)
	}

	lambda.Start(h.Handle)
}
