// Package storage keeps analysis results in an S3 bucket.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ObjectAPI is the part of the S3 client used by Store
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Store reads and writes objects in a single bucket
type Store struct {
	api    ObjectAPI
	bucket string
}

// NewStore creates a Store for bucket
func NewStore(api ObjectAPI, bucket string) *Store {
	return &Store{api: api, bucket: bucket}
}

// NewClient creates an S3 client. Path-style addressing is used only with a custom endpoint,
// which is how S3-compatible stores are reached.
func NewClient(cfg aws.Config) *s3.Client {
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = aws.ToString(cfg.BaseEndpoint) != ""
	})
}

// Bucket returns the bucket the store writes to
func (s *Store) Bucket() string {
	return s.bucket
}

// Put uploads body under key
func (s *Store) Put(ctx context.Context, key, contentType string, body []byte) error {
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3: %w", key, err)
	}
	return nil
}

// Get downloads the object stored under key
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s from S3: %w", key, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s contents: %w", key, err)
	}
	return data, nil
}

// ResultKey builds the object key for the result of analyzing imageKey,
// e.g. "results/etiqueta_001-<id>.json".
func ResultKey(prefix, imageKey string, id uuid.UUID) string {
	base := path.Base(imageKey)
	base = strings.TrimSuffix(base, path.Ext(base))
	return fmt.Sprintf("%s%s-%s.json", prefix, base, id)
}
