package textract

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
)

// ErrMissingImageKey is returned when a manual invocation does not name an image
var ErrMissingImageKey = errors.New("image_key is required")

// manualEvent is the payload of a direct invocation
type manualEvent struct {
	BucketName string `json:"bucket_name"`
	ImageKey   string `json:"image_key"`
}

// ParseEvent extracts image locations from a Lambda payload. An S3 notification yields one
// Source per record; otherwise the payload is read as {"bucket_name", "image_key"} and
// defaultBucket fills in a missing bucket.
func ParseEvent(raw json.RawMessage, defaultBucket string) ([]Source, error) {
	var s3Event events.S3Event
	if err := json.Unmarshal(raw, &s3Event); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}

	if len(s3Event.Records) > 0 {
		srcs := make([]Source, 0, len(s3Event.Records))
		for _, record := range s3Event.Records {
			key, err := url.QueryUnescape(record.S3.Object.Key)
			if err != nil {
				return nil, fmt.Errorf("failed to decode object key %q: %w", record.S3.Object.Key, err)
			}
			srcs = append(srcs, Source{Bucket: record.S3.Bucket.Name, Key: key})
		}
		return srcs, nil
	}

	var manual manualEvent
	if err := json.Unmarshal(raw, &manual); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	if manual.ImageKey == "" {
		return nil, ErrMissingImageKey
	}
	bucket := manual.BucketName
	if bucket == "" {
		bucket = defaultBucket
	}
	return []Source{{Bucket: bucket, Key: manual.ImageKey}}, nil
}
