package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Store implements ObjectStore on an S3 bucket.
type S3Store struct {
	client *s3.Client
	bucket string
	region string
	logger *slog.Logger
}

func NewS3Store(ctx context.Context, bucket, region string, logger *slog.Logger) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage: bucket name is not configured")
	}
	if logger == nil {
		logger = slog.Default()
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}
	return &S3Store{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
		logger: logger,
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error("s3 upload failed", "key", key, "error", err)
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	s.logger.Info("uploaded object", "key", key, "url", url)
	return url, nil
}

// Delete removes an object given the URL Put returned. URLs pointing at a
// different bucket are rejected. S3 deletes are idempotent, so an already
// missing key is not an error.
func (s *S3Store) Delete(ctx context.Context, url string) error {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	key, ok := strings.CutPrefix(url, prefix)
	if !ok || key == "" {
		return fmt.Errorf("delete: %q is not an object in bucket %s", url, s.bucket)
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			s.logger.Error("s3 delete failed", "key", key, "code", apiErr.ErrorCode(), "error", err)
		} else {
			s.logger.Error("s3 delete failed", "key", key, "error", err)
		}
		return fmt.Errorf("delete %s: %w", key, err)
	}
	s.logger.Info("deleted object", "key", key)
	return nil
}
