package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/spec-kit/scaffold-report-service/internal/config"
)

// ErrNotConfigured is returned when no bucket has been configured.
var ErrNotConfigured = errors.New("storage: bucket not configured")

// PhotoStore persists uploaded report photos and returns their public URL.
type PhotoStore interface {
	Upload(ctx context.Context, originalName, contentType string, data []byte) (string, error)
}

// DisabledStore rejects every upload. Used when no bucket is
// configured so the rest of the service can still boot.
type DisabledStore struct{}

// Upload always fails with ErrNotConfigured.
func (DisabledStore) Upload(context.Context, string, string, []byte) (string, error) {
	return "", ErrNotConfigured
}

// S3Client captures the subset of the S3 API the store uses.
type S3Client interface {
	PutObject(ctx context.Context, params *s3aws.PutObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error)
}

// S3PhotoStore uploads photos to S3 or an S3-compatible service.
type S3PhotoStore struct {
	client  S3Client
	bucket  string
	baseURL string
}

// NewS3PhotoStore builds a store from configuration. Supports custom
// endpoints and path-style addressing for MinIO-like services.
func NewS3PhotoStore(ctx context.Context, cfg config.StorageConfig) (*S3PhotoStore, error) {
	if cfg.Bucket == "" {
		return nil, ErrNotConfigured
	}

	awsOptions := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		awsOptions = append(awsOptions,
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretKey,
				"",
			)),
		)
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, awsOptions...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3aws.NewFromConfig(awsConfig, func(o *s3aws.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})

	return &S3PhotoStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: publicBaseURL(cfg),
	}, nil
}

// NewS3PhotoStoreWithClient wires a pre-built client, used in tests.
func NewS3PhotoStoreWithClient(client S3Client, bucket, baseURL string) *S3PhotoStore {
	return &S3PhotoStore{client: client, bucket: bucket, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Upload stores the photo under a unique key and returns its URL.
func (s *S3PhotoStore) Upload(ctx context.Context, originalName, contentType string, data []byte) (string, error) {
	key := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))

	input := &s3aws.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

func publicBaseURL(cfg config.StorageConfig) string {
	if cfg.BaseURL != "" {
		return strings.TrimSuffix(cfg.BaseURL, "/")
	}
	if cfg.Endpoint != "" {
		return strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}
