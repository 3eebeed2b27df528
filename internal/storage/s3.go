package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Store implements AttachmentStore on top of AWS S3 with presigned GETs.
type s3Store struct {
	client     *s3.Client
	presigner  *s3.PresignClient
	bucket     string
	prefix     string
	presignTTL time.Duration
	logger     zerolog.Logger
}

// NewS3Store creates an S3-backed attachment store.
func NewS3Store(ctx context.Context, bucket, region, prefix string, presignTTL time.Duration, logger zerolog.Logger) (AttachmentStore, error) {
	logger = logger.With().Str("component", "s3-attachment-store").Logger()

	// Load AWS configuration
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 attachment store initialised")

	return &s3Store{
		client:     client,
		presigner:  s3.NewPresignClient(client),
		bucket:     bucket,
		prefix:     prefix,
		presignTTL: presignTTL,
		logger:     logger,
	}, nil
}

// Put uploads the attachment body to S3.
func (s *s3Store) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	fullKey := s.prefix + key

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(fullKey),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", fullKey).
			Msg("failed to upload attachment to S3")
		return fmt.Errorf("failed to upload attachment to S3 (bucket=%s, key=%s): %w", s.bucket, fullKey, err)
	}

	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", fullKey).
		Msg("attachment uploaded to S3")

	return nil
}

// URL returns a presigned download URL valid for the configured TTL.
func (s *s3Store) URL(ctx context.Context, key string) (string, error) {
	fullKey := s.prefix + key

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fullKey),
	}, func(o *s3.PresignOptions) {
		o.Expires = s.presignTTL
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", fullKey).
			Msg("failed to presign attachment URL")
		return "", fmt.Errorf("failed to presign attachment URL for %s: %w", fullKey, err)
	}

	return req.URL, nil
}
