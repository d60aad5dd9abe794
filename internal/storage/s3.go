package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/pguia/registry/internal/config"
	"github.com/pguia/registry/internal/domain"
)

const uploadContentType = "application/octet-stream"

// S3Store implements ObjectStore against a single configured bucket on any
// S3-compatible endpoint.
type S3Store struct {
	client *s3.S3
	bucket string
}

// NewS3Store builds an S3-backed object store from configuration.
func NewS3Store(cfg *config.StorageConfig) (*S3Store, error) {
	awsConfig := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(cfg.UsePathStyle),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return &S3Store{client: s3.New(sess), bucket: cfg.Bucket}, nil
}

// PresignUpload returns a signed PUT URL for the key.
func (s *S3Store) PresignUpload(ctx context.Context, key string) (string, error) {
	req, _ := s.client.PutObjectRequest(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(uploadContentType),
	})
	req.SetContext(ctx)

	url, err := req.Presign(URLExpiry)
	if err != nil {
		return "", fmt.Errorf("%w: failed to sign upload URL for %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	return url, nil
}

// PresignDownload returns a signed GET URL for the key.
func (s *S3Store) PresignDownload(ctx context.Context, key string) (string, error) {
	req, _ := s.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	req.SetContext(ctx)

	url, err := req.Presign(URLExpiry)
	if err != nil {
		return "", fmt.Errorf("%w: failed to sign download URL for %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	return url, nil
}

// DeleteObject removes the object at key.
func (s *S3Store) DeleteObject(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to delete object %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	return nil
}
