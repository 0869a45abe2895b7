package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Client wraps a single-bucket S3-compatible store for attachments.
type S3Client struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3ClientFromEnv builds the client from environment:
//
//	S3_BUCKET            (required for S3 mode)
//	S3_REGION            (default us-east-1)
//	S3_ENDPOINT          (optional, for MinIO/R2)
//	S3_PUBLIC_URL        (base for returned object URLs)
//	S3_ACCESS_KEY_ID / S3_SECRET_ACCESS_KEY (optional, else default chain)
//
// Returns nil when S3_BUCKET is unset; callers then use the local fallback.
func NewS3ClientFromEnv(ctx context.Context) (*S3Client, error) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return nil, nil
	}

	region := os.Getenv("S3_REGION")
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if key := os.Getenv("S3_ACCESS_KEY_ID"); key != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, os.Getenv("S3_SECRET_ACCESS_KEY"), ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	endpoint := os.Getenv("S3_ENDPOINT")
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := strings.TrimSuffix(os.Getenv("S3_PUBLIC_URL"), "/")
	if publicURL == "" && endpoint != "" {
		publicURL = strings.TrimSuffix(endpoint, "/") + "/" + bucket
	}

	return &S3Client{client: client, bucket: bucket, publicURL: publicURL}, nil
}

// PutObject uploads one object and returns its public URL.
func (c *S3Client) PutObject(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := c.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	return c.publicURL + "/" + key, nil
}
