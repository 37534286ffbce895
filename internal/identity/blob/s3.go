package blob

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Config holds the object store connection settings, loaded once at
// startup.
type S3Config struct {
	Endpoint  string // e.g. a MinIO endpoint; empty for AWS proper
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string

	// PublicBaseURL is the prefix objects are served from. Defaults to
	// Endpoint + "/" + Bucket when empty.
	PublicBaseURL string
}

// S3Uploader stores attachments in an S3-compatible bucket and returns
// publicly retrievable URLs.
type S3Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Uploader builds the S3 client from cfg.
func NewS3Uploader(ctx context.Context, cfg S3Config) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("blob: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}

	return &S3Uploader{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Upload puts the file under a date-sharded random key and returns its URL.
func (u *S3Uploader) Upload(ctx context.Context, f File, category Category) (string, error) {
	key := storageKey(category, f.ContentType)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(f.Data),
		ContentType: aws.String(f.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("blob: put object: %w", err)
	}

	return u.baseURL + "/" + key, nil
}

// Delete removes the object behind url. The url must have been produced by
// this uploader.
func (u *S3Uploader) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, u.baseURL+"/")
	if !ok || key == "" {
		return fmt.Errorf("blob: url %q does not belong to this bucket", url)
	}

	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("blob: delete object: %w", err)
	}
	return nil
}

// storageKey shards objects by category and upload date, with a random
// suffix so names never collide.
func storageKey(category Category, contentType string) string {
	d := time.Now().UTC()
	ext := allowedImageTypes[contentType]
	return fmt.Sprintf("%s/%d/%02d/%02d/%s%s", category, d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}
