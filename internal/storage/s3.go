package storage

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Uploader stores objects in an S3-compatible bucket (Cloudflare R2 in
// production) and serves them through a public custom domain.
type S3Uploader struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// S3Config carries the endpoint and credential settings for one bucket.
type S3Config struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKeyID   string
	SecretKey     string
	PublicBaseURL string
}

// NewS3Uploader builds the client for an S3-compatible endpoint.
func NewS3Uploader(ctx context.Context, cfg S3Config) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		// R2 requires path-style addressing.
		o.UsePathStyle = true
	})

	return &S3Uploader{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: cfg.PublicBaseURL,
	}, nil
}

// Upload puts the object with an immutable cache directive and returns the
// URL rooted at the configured public domain.
func (u *S3Uploader) Upload(ctx context.Context, path, contentType string, body io.Reader) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(u.bucket),
		Key:          aws.String(path),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(CacheControlImmutable),
	})
	if err != nil {
		log.Printf("[UPLOAD] [ERROR] put object %s: %v", path, err)
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	return u.publicBaseURL + "/" + path, nil
}
