package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/Udyana30/rsup-ppk-sub000/pkg/storage"
)

// Adapter provides S3-compatible hosting for document files.
type Adapter struct {
	client *awss3.Client
	cfg    *Config
	logger hclog.Logger
}

// NewAdapter creates a new S3 storage adapter.
func NewAdapter(cfg *Config, logger hclog.Logger) (*Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid S3 configuration: %w", err)
	}
	cfg.SetDefaults()

	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	awsCfg, err := createAWSConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// Path-style addressing for MinIO and friends.
			o.UsePathStyle = true
		}
	})

	adapter := &Adapter{
		client: client,
		cfg:    cfg,
		logger: logger.Named("s3-storage"),
	}

	if err := adapter.verifyBucket(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to verify S3 bucket: %w", err)
	}

	logger.Info("S3 storage initialized",
		"bucket", cfg.Bucket,
		"prefix", cfg.Prefix,
	)

	return adapter, nil
}

// createAWSConfig creates AWS SDK configuration from the adapter config.
func createAWSConfig(cfg *Config) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	return awsconfig.LoadDefaultConfig(context.Background(), opts...)
}

// verifyBucket checks that the configured bucket exists and is reachable.
func (a *Adapter) verifyBucket(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := a.client.HeadBucket(ctx, &awss3.HeadBucketInput{
		Bucket: aws.String(a.cfg.Bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket %q not accessible: %w", a.cfg.Bucket, err)
	}
	return nil
}

// Upload stores the content under a UUID-keyed object and returns its
// reference. Transient failures are retried with exponential backoff.
func (a *Adapter) Upload(ctx context.Context, name string, content io.Reader) (storage.FileRef, error) {
	// The whole object is buffered so a retry can replay it.
	body, err := io.ReadAll(content)
	if err != nil {
		return storage.FileRef{}, fmt.Errorf("error reading upload content: %w", err)
	}

	objectID := path.Join(a.cfg.Prefix, uuid.New().String()+filepath.Ext(name))

	policy := backoff.WithContext(
		backoff.WithMaxRetries(
			backoff.NewExponentialBackOff(),
			uint64(a.cfg.RetryMaxAttempts),
		), ctx)

	op := func() error {
		_, err := a.client.PutObject(ctx, &awss3.PutObjectInput{
			Bucket:      aws.String(a.cfg.Bucket),
			Key:         aws.String(objectID),
			Body:        bytes.NewReader(body),
			ContentType: aws.String(contentTypeFor(name)),
		})
		return err
	}
	if err := backoff.Retry(op, policy); err != nil {
		return storage.FileRef{}, fmt.Errorf("error uploading object: %w", err)
	}

	a.logger.Debug("uploaded object", "key", objectID, "bytes", len(body))

	return storage.FileRef{
		URL:      fmt.Sprintf("%s/%s", strings.TrimSuffix(a.cfg.PublicURL, "/"), objectID),
		ObjectID: objectID,
	}, nil
}

// Delete removes a previously uploaded object.
func (a *Adapter) Delete(ctx context.Context, objectID string) error {
	_, err := a.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(a.cfg.Bucket),
		Key:    aws.String(objectID),
	})
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return storage.ErrObjectNotFound
	}
	return err
}

// ProviderType identifies the backend.
func (a *Adapter) ProviderType() string {
	return "s3"
}

// contentTypeFor picks a Content-Type from the file extension. Documents in
// this portal are PDFs; anything else falls back to octet-stream.
func contentTypeFor(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return "application/pdf"
	}
	return "application/octet-stream"
}
