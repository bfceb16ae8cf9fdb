// Package s3 provides an S3-compatible blob store backend.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"

	"github.com/tendant/simple-catalog/pkg/catalog"
)

// deleteBatchSize is the DeleteObjects API limit.
const deleteBatchSize = 1000

// Config options for the S3 backend
type Config struct {
	Region          string // AWS region
	Bucket          string // S3 bucket name
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (default: false)
	URLPrefix       string // Optional public URL prefix (CDN or static host)

	// MinIO/S3-compatible service options
	CreateBucketIfNotExist bool // Create bucket if it doesn't exist
}

// Backend is an S3-compatible implementation of the catalog.BlobStore
// interface. Object keys double as external IDs.
type Backend struct {
	client    *s3.Client
	bucket    string
	region    string
	urlPrefix string
}

// New creates a new S3-compatible storage backend
func New(config Config) (*Backend, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}

	if config.Region == "" {
		config.Region = "us-east-1"
	}

	// Set up AWS config
	var awsCfg aws.Config
	var err error

	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		// Use provided credentials
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			)),
		)
	} else {
		// Use default credential chain
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
		)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Configure S3 client options
	var s3Options []func(*s3.Options)

	// Custom endpoint for S3-compatible services (MinIO, etc.)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Options...)

	backend := &Backend{
		client:    client,
		bucket:    config.Bucket,
		region:    config.Region,
		urlPrefix: strings.TrimSuffix(config.URLPrefix, "/"),
	}

	if config.CreateBucketIfNotExist {
		if err := backend.createBucketIfNotExists(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return backend, nil
}

// Upload stores the file under a fresh key in folder and returns its public
// URL plus the key as the external ID.
func (b *Backend) Upload(ctx context.Context, file catalog.File, folder string) (catalog.MediaRef, error) {
	key := b.objectKey(file.Name, folder)

	uploader := manager.NewUploader(b.client)
	input := &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(file.Data),
	}
	if file.ContentType != "" {
		input.ContentType = aws.String(file.ContentType)
	}

	if _, err := uploader.Upload(ctx, input); err != nil {
		return catalog.MediaRef{}, &catalog.StorageError{
			Backend: "s3",
			Key:     key,
			Op:      "upload",
			Err:     err,
		}
	}

	return catalog.MediaRef{URL: b.objectURL(key), ExternalID: key}, nil
}

// Delete removes a single object. A missing key is not an error.
func (b *Backend) Delete(ctx context.Context, externalID string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(externalID),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			return nil
		}
		return &catalog.StorageError{
			Backend: "s3",
			Key:     externalID,
			Op:      "delete",
			Err:     err,
		}
	}
	return nil
}

// DeleteMany removes a batch of objects with DeleteObjects, chunked to the
// API limit.
func (b *Backend) DeleteMany(ctx context.Context, externalIDs []string) error {
	for start := 0; start < len(externalIDs); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(externalIDs) {
			end = len(externalIDs)
		}

		objects := make([]types.ObjectIdentifier, 0, end-start)
		for _, id := range externalIDs[start:end] {
			objects = append(objects, types.ObjectIdentifier{Key: aws.String(id)})
		}

		out, err := b.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(b.bucket),
			Delete: &types.Delete{
				Objects: objects,
				Quiet:   aws.Bool(true),
			},
		})
		if err != nil {
			return &catalog.StorageError{
				Backend: "s3",
				Key:     strings.Join(externalIDs[start:end], ","),
				Op:      "delete_many",
				Err:     err,
			}
		}
		if len(out.Errors) > 0 {
			first := out.Errors[0]
			return &catalog.StorageError{
				Backend: "s3",
				Key:     aws.ToString(first.Key),
				Op:      "delete_many",
				Err:     fmt.Errorf("%s: %s", aws.ToString(first.Code), aws.ToString(first.Message)),
			}
		}
	}
	return nil
}

// Helper methods

func (b *Backend) objectKey(fileName, folder string) string {
	ext := path.Ext(fileName)
	return fmt.Sprintf("%s/%s%s", strings.Trim(folder, "/"), uuid.New(), ext)
}

func (b *Backend) objectURL(key string) string {
	if b.urlPrefix != "" {
		return fmt.Sprintf("%s/%s", b.urlPrefix, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.bucket, b.region, key)
}

func (b *Backend) createBucketIfNotExists(ctx context.Context) error {
	_, err := b.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(b.bucket),
	})
	if err == nil {
		return nil
	}

	_, err = b.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(b.bucket),
	})
	if err != nil && !strings.Contains(err.Error(), "BucketAlreadyOwnedByYou") {
		return err
	}
	return nil
}
