package client

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appConfig "project-hub-api/internal/config"
)

// S3ClientInterface abstracts object storage operations
type S3ClientInterface interface {
	GenerateFileKey(projectID uuid.UUID, fileName string) string
	GenerateAvatarKey(userID uuid.UUID, fileName string) string
	GeneratePresignedURL(ctx context.Context, fileKey string) (string, error)
	UploadFile(ctx context.Context, fileKey string, body io.Reader, contentType string) error
	DeleteFile(ctx context.Context, fileKey string) error
	GetFileURL(fileKey string) string
	BucketName() string
}

// S3Client wraps the AWS S3 SDK for file storage.
// A custom endpoint switches it to MinIO-compatible path-style access.
type S3Client struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	region        string
	endpoint      string
	logger        *zap.Logger
}

// NewS3Client creates a new S3 client
func NewS3Client(cfg appConfig.StorageConfig, logger *zap.Logger) (*S3Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("S3 region is required")
	}

	var awsCfg aws.Config
	var err error

	if cfg.Endpoint != "" {
		// MinIO requires explicit credentials
		if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
			return nil, fmt.Errorf("access key and secret key are required for MinIO endpoint")
		}
		awsCfg, err = awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			)),
			awsconfig.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
				func(service, region string, options ...interface{}) (aws.Endpoint, error) {
					return aws.Endpoint{
						URL:               cfg.Endpoint,
						HostnameImmutable: true,
						SigningRegion:     cfg.Region,
					}, nil
				},
			)),
		)
	} else {
		// AWS SDK default credential chain (IAM role on EC2, ~/.aws/credentials locally)
		awsCfg, err = awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(cfg.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.UsePathStyle = true // Required for MinIO
		}
	})

	return &S3Client{
		client:        s3Client,
		presignClient: s3.NewPresignClient(s3Client),
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		endpoint:      cfg.Endpoint,
		logger:        logger,
	}, nil
}

// GenerateFileKey builds a unique object key scoped to a project.
// Format: projects/{projectId}/{uuid}_{fileName}
func (c *S3Client) GenerateFileKey(projectID uuid.UUID, fileName string) string {
	return fmt.Sprintf("projects/%s/%s_%s", projectID, uuid.New(), fileName)
}

// GenerateAvatarKey builds a unique object key for a user avatar.
// Format: avatars/{userId}/{uuid}_{fileName}
func (c *S3Client) GenerateAvatarKey(userID uuid.UUID, fileName string) string {
	return fmt.Sprintf("avatars/%s/%s_%s", userID, uuid.New(), fileName)
}

// GeneratePresignedURL creates a short-lived download URL
func (c *S3Client) GeneratePresignedURL(ctx context.Context, fileKey string) (string, error) {
	req, err := c.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(fileKey),
	}, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", fmt.Errorf("failed to presign get object: %w", err)
	}
	return req.URL, nil
}

// UploadFile stores an object
func (c *S3Client) UploadFile(ctx context.Context, fileKey string, body io.Reader, contentType string) error {
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(fileKey),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}

// DeleteFile removes an object
func (c *S3Client) DeleteFile(ctx context.Context, fileKey string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(fileKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// BucketName returns the configured bucket
func (c *S3Client) BucketName() string {
	return c.bucket
}

// GetFileURL returns the canonical (non-presigned) object URL
func (c *S3Client) GetFileURL(fileKey string) string {
	if c.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucket, fileKey)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, fileKey)
}
