package uploads

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"vahcare-api/internal/config"
	"vahcare-api/internal/logging"
)

// S3Store uploads CV files to an S3-compatible bucket. Objects are
// private; reads go through presigned URLs.
type S3Store struct {
	client *s3.S3
	bucket string
	logger logging.Logger
}

// NewS3Store creates an object-store client from configuration. A custom
// endpoint supports S3-compatible providers.
func NewS3Store(cfg *config.Config) (*S3Store, error) {
	logger := logging.GetGlobalLogger()

	if cfg.Storage.S3.AccessKeyID == "" || cfg.Storage.S3.AccessKeySecret == "" {
		return nil, fmt.Errorf("object storage credentials are required")
	}
	if cfg.Storage.S3.Bucket == "" {
		return nil, fmt.Errorf("object storage bucket name is required")
	}

	awsConfig := &aws.Config{
		Credentials: credentials.NewStaticCredentials(
			cfg.Storage.S3.AccessKeyID,
			cfg.Storage.S3.AccessKeySecret,
			"",
		),
		Region: aws.String(cfg.Storage.S3.Region),
	}
	if cfg.Storage.S3.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Storage.S3.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage session: %w", err)
	}

	logger.Info("Object storage client initialized", map[string]interface{}{
		"bucket": cfg.Storage.S3.Bucket,
		"region": cfg.Storage.S3.Region,
	})

	return &S3Store{
		client: s3.New(sess),
		bucket: cfg.Storage.S3.Bucket,
		logger: logger,
	}, nil
}

// Save uploads the buffered file under a generated key in the cvs
// namespace and returns the object key.
func (s *S3Store) Save(ctx context.Context, f File) (string, error) {
	key := fmt.Sprintf("%s/%s", cvNamespace, generateName(f.Name))

	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(f.Data),
		ContentType: aws.String(f.ContentType),
		ACL:         aws.String("private"),
	})
	if err != nil {
		s.logger.Error("Failed to upload CV to object storage", map[string]interface{}{
			"object_key": key,
			"error":      err.Error(),
		})
		return "", fmt.Errorf("failed to upload cv: %w", err)
	}

	s.logger.Info("CV uploaded to object storage", map[string]interface{}{
		"object_key": key,
		"size_bytes": len(f.Data),
	})

	return key, nil
}

// Delete removes a stored object by key.
func (s *S3Store) Delete(ctx context.Context, ref string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	})
	if err != nil {
		return fmt.Errorf("delete cv object: %w", err)
	}
	return nil
}

// SignedURL mints a time-limited read URL for a private object.
func (s *S3Store) SignedURL(ref string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = time.Hour
	}
	req, _ := s.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	})
	url, err := req.Presign(ttl)
	if err != nil {
		return "", fmt.Errorf("presign cv url: %w", err)
	}
	return url, nil
}

// Healthy checks bucket reachability.
func (s *S3Store) Healthy(ctx context.Context) bool {
	_, err := s.client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		s.logger.Error("Object storage health check failed", map[string]interface{}{
			"bucket": s.bucket,
			"error":  err.Error(),
		})
	}
	return err == nil
}
