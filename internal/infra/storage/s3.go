package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/port"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/infra/config"
)

// S3Store keeps notice attachments and resource files in an S3-compatible
// bucket. Keys are randomized so user-supplied file names never collide.
type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	logger        *zap.Logger
}

// NewS3Store constructs a store from configuration. Static credentials are
// used when provided; otherwise the default AWS credential chain applies,
// which also covers MinIO-style local setups via the endpoint override.
func NewS3Store(ctx context.Context, cfg config.S3Settings, logger *zap.Logger) (*S3Store, error) {
	var (
		awsCfg aws.Config
		err    error
	)

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.UsePathStyle {
			o.UsePathStyle = true
		}
	})

	baseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	logger.Info("S3 attachment store initialized",
		zap.String("bucket", cfg.Bucket),
		zap.String("region", cfg.Region),
	)

	return &S3Store{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: baseURL,
		logger:        logger,
	}, nil
}

// Upload stores the object under a randomized key and returns its public URL.
func (s *S3Store) Upload(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (string, error) {
	key := "uploads/" + uuid.NewString() + sanitizedExt(fileName)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return s.publicBaseURL + "/" + key, nil
}

// Delete removes the object behind a previously returned URL. Unparseable
// URLs are treated as foreign and left alone.
func (s *S3Store) Delete(ctx context.Context, fileURL string) error {
	key, ok := s.keyFromURL(fileURL)
	if !ok {
		s.logger.Warn("skipping delete of foreign attachment url", zap.String("url", fileURL))
		return nil
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) keyFromURL(fileURL string) (string, bool) {
	if strings.HasPrefix(fileURL, s.publicBaseURL+"/") {
		return strings.TrimPrefix(fileURL, s.publicBaseURL+"/"), true
	}

	parsed, err := url.Parse(fileURL)
	if err != nil || parsed.Path == "" {
		return "", false
	}
	key := strings.TrimPrefix(parsed.Path, "/")
	if key == "" {
		return "", false
	}
	return key, true
}

func sanitizedExt(fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	if ext == "" || len(ext) > 10 || strings.ContainsAny(ext, "/\\?#%") {
		return ""
	}
	return ext
}

var _ port.AttachmentStore = (*S3Store)(nil)
