// Package archive stores generated remittance files in S3-compatible
// object storage.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/boddenberg/pj-collections-go/internal/domain"
	"github.com/boddenberg/pj-collections-go/internal/infra/resilience"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("archive")

// Config holds the S3 connection settings.
type Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	Region          string
	Prefix          string
}

type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// S3 archives files with retry and a circuit breaker around every upload.
type S3 struct {
	raw    objectPutter
	bucket string
	prefix string
	cb     *gobreaker.CircuitBreaker
	cfg    resilience.Config
}

// NewS3 creates an S3 archiver.
func NewS3(cfg Config, cb *gobreaker.CircuitBreaker, rcfg resilience.Config) (*S3, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}
	return newS3(client, cfg, cb, rcfg), nil
}

func newS3(raw objectPutter, cfg Config, cb *gobreaker.CircuitBreaker, rcfg resilience.Config) *S3 {
	return &S3{
		raw:    raw,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		cb:     cb,
		cfg:    rcfg,
	}
}

// Put uploads data under prefix+name and returns "s3://bucket/key".
func (s *S3) Put(ctx context.Context, name string, data []byte) (string, error) {
	ctx, span := tracer.Start(ctx, "S3.Put")
	defer span.End()

	key := s.prefix + name
	span.SetAttributes(attribute.String("s3.bucket", s.bucket), attribute.String("s3.key", key))

	_, err := s.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, s.cfg, func() error {
			_, err := s.raw.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
				ContentType: "text/plain; charset=us-ascii",
			})
			if err != nil {
				err = fmt.Errorf("put object %q failed: %w", key, err)
				if permanentS3Error(err) {
					return resilience.Permanent(err)
				}
				return err
			}
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", &domain.ErrCircuitOpen{Service: "archive"}
		}
		return "", &domain.ErrExternalService{Service: "archive", Err: err}
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, strings.TrimPrefix(key, "/")), nil
}

// permanentS3Error reports errors no retry can fix.
func permanentS3Error(err error) bool {
	switch minio.ToErrorResponse(errors.Unwrap(err)).Code {
	case "AccessDenied", "NoSuchBucket", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return true
	}
	return false
}
