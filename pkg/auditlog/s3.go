package auditlog

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 writes one object per entry:
//
//	<prefix>/<registry>/<yyyy>/<mm>/<dd>/<unix-nanos>-<seq>-<direction>.xml
//
// Date partitioning keeps lifecycle rules and per-day listing cheap.
type S3 struct {
	client *s3.Client
	bucket string
	prefix string
	seq    atomic.Uint64
}

// NewS3 builds the client. Static credentials, a custom endpoint and
// path-style addressing cover MinIO-style stores next to real AWS.
func NewS3(cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("audit s3 backend needs a bucket")
	}

	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	})
	return &S3{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (s *S3) Append(ctx context.Context, entry Entry) error {
	at := entry.At.UTC()
	key := path.Join(s.prefix, entry.Registry, at.Format("2006/01/02"),
		fmt.Sprintf("%d-%d-%s.xml", at.UnixNano(), s.seq.Add(1), entry.Direction))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(entry.Data),
		ContentType: aws.String("application/epp+xml"),
	})
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

func (s *S3) Healthcheck(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		return fmt.Errorf("audit bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *S3) Close() error { return nil }
