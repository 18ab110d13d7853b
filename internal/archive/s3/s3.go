package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vbonduro/fieldlog/internal/archive"
)

const keyPrefix = "reports/"

// S3Archive stores exported reports in a single bucket of an S3-compatible
// service (AWS S3 or MinIO).
type S3Archive struct {
	client *s3.Client
	bucket string
}

type Config struct {
	Bucket    string
	Region    string
	Endpoint  string // optional; enables a custom endpoint such as MinIO
	PathStyle bool
}

// New creates an S3 archive. Credentials come from the default AWS chain.
func New(ctx context.Context, cfg Config, optFns ...func(*s3.Options)) (*S3Archive, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return NewFromConfig(awsCfg, cfg, optFns...), nil
}

// NewFromConfig builds the archive from an already loaded AWS config.
func NewFromConfig(awsCfg aws.Config, cfg Config, optFns ...func(*s3.Options)) *S3Archive {
	client := s3.NewFromConfig(awsCfg, append([]func(*s3.Options){func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}}, optFns...)...)
	return &S3Archive{client: client, bucket: cfg.Bucket}
}

func (s *S3Archive) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	// Buffer so the SDK gets a seekable body and can compute checksums.
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read report: %w", err)
	}

	key := fmt.Sprintf("%s%d_%s", keyPrefix, time.Now().UnixNano(), path.Base(name))
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to put %s: %w", key, err)
	}
	return key, nil
}

func (s *S3Archive) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	if err != nil {
		if isNotFound(err) {
			return nil, "", archive.ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return out.Body, aws.ToString(out.ContentType), nil
}

// Delete removes key. S3 deletes succeed for missing keys, so existence is
// checked first to match the local archive.
func (s *S3Archive) Delete(ctx context.Context, key string) error {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	if err != nil {
		if isNotFound(err) {
			return archive.ErrNotFound
		}
		return fmt.Errorf("failed to head %s: %w", key, err)
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *S3Archive) List(ctx context.Context) ([]archive.Entry, error) {
	entries := make([]archive.Entry, 0)
	var token *string
	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(keyPrefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", err)
		}
		for _, obj := range out.Contents {
			entries = append(entries, archive.Entry{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
		if aws.ToBool(out.IsTruncated) && out.NextContinuationToken != nil {
			token = out.NextContinuationToken
			continue
		}
		break
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

func isNotFound(err error) bool {
	var re *awshttp.ResponseError
	return errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound
}
