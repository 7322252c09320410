package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
)

// s3API is the subset of *s3.Client used by [s3BlobStore].
type s3API interface {
	GetObject(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, input *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, input *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// s3BlobStore stores objects in an S3-compatible bucket (AWS S3, Cloudflare
// R2, MinIO). Conditional writes use the If-Match and If-None-Match headers.
// Metadata travels as x-amz-meta-* user metadata, so HeadObject can serve it.
type s3BlobStore struct {
	client s3API
	bucket string
	prefix string
	logger *logger.Logger
}

// NewS3BlobStore builds an S3 client from cfg and returns a [BlobStore]
// backed by it. A custom endpoint switches the client to path-style
// addressing.
func NewS3BlobStore(ctx context.Context, cfg config.S3, log *logger.Logger) (BlobStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.Err(err).Str("func", "NewS3BlobStore").Msg("failed to load AWS config")
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	log.Info().Str("func", "NewS3BlobStore").Str("bucket", cfg.Bucket).Msg("S3 blob store configured")

	return newS3BlobStore(s3.NewFromConfig(awsCfg, s3Opts...), cfg.Bucket, cfg.Prefix, log), nil
}

func newS3BlobStore(client s3API, bucket, prefix string, log *logger.Logger) *s3BlobStore {
	return &s3BlobStore{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: log,
	}
}

func (b *s3BlobStore) key(key string) string {
	if b.prefix == "" {
		return key
	}
	return path.Join(b.prefix, key)
}

func (b *s3BlobStore) Get(ctx context.Context, key string) (Blob, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key(key)),
	})
	if err != nil {
		if isNotFoundError(err) {
			return Blob{}, ErrBlobNotFound
		}
		b.logger.Err(err).Str("func", "s3BlobStore.Get").Str("key", key).Msg("failed to get object")
		return Blob{}, classifyS3Error(err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return Blob{}, fmt.Errorf("%w: failed to read object body: %w", ErrStorageUnavailable, err)
	}

	return Blob{Body: body, ETag: aws.ToString(out.ETag), Metadata: s3Metadata(out.Metadata)}, nil
}

func (b *s3BlobStore) Head(ctx context.Context, key string) (BlobInfo, error) {
	out, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key(key)),
	})
	if err != nil {
		if isNotFoundError(err) {
			return BlobInfo{}, ErrBlobNotFound
		}
		b.logger.Err(err).Str("func", "s3BlobStore.Head").Str("key", key).Msg("failed to head object")
		return BlobInfo{}, classifyS3Error(err)
	}

	return BlobInfo{ETag: aws.ToString(out.ETag), Metadata: s3Metadata(out.Metadata)}, nil
}

func (b *s3BlobStore) Put(ctx context.Context, key string, body []byte, meta Metadata) (string, error) {
	return b.put(ctx, key, body, meta, func(*s3.PutObjectInput) {})
}

func (b *s3BlobStore) PutIfMatch(ctx context.Context, key string, body []byte, meta Metadata, etag string) (string, error) {
	return b.put(ctx, key, body, meta, func(in *s3.PutObjectInput) {
		if etag == "" {
			in.IfNoneMatch = aws.String("*")
			return
		}
		in.IfMatch = aws.String(etag)
	})
}

func (b *s3BlobStore) put(ctx context.Context, key string, body []byte, meta Metadata, condition func(*s3.PutObjectInput)) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(b.key(key)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}
	if len(meta) > 0 {
		input.Metadata = maps.Clone(meta)
	}
	condition(input)

	out, err := b.client.PutObject(ctx, input)
	if err != nil {
		if isPreconditionError(err) {
			return "", ErrPreconditionFailed
		}
		b.logger.Err(err).Str("func", "s3BlobStore.put").Str("key", key).Msg("failed to put object")
		return "", classifyS3Error(err)
	}

	return aws.ToString(out.ETag), nil
}

func (b *s3BlobStore) Delete(ctx context.Context, key string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key(key)),
	})
	if err != nil && !isNotFoundError(err) {
		b.logger.Err(err).Str("func", "s3BlobStore.Delete").Str("key", key).Msg("failed to delete object")
		return classifyS3Error(err)
	}
	return nil
}

// s3Metadata folds keys to lower case; some S3-compatible servers echo
// them back with the original casing.
func s3Metadata(in map[string]string) Metadata {
	if len(in) == 0 {
		return nil
	}
	out := make(Metadata, len(in))
	for k, v := range in {
		out[strings.ToLower(k)] = v
	}
	return out
}

// isNotFoundError checks if the error is an S3 NoSuchKey error.
func isNotFoundError(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return httpStatus(err) == http.StatusNotFound
}

// isPreconditionError reports a failed If-Match/If-None-Match. S3 answers
// 412, and 409 when a concurrent conditional write won the race.
func isPreconditionError(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "PreconditionFailed", "ConditionalRequestConflict":
			return true
		}
	}
	status := httpStatus(err)
	return status == http.StatusPreconditionFailed || status == http.StatusConflict
}

func classifyS3Error(err error) error {
	status := httpStatus(err)
	if status >= http.StatusInternalServerError || status == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return err
}

func httpStatus(err error) int {
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode()
	}
	return 0
}
