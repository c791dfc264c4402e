package objectstore

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	logger "github.com/rediacc/rdc/internal/logging"
)

// API is the subset of the S3 client used by Client. *s3.Client satisfies it.
type API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Client performs prefixed object operations against one bucket.
type Client struct {
	api    API
	bucket string
	prefix string

	Log logger.Logger
}

// New returns a Client for bucket. A non-empty prefix is normalized to end
// with a single slash.
func New(api API, bucket, prefix string) *Client {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &Client{api: api, bucket: bucket, prefix: prefix}
}

// Bucket returns the bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}

// Prefix returns the normalized key prefix, including its trailing slash.
func (c *Client) Prefix() string {
	return c.prefix
}

func (c *Client) fullKey(key string) string {
	return c.prefix + strings.TrimPrefix(key, "/")
}

func (c *Client) relativeKey(fullKey string) string {
	return strings.TrimPrefix(fullKey, c.prefix)
}
