// Package objectstoretest provides an in-memory S3 API for tests of code
// built on the objectstore package.
package objectstoretest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const defaultPageSize = 1000

// Fake implements objectstore.API over a map. It is safe for concurrent use.
type Fake struct {
	mu      sync.Mutex
	objects map[string][]byte

	// PageSize limits ListObjectsV2 pages so pagination can be exercised.
	PageSize int

	// Fail, when set, is consulted before each call; a non-nil return is
	// returned as the call's error.
	Fail func(op, key string) error

	// Calls counts operations by name.
	Calls map[string]int
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{
		objects: make(map[string][]byte),
		Calls:   make(map[string]int),
	}
}

// Object returns the raw stored bytes for a full (prefixed) key.
func (f *Fake) Object(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	return append([]byte(nil), data...), ok
}

// SetObject stores raw bytes under a full (prefixed) key.
func (f *Fake) SetObject(key string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = append([]byte(nil), data...)
}

// Keys returns all stored full keys in sorted order.
func (f *Fake) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sortedKeys()
}

func (f *Fake) sortedKeys() []string {
	keys := make([]string, 0, len(f.objects))
	for key := range f.objects {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (f *Fake) begin(op, key string) error {
	f.Calls[op]++
	if f.Fail != nil {
		return f.Fail(op, key)
	}
	return nil
}

func (f *Fake) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := aws.ToString(params.Key)
	if err := f.begin("GetObject", key); err != nil {
		return nil, err
	}

	data, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(append([]byte(nil), data...))),
		ContentLength: aws.Int64(int64(len(data))),
	}, nil
}

func (f *Fake) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := aws.ToString(params.Key)
	if err := f.begin("PutObject", key); err != nil {
		return nil, err
	}

	var data []byte
	if params.Body != nil {
		var err error
		if data, err = io.ReadAll(params.Body); err != nil {
			return nil, err
		}
	}
	f.objects[key] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *Fake) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := aws.ToString(params.Key)
	if err := f.begin("DeleteObject", key); err != nil {
		return nil, err
	}

	delete(f.objects, key)
	return &s3.DeleteObjectOutput{}, nil
}

func (f *Fake) CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := aws.ToString(params.Key)
	if err := f.begin("CopyObject", key); err != nil {
		return nil, err
	}

	_, escaped, found := strings.Cut(aws.ToString(params.CopySource), "/")
	if !found {
		return nil, errors.New("invalid copy source")
	}
	source, err := url.PathUnescape(escaped)
	if err != nil {
		return nil, err
	}

	data, ok := f.objects[source]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	f.objects[key] = append([]byte(nil), data...)
	return &s3.CopyObjectOutput{}, nil
}

func (f *Fake) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefix := aws.ToString(params.Prefix)
	if err := f.begin("ListObjectsV2", prefix); err != nil {
		return nil, err
	}

	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if params.MaxKeys != nil && int(*params.MaxKeys) < pageSize {
		pageSize = int(*params.MaxKeys)
	}

	var matching []string
	for _, key := range f.sortedKeys() {
		if strings.HasPrefix(key, prefix) {
			matching = append(matching, key)
		}
	}

	start := 0
	if params.ContinuationToken != nil {
		var err error
		if start, err = strconv.Atoi(*params.ContinuationToken); err != nil {
			return nil, errors.New("invalid continuation token")
		}
	}

	end := start + pageSize
	if end > len(matching) {
		end = len(matching)
	}

	out := &s3.ListObjectsV2Output{KeyCount: aws.Int32(int32(end - start))}
	for _, key := range matching[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(key)})
	}
	if end < len(matching) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(strconv.Itoa(end))
	}
	return out, nil
}

func (f *Fake) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("HeadBucket", aws.ToString(params.Bucket)); err != nil {
		return nil, err
	}
	return &s3.HeadBucketOutput{}, nil
}
