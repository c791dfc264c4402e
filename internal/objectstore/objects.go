package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	rerrors "github.com/rediacc/rdc/internal/errors"
)

const jsonContentType = "application/json"

// GetJSON decodes the object at key into v. It reports found=false, with v
// untouched, when the object does not exist.
func (c *Client) GetJSON(ctx context.Context, key string, v any) (bool, error) {
	data, err := c.GetRaw(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, rerrors.NewStorageError("getJson", key, fmt.Errorf("decoding JSON: %w", err))
	}
	return true, nil
}

// PutJSON writes v as indented JSON at key.
func (c *Client) PutJSON(ctx context.Context, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return rerrors.NewStorageError("putJson", key, fmt.Errorf("encoding JSON: %w", err))
	}
	return c.put(ctx, "putJson", key, data, jsonContentType)
}

// GetRaw returns the object body at key. A nil slice means the object does
// not exist; an existing empty object yields an empty, non-nil slice.
func (c *Client) GetRaw(ctx context.Context, key string) ([]byte, error) {
	fullKey := c.fullKey(key)
	c.Log.Debugf("s3 get %s/%s", c.bucket, fullKey)

	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(fullKey),
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, rerrors.NewStorageError("getRaw", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, rerrors.NewStorageError("getRaw", key, err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// PutRaw writes content at key.
func (c *Client) PutRaw(ctx context.Context, key string, content []byte) error {
	return c.put(ctx, "putRaw", key, content, "application/octet-stream")
}

func (c *Client) put(ctx context.Context, op, key string, content []byte, contentType string) error {
	fullKey := c.fullKey(key)
	c.Log.Debugf("s3 put %s/%s (%d bytes)", c.bucket, fullKey, len(content))

	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(fullKey),
		Body:          bytes.NewReader(content),
		ContentLength: aws.Int64(int64(len(content))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return rerrors.NewStorageError(op, key, err)
	}
	return nil
}

// DeleteObject removes key. Deleting a missing key is not an error.
func (c *Client) DeleteObject(ctx context.Context, key string) error {
	fullKey := c.fullKey(key)
	c.Log.Debugf("s3 delete %s/%s", c.bucket, fullKey)

	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(fullKey),
	})
	if err != nil && !IsNotFound(err) {
		return rerrors.NewStorageError("deleteObject", key, err)
	}
	return nil
}

// ListKeys returns every key under prefix, relative to the client prefix.
// It follows continuation tokens until the listing is exhausted.
func (c *Client) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	fullPrefix := c.fullKey(prefix)
	c.Log.Debugf("s3 list %s/%s", c.bucket, fullPrefix)

	keys := []string{}
	var token *string
	for {
		out, err := c.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(c.bucket),
			Prefix:            aws.String(fullPrefix),
			ContinuationToken: token,
		})
		if err != nil {
			if IsNotFound(err) {
				return keys, nil
			}
			return nil, rerrors.NewStorageError("listKeys", prefix, err)
		}

		for _, object := range out.Contents {
			if object.Key == nil {
				continue
			}
			keys = append(keys, c.relativeKey(*object.Key))
		}

		if out.NextContinuationToken == nil || *out.NextContinuationToken == "" {
			return keys, nil
		}
		token = out.NextContinuationToken
	}
}

// MoveObject copies from to to and then deletes from. It is not atomic: if
// the delete fails the object exists under both keys and the error says so.
func (c *Client) MoveObject(ctx context.Context, from, to string) error {
	fullFrom := c.fullKey(from)
	fullTo := c.fullKey(to)
	c.Log.Debugf("s3 move %s -> %s", fullFrom, fullTo)

	_, err := c.api.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(c.bucket),
		CopySource: aws.String(c.bucket + "/" + url.PathEscape(fullFrom)),
		Key:        aws.String(fullTo),
	})
	if err != nil {
		return rerrors.NewStorageError("moveObject", from, err)
	}

	if err := c.DeleteObject(ctx, from); err != nil {
		return fmt.Errorf("object copied to %s but source not removed: %w", to, err)
	}
	return nil
}

// VerifyAccess checks that the bucket exists and the credentials can list it.
func (c *Client) VerifyAccess(ctx context.Context) error {
	c.Log.Debugf("s3 head bucket %s", c.bucket)

	if _, err := c.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(c.bucket)}); err != nil {
		return rerrors.NewStorageError("verifyAccess", "", err)
	}

	_, err := c.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.bucket),
		Prefix:  aws.String(c.prefix),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return rerrors.NewStorageError("verifyAccess", "", err)
	}
	return nil
}
