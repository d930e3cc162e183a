package source

import (
	"context"
	"io"
	"os"
	"strings"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// drivers for the supported bucket url schemes
	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

// BlobSchemes lists the bucket url schemes NewBlobSource can open
var BlobSchemes = []string{"gs://", "s3://", "azblob://", "file://", "mem://"}

// BlobSource implements Source using gocloud.dev/blob.
type BlobSource struct {
	bucket *blob.Bucket
	prefix string
}

// NewBlobSource opens bucketURL, e.g. "gs://bucket-name".
// prefix is an optional path prefix for all keys.
func NewBlobSource(ctx context.Context, bucketURL, prefix string) (*BlobSource, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, err
	}
	return NewBlobSourceFromBucket(bucket, prefix), nil
}

// NewBlobSourceFromBucket wraps an already opened bucket.
func NewBlobSourceFromBucket(bucket *blob.Bucket, prefix string) *BlobSource {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix = prefix + "/"
	}
	return &BlobSource{
		bucket: bucket,
		prefix: prefix,
	}
}

// IsBlobURL reports whether v starts with one of BlobSchemes
func IsBlobURL(v string) bool {
	for _, scheme := range BlobSchemes {
		if strings.HasPrefix(v, scheme) {
			return true
		}
	}
	return false
}

func (b *BlobSource) fullKey(key string) string {
	return b.prefix + key
}

func (b *BlobSource) List(ctx context.Context, prefix string) ([]Object, error) {
	iter := b.bucket.List(&blob.ListOptions{
		Prefix: b.fullKey(prefix),
	})

	var objects []Object
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if obj.IsDir || !strings.HasPrefix(obj.Key, b.prefix) {
			continue
		}
		objects = append(objects, Object{
			Key:     strings.TrimPrefix(obj.Key, b.prefix),
			Size:    obj.Size,
			ModTime: obj.ModTime,
		})
	}
	sortObjects(objects)
	return objects, nil
}

func (b *BlobSource) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := b.bucket.ReadAll(ctx, b.fullKey(key))
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, os.ErrNotExist
		}
		return nil, err
	}
	return data, nil
}

func (b *BlobSource) Close() error {
	return b.bucket.Close()
}
