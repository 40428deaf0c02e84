package tiledgraph

import (
	"context"
	"fmt"

	"gocloud.dev/blob"
)

// WriteToBucket opens bucketURL (any gocloud.dev/blob scheme the
// caller has registered — file://, s3://, gs://, azblob://) and writes
// g's snapshot to key, returning the byte count written. Grounded on
// the teacher's bucket.go, which wraps gocloud.dev/blob the same way
// but for ranged tile reads rather than a single whole-snapshot
// write/read.
func (g *Graph) WriteToBucket(ctx context.Context, bucketURL, key string) (int, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return 0, fmt.Errorf("opening bucket %q: %w", bucketURL, err)
	}
	defer bucket.Close()

	w, err := bucket.NewWriter(ctx, key, nil)
	if err != nil {
		return 0, fmt.Errorf("opening writer for %q: %w", key, err)
	}

	n, writeErr := g.WriteTo(w)
	closeErr := w.Close()
	if writeErr != nil {
		return n, writeErr
	}
	return n, closeErr
}

// ReadFromBucket is the inverse of WriteToBucket.
func ReadFromBucket(ctx context.Context, bucketURL, key string, opts ...Option) (*Graph, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("opening bucket %q: %w", bucketURL, err)
	}
	defer bucket.Close()

	r, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, fmt.Errorf("opening reader for %q: %w", key, err)
	}
	defer r.Close()

	return ReadFrom(r, opts...)
}
