package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Package storage contains file/object storage abstractions and utilities for object stores (S3-compatible).
// Implementations must avoid using local disk and rely on streaming I/O only.

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
// ContentType and Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// RangeInfo describes the byte window actually served for a ranged read.
// Start and End are inclusive offsets; Total is the full object size.
type RangeInfo struct {
	Start int64
	End   int64
	Total int64
}

// Length returns the number of bytes covered by the range.
func (r RangeInfo) Length() int64 {
	return r.End - r.Start + 1
}

// ContentRange renders the range as an HTTP Content-Range header value.
func (r RangeInfo) ContentRange() string {
	return fmt.Sprintf("bytes %d-%d/%d", r.Start, r.End, r.Total)
}

// Storage is a reusable, S3-compatible object storage client interface.
// Methods use context and streaming readers/writers; no local disk is used.
// Implementations are stateless per call and safe for concurrent use, so a
// single client is constructed at process start and shared across requests.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	// Overwriting an existing key replaces its content atomically from the caller's perspective.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// GetRange retrieves a byte subrange of an object. end < 0 means "to the end of
	// the object". The returned RangeInfo reflects the window actually served after
	// clamping against the object's size.
	GetRange(ctx context.Context, key string, start, end int64) (io.ReadCloser, RangeInfo, error)
	// Stat returns an object's metadata without its body.
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	// Delete removes an object by key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// PublicURL maps a key to its direct, unauthenticated bucket URL.
	PublicURL(key string) string
}
