package transcode

import "context"

// Package transcode normalizes uploaded video into a broadly playable
// codec/container before it is persisted to object storage.

// Transcoder re-encodes the video at src into dst.
// Implementations must respect ctx cancellation and must not leave the
// encoding process running past an error return.
type Transcoder interface {
	Transcode(ctx context.Context, src, dst string) error
}
