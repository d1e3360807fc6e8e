package transcode

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

// FFmpeg drives an external ffmpeg binary. H.264 video and AAC audio are the
// widest-supported combination for mobile playback, and +faststart moves the
// moov atom to the front of the container so playback can begin before the
// full file has downloaded.
type FFmpeg struct {
	path    string
	timeout time.Duration
}

// NewFFmpeg returns a Transcoder that shells out to the ffmpeg binary at path.
// timeout bounds a single transcode run; zero disables the bound.
func NewFFmpeg(path string, timeout time.Duration) *FFmpeg {
	if path == "" {
		path = "ffmpeg"
	}
	return &FFmpeg{path: path, timeout: timeout}
}

var _ Transcoder = (*FFmpeg)(nil)

// Transcode re-encodes src into an MP4 at dst. The process is killed when ctx
// is cancelled or the configured timeout elapses. On failure the tail of
// ffmpeg's stderr is included in the returned error.
func (f *FFmpeg) Transcode(ctx context.Context, src, dst string) error {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, f.path,
		"-i", src,
		"-c:v", "libx264",
		"-c:a", "aac",
		"-movflags", "+faststart",
		"-y",
		dst,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("ffmpeg: %w", ctxErr)
		}
		return fmt.Errorf("ffmpeg: %w: %s", err, stderrTail(stderr.Bytes()))
	}
	return nil
}

// stderrTail keeps error messages bounded; ffmpeg logs its whole configuration
// banner to stderr and only the last lines carry the actual failure.
func stderrTail(b []byte) string {
	const max = 512
	if len(b) > max {
		b = b[len(b)-max:]
	}
	return string(bytes.TrimSpace(b))
}
