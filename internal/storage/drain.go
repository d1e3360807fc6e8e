package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrBodyTooLarge is returned by Drain when the stream exceeds the given limit.
var ErrBodyTooLarge = errors.New("body exceeds size limit")

// Drain reads a byte stream into a contiguous buffer.
// A zero-length stream yields an empty, non-nil slice. If the stream holds
// more than max bytes, Drain stops reading and returns ErrBodyTooLarge
// (wrapped with the limit) rather than buffering an unbounded body.
func Drain(r io.Reader, max int64) ([]byte, error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}
	if max < 0 {
		return nil, fmt.Errorf("invalid drain limit %d", max)
	}

	var buf bytes.Buffer
	n, err := buf.ReadFrom(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if n > max {
		return nil, fmt.Errorf("%w (%d bytes)", ErrBodyTooLarge, max)
	}
	if buf.Len() == 0 {
		return []byte{}, nil
	}
	return buf.Bytes(), nil
}
