package handler

import (
	"strconv"
	"strings"
)

// byteRange is a parsed HTTP Range header. End == -1 means the request was
// open-ended ("bytes=100-") and the store decides where the window closes.
type byteRange struct {
	Start int64
	End   int64
}

// parseRangeHeader parses a single-range "bytes=start-end" header value.
// Suffix ranges ("bytes=-500") and multi-range requests are not produced by
// the video players this proxy serves; they report ok=false and the caller
// falls back to a full-body response.
func parseRangeHeader(h string) (byteRange, bool) {
	h = strings.TrimSpace(h)
	const prefix = "bytes="
	if !strings.HasPrefix(h, prefix) {
		return byteRange{}, false
	}
	spec := strings.TrimPrefix(h, prefix)
	if strings.Contains(spec, ",") {
		return byteRange{}, false
	}

	startStr, endStr, found := strings.Cut(spec, "-")
	if !found || startStr == "" {
		return byteRange{}, false
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil || start < 0 {
		return byteRange{}, false
	}

	end := int64(-1)
	if endStr != "" {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil || end < start {
			return byteRange{}, false
		}
	}

	return byteRange{Start: start, End: end}, true
}
