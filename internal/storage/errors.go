package storage

import (
	"errors"

	"github.com/minio/minio-go/v7"
)

// ErrRangeNotSatisfiable is returned by GetRange when the requested start
// offset lies beyond the end of the object. Callers are expected to fall back
// to a full read.
var ErrRangeNotSatisfiable = errors.New("requested range not satisfiable")

// errorCode extracts the S3 error code from err, looking through wrapping.
func errorCode(err error) string {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code
	}
	return ""
}

// IsNotFound reports whether err is the backend's "no such object" error.
func IsNotFound(err error) bool {
	return errorCode(err) == "NoSuchKey"
}

// IsBucketMissing reports whether err indicates the configured bucket does not exist.
func IsBucketMissing(err error) bool {
	return errorCode(err) == "NoSuchBucket"
}

// BucketFromError returns the bucket named in an S3 error response, if any.
// Used to build actionable messages when the configured bucket is missing.
func BucketFromError(err error) string {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.BucketName
	}
	return ""
}

// IsInvalidCredentials reports whether err indicates bad or rejected credentials,
// including a signature mismatch from a wrong secret key.
func IsInvalidCredentials(err error) bool {
	switch errorCode(err) {
	case "InvalidAccessKeyId", "SignatureDoesNotMatch", "AccessDenied":
		return true
	}
	return false
}
