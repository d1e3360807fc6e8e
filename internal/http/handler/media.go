package handler

import (
	"errors"
	"fmt"
	"mime"
	"path"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"mediaapi/internal/service"
	"mediaapi/internal/storage"
)

// Stored keys are timestamp-addressed and never mutated in place, so read
// responses can be cached aggressively.
const cacheForever = "public, max-age=31536000, immutable"

// readKey extracts and validates the ?path= query parameter for read/head
// handlers. A data: URI as a key indicates a caller bug (unmigrated inline
// data) and is rejected before any store contact. ok is false when the 400
// response has already been written and the handler must stop; the error
// value from writing it cannot carry that signal because a successfully
// written rejection is a nil error.
func readKey(c *fiber.Ctx) (key string, ok bool) {
	key = c.Query("path")
	if key == "" {
		writeError(c, fiber.StatusBadRequest, "PATH_REQUIRED", "path query parameter is required")
		return "", false
	}
	if strings.HasPrefix(key, "data:") {
		writeError(c, fiber.StatusBadRequest, "DATA_URI_REJECTED", "data: URLs cannot be read back; upload the file first")
		return "", false
	}
	return key, true
}

// storeError maps object store failures on the read path: absent objects are
// 404, everything else surfaces the native message at 500.
func storeError(c *fiber.Ctx, err error) error {
	if storage.IsNotFound(err) {
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "object not found")
	}
	return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", err.Error())
}

// contentTypeOr returns the stored content type, falling back to the key's
// extension and finally to def.
func contentTypeOr(info storage.ObjectInfo, key, def string) string {
	if info.ContentType != "" {
		return info.ContentType
	}
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return def
}

// UploadMedia accepts a multipart form with a required `file` field and an
// optional `path` field overriding the default timestamped key.
func UploadMedia(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		res, err := svc.Upload(c.UserContext(), f, fh.Filename, ct, fh.Size, c.FormValue("path"))
		if err != nil {
			var sizeErr *service.SizeLimitError
			switch {
			case errors.As(err, &sizeErr):
				return writeError(c, fiber.StatusBadRequest, "FILE_TOO_LARGE", sizeErr.Error())
			case storage.IsBucketMissing(err):
				msg := "storage bucket does not exist; create it or fix MINIO_BUCKET"
				if bucket := storage.BucketFromError(err); bucket != "" {
					msg = fmt.Sprintf("storage bucket %q does not exist; create it or fix MINIO_BUCKET", bucket)
				}
				return writeError(c, fiber.StatusInternalServerError, "BUCKET_MISSING", msg)
			case storage.IsInvalidCredentials(err):
				return writeError(c, fiber.StatusInternalServerError, "INVALID_CREDENTIALS", "storage rejected the configured credentials; check MINIO_ACCESS_KEY and MINIO_SECRET_KEY")
			default:
				return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", err.Error())
			}
		}
		return c.JSON(res)
	}
}

// GetImage serves a stored image in full. No range support: storefront images
// are small enough that partial reads buy nothing.
func GetImage(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, ok := readKey(c)
		if !ok {
			return nil
		}

		rc, info, err := svc.Fetch(c.UserContext(), key)
		if err != nil {
			return storeError(c, err)
		}

		c.Set(fiber.HeaderContentType, contentTypeOr(info, key, "image/jpeg"))
		c.Set(fiber.HeaderCacheControl, cacheForever)
		return c.SendStream(rc, int(info.Size))
	}
}

// GetPDF serves a stored PDF inline in full.
func GetPDF(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, ok := readKey(c)
		if !ok {
			return nil
		}

		rc, info, err := svc.Fetch(c.UserContext(), key)
		if err != nil {
			return storeError(c, err)
		}

		c.Set(fiber.HeaderContentType, contentTypeOr(info, key, "application/pdf"))
		c.Set(fiber.HeaderContentDisposition, `inline; filename="`+path.Base(key)+`"`)
		c.Set(fiber.HeaderCacheControl, cacheForever)
		return c.SendStream(rc, int(info.Size))
	}
}

// GetVideo serves a stored video, honoring single-range byte requests so
// mobile players can seek. An unparseable or unsatisfiable range falls back
// to a full 200 response rather than failing playback.
func GetVideo(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, ok := readKey(c)
		if !ok {
			return nil
		}

		if rng, ok := parseRangeHeader(c.Get(fiber.HeaderRange)); ok {
			rc, info, err := svc.FetchRange(c.UserContext(), key, rng.Start, rng.End)
			switch {
			case err == nil:
				c.Set(fiber.HeaderContentType, contentTypeOr(storage.ObjectInfo{}, key, "video/mp4"))
				c.Set(fiber.HeaderContentRange, info.ContentRange())
				c.Set(fiber.HeaderAcceptRanges, "bytes")
				c.Set(fiber.HeaderCacheControl, cacheForever)
				c.Status(fiber.StatusPartialContent)
				return c.SendStream(rc, int(info.Length()))
			case errors.Is(err, storage.ErrRangeNotSatisfiable):
				// fall through to the full response below
			default:
				return storeError(c, err)
			}
		}

		rc, info, err := svc.Fetch(c.UserContext(), key)
		if err != nil {
			return storeError(c, err)
		}

		c.Set(fiber.HeaderContentType, contentTypeOr(info, key, "video/mp4"))
		c.Set(fiber.HeaderAcceptRanges, "bytes")
		c.Set(fiber.HeaderCacheControl, cacheForever)
		return c.SendStream(rc, int(info.Size))
	}
}

// HeadVideo answers metadata probes from players that check size and type
// before issuing range requests. Same headers as GetVideo, no body.
func HeadVideo(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, ok := readKey(c)
		if !ok {
			return nil
		}

		info, err := svc.Stat(c.UserContext(), key)
		if err != nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}

		c.Set(fiber.HeaderContentType, contentTypeOr(info, key, "video/mp4"))
		c.Set(fiber.HeaderContentLength, strconv.FormatInt(info.Size, 10))
		c.Set(fiber.HeaderAcceptRanges, "bytes")
		c.Set(fiber.HeaderCacheControl, cacheForever)
		return c.SendStatus(fiber.StatusOK)
	}
}

type deleteRequest struct {
	Path string `json:"path"`
}

// DeleteMedia removes an object by key. Deleting a key that no longer exists
// (or never existed) reports success, keeping the operation idempotent.
func DeleteMedia(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req deleteRequest
		if err := c.BodyParser(&req); err != nil || req.Path == "" {
			return writeError(c, fiber.StatusBadRequest, "PATH_REQUIRED", "JSON body with a path field is required")
		}

		if err := svc.Delete(c.UserContext(), req.Path); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", err.Error())
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// MediaInfo returns the index record for a stored key, giving the storefront
// admin the converted flag and metadata the upload response reported. The
// bytes are authoritative in the store; a missing record only means the
// best-effort index write was lost.
func MediaInfo(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, ok := readKey(c)
		if !ok {
			return nil
		}

		m, err := svc.Describe(c.UserContext(), key)
		switch {
		case err == nil:
			return c.JSON(m)
		case errors.Is(err, service.ErrNotIndexed):
			return writeError(c, fiber.StatusNotFound, "NOT_INDEXED", "no index record for path")
		case errors.Is(err, service.ErrIndexNotConfigured):
			return writeError(c, fiber.StatusServiceUnavailable, "INDEX_UNAVAILABLE", "media index is not configured")
		default:
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
	}
}

// ListMedia returns the paginated media index for the storefront admin.
func ListMedia(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			if errors.Is(err, service.ErrIndexNotConfigured) {
				return writeError(c, fiber.StatusServiceUnavailable, "INDEX_UNAVAILABLE", "media index is not configured")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}
