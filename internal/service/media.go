package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"mediaapi/internal/model"
	"mediaapi/internal/repository"
	"mediaapi/internal/storage"
	"mediaapi/internal/transcode"
)

// Category size ceilings, enforced before any disk or network I/O.
const (
	MaxImageBytes int64 = 10 << 20
	MaxPDFBytes   int64 = 50 << 20
	MaxVideoBytes int64 = 500 << 20
)

var (
	ErrReaderNil   = errors.New("reader is nil")
	ErrKeyRequired = errors.New("path is required")

	// ErrIndexNotConfigured is returned by index-backed operations when the
	// service runs store-only, without a metadata repository.
	ErrIndexNotConfigured = errors.New("media index is not configured")

	// ErrNotIndexed is returned by Describe when the object has no index
	// record. The bytes may still exist: the index is best-effort.
	ErrNotIndexed = errors.New("no index record for path")
)

// SizeLimitError is returned when an upload exceeds its category's ceiling.
type SizeLimitError struct {
	Category string
	Limit    int64
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("%s upload exceeds the %dMB limit", e.Category, e.Limit>>20)
}

// UploadResult is the JSON contract returned to upload callers.
// Converted reports the realized outcome: true only when the stored bytes are
// the verified output of a successful transcode, never merely because the
// upload was a video.
type UploadResult struct {
	Success   bool   `json:"success"`
	URL       string `json:"url"`
	Path      string `json:"path"`
	Converted bool   `json:"converted"`
}

// MediaListResult is the service-level DTO for paginated media records.
type MediaListResult struct {
	Items []model.MediaObject `json:"data"`
	Total int                 `json:"total"`
}

// MediaService defines the use cases of the media pipeline.
type MediaService interface {
	// Upload validates the file against its category ceiling, normalizes video
	// through the transcoder (falling back to the original bytes on encoder
	// failure), persists the result to object storage and returns the resolved
	// client-facing URL. requestedPath overrides the default timestamped key.
	Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64, requestedPath string) (*UploadResult, error)

	// Fetch streams a whole object back by key.
	Fetch(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error)

	// FetchRange streams a byte window of an object; end < 0 means "to the end".
	FetchRange(ctx context.Context, key string, start, end int64) (io.ReadCloser, storage.RangeInfo, error)

	// Stat returns an object's metadata without its body.
	Stat(ctx context.Context, key string) (storage.ObjectInfo, error)

	// Delete removes an object by key. Deleting an absent key succeeds.
	Delete(ctx context.Context, key string) error

	// List returns indexed media records using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*MediaListResult, error)

	// Describe returns the index record for a stored key, including the
	// converted flag the upload response reported.
	Describe(ctx context.Context, key string) (*model.MediaObject, error)
}

// mediaService is a concrete implementation of MediaService.
type mediaService struct {
	store storage.Storage
	repo  repository.MediaRepository
	enc   transcode.Transcoder
}

// NewMediaService constructs a new MediaService. repo may be nil when the
// metadata index is not wired (the pipeline works store-only).
func NewMediaService(store storage.Storage, repo repository.MediaRepository, enc transcode.Transcoder) MediaService {
	return &mediaService{store: store, repo: repo, enc: enc}
}

func (s *mediaService) Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64, requestedPath string) (*UploadResult, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	category := categoryFor(contentType)
	limit := ceilingFor(category)
	if size > limit {
		return nil, &SizeLimitError{Category: category, Limit: limit}
	}

	isVideo := category == model.CategoryVideo
	key := resolveKey(requestedPath, originalFilename, isVideo)

	var (
		body      io.Reader = r
		putSize             = size
		putType             = contentType
		converted bool
	)
	if isVideo {
		original, err := storage.Drain(r, limit)
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		payload := s.prepareVideo(ctx, original, originalFilename, contentType)
		body = bytes.NewReader(payload.data)
		putSize = int64(len(payload.data))
		putType = payload.contentType
		converted = payload.converted
	}

	info, err := s.store.Put(ctx, key, body, storage.PutObjectOptions{
		Size:        putSize,
		ContentType: putType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	resolvedURL := s.urlFor(category, info.Key)

	// The store owns the bytes; the index row is strictly best-effort.
	s.indexObject(ctx, &model.MediaObject{
		ID:          uuid.New().String(),
		Path:        info.Key,
		URL:         resolvedURL,
		Category:    category,
		Size:        info.Size,
		ContentType: putType,
		Converted:   converted,
		CreatedAt:   time.Now().UTC(),
	})

	return &UploadResult{
		Success:   true,
		URL:       resolvedURL,
		Path:      info.Key,
		Converted: converted,
	}, nil
}

func (s *mediaService) Fetch(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	if key == "" {
		return nil, storage.ObjectInfo{}, ErrKeyRequired
	}
	return s.store.Get(ctx, key)
}

func (s *mediaService) FetchRange(ctx context.Context, key string, start, end int64) (io.ReadCloser, storage.RangeInfo, error) {
	if key == "" {
		return nil, storage.RangeInfo{}, ErrKeyRequired
	}
	return s.store.GetRange(ctx, key, start, end)
}

func (s *mediaService) Stat(ctx context.Context, key string) (storage.ObjectInfo, error) {
	if key == "" {
		return storage.ObjectInfo{}, ErrKeyRequired
	}
	return s.store.Stat(ctx, key)
}

// Delete removes the object, then drops its index row best-effort. The store
// treats deletion of an absent key as success, so the operation is idempotent
// from the caller's perspective.
func (s *mediaService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete from storage: %w", err)
	}
	if s.repo != nil {
		if err := s.repo.DeleteByPath(ctx, key); err != nil {
			log.Printf("media index delete failed for %s: %v", key, err)
		}
	}
	return nil
}

// List returns paginated media records without exposing repository types.
func (s *mediaService) List(ctx context.Context, limit, offset int) (*MediaListResult, error) {
	if s.repo == nil {
		return nil, ErrIndexNotConfigured
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &MediaListResult{Items: res.Items, Total: res.Total}, nil
}

// Describe looks a stored key up in the metadata index.
func (s *mediaService) Describe(ctx context.Context, key string) (*model.MediaObject, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}
	if s.repo == nil {
		return nil, ErrIndexNotConfigured
	}

	m, err := s.repo.FindByPath(ctx, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotIndexed
		}
		return nil, err
	}
	return m, nil
}

// uploadPayload is the explicit outcome of the video normalization step:
// either the re-encoded bytes or the untouched original after a failed
// transcode. The fallback is a visible branch in the caller, not an
// error-path side effect.
type uploadPayload struct {
	data        []byte
	contentType string
	converted   bool
}

// prepareVideo writes the upload to a scoped temporary file, runs the
// transcoder and reads the result back. Any failure along the way keeps the
// request alive by returning the original bytes unchanged. Temporary files
// are removed on the way out; removal failures are logged only.
func (s *mediaService) prepareVideo(ctx context.Context, original []byte, filename, contentType string) uploadPayload {
	fallback := uploadPayload{data: original, contentType: contentType}

	src, err := os.CreateTemp("", tempPattern(filename))
	if err != nil {
		log.Printf("transcode skipped, temp file: %v", err)
		return fallback
	}
	defer removeTemp(src.Name())

	if _, err := src.Write(original); err != nil {
		src.Close()
		log.Printf("transcode skipped, temp write: %v", err)
		return fallback
	}
	if err := src.Close(); err != nil {
		log.Printf("transcode skipped, temp close: %v", err)
		return fallback
	}

	dst := src.Name() + ".out.mp4"
	defer removeTemp(dst)

	if err := s.enc.Transcode(ctx, src.Name(), dst); err != nil {
		// Availability over fidelity: store the original container as-is.
		log.Printf("transcode failed for %s, storing original: %v", filename, err)
		return fallback
	}

	out, err := os.ReadFile(dst)
	if err != nil {
		log.Printf("transcode output unreadable for %s, storing original: %v", filename, err)
		return fallback
	}
	return uploadPayload{data: out, contentType: "video/mp4", converted: true}
}

// tempPattern scopes temp files to this upload: timestamp plus the original
// name keeps concurrent uploads of the same file from colliding, and the
// preserved extension lets the encoder sniff the input container.
func tempPattern(filename string) string {
	return fmt.Sprintf("upload-%d-*%s", time.Now().UnixMilli(), filepath.Ext(filename))
}

func removeTemp(name string) {
	if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
		log.Printf("temp cleanup failed for %s: %v", name, err)
	}
}

// resolveKey picks the final storage key. Video keys always end in .mp4 so
// the stored extension matches the normalized container.
func resolveKey(requested, filename string, isVideo bool) string {
	key := strings.TrimLeft(strings.TrimSpace(requested), "/")
	if key == "" {
		key = fmt.Sprintf("perfumes/%d-%s", time.Now().UnixMilli(), sanitizeFilename(filename))
	}
	if isVideo {
		if ext := path.Ext(key); ext != "" {
			key = strings.TrimSuffix(key, ext)
		}
		key += ".mp4"
	}
	return key
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "-")
	if name == "." || name == "/" || name == "" {
		name = "file"
	}
	return name
}

func categoryFor(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "video/"):
		return model.CategoryVideo
	case contentType == "application/pdf":
		return model.CategoryPDF
	default:
		return model.CategoryImage
	}
}

func ceilingFor(category string) int64 {
	switch category {
	case model.CategoryVideo:
		return MaxVideoBytes
	case model.CategoryPDF:
		return MaxPDFBytes
	default:
		return MaxImageBytes
	}
}

// urlFor resolves the client-facing URL for a stored key. Images and video go
// through the proxy read paths so range, CORS and cache policy are applied
// uniformly; PDFs link straight to the public bucket.
func (s *mediaService) urlFor(category, key string) string {
	switch category {
	case model.CategoryPDF:
		return s.store.PublicURL(key)
	case model.CategoryVideo:
		return VideoURL(key)
	default:
		return ImageURL(key)
	}
}

func (s *mediaService) indexObject(ctx context.Context, obj *model.MediaObject) {
	if s.repo == nil {
		return
	}
	if _, err := s.repo.Create(ctx, obj); err != nil {
		log.Printf("media index write failed for %s: %v", obj.Path, err)
	}
}
