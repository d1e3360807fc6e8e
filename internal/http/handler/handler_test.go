package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mediaapi/internal/model"
	"mediaapi/internal/service"
	serviceMocks "mediaapi/internal/service/mocks"
	"mediaapi/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, filename, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename)}
	h["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	part.Write([]byte(content))
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUploadMedia(t *testing.T) {
	mockSvc := new(serviceMocks.MockMediaService)
	app := fiber.New()
	app.Post("/media/upload", UploadMedia(mockSvc))

	t.Run("success", func(t *testing.T) {
		body, ct := multipartBody(t, "bottle.jpg", "image/jpeg", "jpeg-bytes")

		expected := &service.UploadResult{
			Success: true,
			URL:     "/media/image?path=perfumes%2F1-bottle.jpg",
			Path:    "perfumes/1-bottle.jpg",
		}
		mockSvc.On("Upload", mock.Anything, mock.Anything, "bottle.jpg", "image/jpeg", int64(10), "").
			Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/media/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.UploadResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.True(t, result.Success)
		assert.Equal(t, expected.Path, result.Path)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/media/upload", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_REQUIRED", res.Error.Code)
	})

	t.Run("file too large", func(t *testing.T) {
		body, ct := multipartBody(t, "huge.mp4", "video/mp4", "x")

		mockSvc.On("Upload", mock.Anything, mock.Anything, "huge.mp4", "video/mp4", mock.Anything, "").
			Return(nil, &service.SizeLimitError{Category: "video", Limit: service.MaxVideoBytes}).Once()

		req := httptest.NewRequest(http.MethodPost, "/media/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_TOO_LARGE", res.Error.Code)
		assert.Contains(t, res.Error.Message, "500MB")
		mockSvc.AssertExpectations(t)
	})

	t.Run("bucket missing", func(t *testing.T) {
		body, ct := multipartBody(t, "a.jpg", "image/jpeg", "x")

		storeErr := fmt.Errorf("upload to storage: %w", minio.ErrorResponse{Code: "NoSuchBucket", BucketName: "perfume-media"})
		mockSvc.On("Upload", mock.Anything, mock.Anything, "a.jpg", "image/jpeg", mock.Anything, "").
			Return(nil, storeErr).Once()

		req := httptest.NewRequest(http.MethodPost, "/media/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "BUCKET_MISSING", res.Error.Code)
		assert.Contains(t, res.Error.Message, "perfume-media")
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		body, ct := multipartBody(t, "a.jpg", "image/jpeg", "x")

		storeErr := fmt.Errorf("upload to storage: %w", minio.ErrorResponse{Code: "SignatureDoesNotMatch"})
		mockSvc.On("Upload", mock.Anything, mock.Anything, "a.jpg", "image/jpeg", mock.Anything, "").
			Return(nil, storeErr).Once()

		req := httptest.NewRequest(http.MethodPost, "/media/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_CREDENTIALS", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("generic storage error", func(t *testing.T) {
		body, ct := multipartBody(t, "a.jpg", "image/jpeg", "x")

		mockSvc.On("Upload", mock.Anything, mock.Anything, "a.jpg", "image/jpeg", mock.Anything, "").
			Return(nil, errors.New("connection refused")).Once()

		req := httptest.NewRequest(http.MethodPost, "/media/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "STORAGE_ERROR", res.Error.Code)
		assert.Contains(t, res.Error.Message, "connection refused")
		mockSvc.AssertExpectations(t)
	})
}

func TestGetImage(t *testing.T) {
	mockSvc := new(serviceMocks.MockMediaService)
	app := fiber.New()
	app.Get("/media/image", GetImage(mockSvc))

	t.Run("success", func(t *testing.T) {
		content := "jpeg-bytes"
		mockSvc.On("Fetch", mock.Anything, "perfumes/1-a.jpg").
			Return(io.NopCloser(strings.NewReader(content)),
				storage.ObjectInfo{Key: "perfumes/1-a.jpg", Size: int64(len(content)), ContentType: "image/jpeg"},
				nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/media/image?path=perfumes%2F1-a.jpg", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
		assert.Equal(t, "public, max-age=31536000, immutable", resp.Header.Get("Cache-Control"))

		b, _ := io.ReadAll(resp.Body)
		assert.Equal(t, content, string(b))
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing path", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/media/image", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "PATH_REQUIRED", res.Error.Code)
		mockSvc.AssertNotCalled(t, "Fetch", mock.Anything, "")
	})

	t.Run("data URI rejected without store contact", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/media/image?path=data%3Aimage%2Fpng%3Bbase64%2CAAAA", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "DATA_URI_REJECTED", res.Error.Code)
		mockSvc.AssertNotCalled(t, "Fetch", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "data:")
		}))
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Fetch", mock.Anything, "missing.jpg").
			Return(nil, storage.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"}).Once()

		req := httptest.NewRequest(http.MethodGet, "/media/image?path=missing.jpg", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("store error surfaces message", func(t *testing.T) {
		mockSvc.On("Fetch", mock.Anything, "broken.jpg").
			Return(nil, storage.ObjectInfo{}, errors.New("network timeout")).Once()

		req := httptest.NewRequest(http.MethodGet, "/media/image?path=broken.jpg", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "STORAGE_ERROR", res.Error.Code)
		assert.Contains(t, res.Error.Message, "network timeout")
		mockSvc.AssertExpectations(t)
	})
}

func TestGetPDF(t *testing.T) {
	mockSvc := new(serviceMocks.MockMediaService)
	app := fiber.New()
	app.Get("/media/pdf", GetPDF(mockSvc))

	content := "%PDF-1.7 fake"
	mockSvc.On("Fetch", mock.Anything, "perfumes/2-catalog.pdf").
		Return(io.NopCloser(strings.NewReader(content)),
			storage.ObjectInfo{Key: "perfumes/2-catalog.pdf", Size: int64(len(content)), ContentType: "application/pdf"},
			nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/media/pdf?path=perfumes%2F2-catalog.pdf", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `inline; filename="2-catalog.pdf"`, resp.Header.Get("Content-Disposition"))

	b, _ := io.ReadAll(resp.Body)
	assert.Equal(t, content, string(b))
}

func TestGetVideo(t *testing.T) {
	mockSvc := new(serviceMocks.MockMediaService)
	app := fiber.New()
	app.Get("/media/video", GetVideo(mockSvc))

	t.Run("full body without range header", func(t *testing.T) {
		content := strings.Repeat("v", 64)
		mockSvc.On("Fetch", mock.Anything, "perfumes/3-clip.mp4").
			Return(io.NopCloser(strings.NewReader(content)),
				storage.ObjectInfo{Key: "perfumes/3-clip.mp4", Size: int64(len(content)), ContentType: "video/mp4"},
				nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/media/video?path=perfumes%2F3-clip.mp4", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "video/mp4", resp.Header.Get("Content-Type"))
		assert.Equal(t, "bytes", resp.Header.Get("Accept-Ranges"))

		b, _ := io.ReadAll(resp.Body)
		assert.Len(t, b, 64)
		mockSvc.AssertExpectations(t)
	})

	t.Run("partial content for range request", func(t *testing.T) {
		window := strings.Repeat("v", 100)
		mockSvc.On("FetchRange", mock.Anything, "perfumes/3-clip.mp4", int64(0), int64(99)).
			Return(io.NopCloser(strings.NewReader(window)),
				storage.RangeInfo{Start: 0, End: 99, Total: 5000},
				nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/media/video?path=perfumes%2F3-clip.mp4", nil)
		req.Header.Set("Range", "bytes=0-99")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusPartialContent, resp.StatusCode)
		assert.Equal(t, "bytes 0-99/5000", resp.Header.Get("Content-Range"))
		assert.Equal(t, "bytes", resp.Header.Get("Accept-Ranges"))
		assert.Equal(t, "100", resp.Header.Get("Content-Length"))

		b, _ := io.ReadAll(resp.Body)
		assert.Len(t, b, 100)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unsatisfiable range falls back to full body", func(t *testing.T) {
		content := "short"
		mockSvc.On("FetchRange", mock.Anything, "perfumes/4-tiny.mp4", int64(9000), int64(-1)).
			Return(nil, storage.RangeInfo{}, storage.ErrRangeNotSatisfiable).Once()
		mockSvc.On("Fetch", mock.Anything, "perfumes/4-tiny.mp4").
			Return(io.NopCloser(strings.NewReader(content)),
				storage.ObjectInfo{Key: "perfumes/4-tiny.mp4", Size: int64(len(content)), ContentType: "video/mp4"},
				nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/media/video?path=perfumes%2F4-tiny.mp4", nil)
		req.Header.Set("Range", "bytes=9000-")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("malformed range header served as full body", func(t *testing.T) {
		content := "full"
		mockSvc.On("Fetch", mock.Anything, "perfumes/5-x.mp4").
			Return(io.NopCloser(strings.NewReader(content)),
				storage.ObjectInfo{Key: "perfumes/5-x.mp4", Size: int64(len(content)), ContentType: "video/mp4"},
				nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/media/video?path=perfumes%2F5-x.mp4", nil)
		req.Header.Set("Range", "bytes=oops")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing path is 400 without store contact", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/media/video", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "PATH_REQUIRED", res.Error.Code)
		mockSvc.AssertNotCalled(t, "Fetch", mock.Anything, "")
	})

	t.Run("range request for missing object is 404", func(t *testing.T) {
		mockSvc.On("FetchRange", mock.Anything, "gone.mp4", int64(0), int64(99)).
			Return(nil, storage.RangeInfo{}, minio.ErrorResponse{Code: "NoSuchKey"}).Once()

		req := httptest.NewRequest(http.MethodGet, "/media/video?path=gone.mp4", nil)
		req.Header.Set("Range", "bytes=0-99")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestHeadVideo(t *testing.T) {
	mockSvc := new(serviceMocks.MockMediaService)
	app := fiber.New()
	app.Head("/media/video", HeadVideo(mockSvc))

	t.Run("headers only", func(t *testing.T) {
		mockSvc.On("Stat", mock.Anything, "perfumes/3-clip.mp4").
			Return(storage.ObjectInfo{Key: "perfumes/3-clip.mp4", Size: 4096, ContentType: "video/mp4"}, nil).Once()

		req := httptest.NewRequest(http.MethodHead, "/media/video?path=perfumes%2F3-clip.mp4", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "video/mp4", resp.Header.Get("Content-Type"))
		assert.Equal(t, "4096", resp.Header.Get("Content-Length"))
		assert.Equal(t, "bytes", resp.Header.Get("Accept-Ranges"))

		b, _ := io.ReadAll(resp.Body)
		assert.Empty(t, b)
		mockSvc.AssertExpectations(t)
	})

	t.Run("store error is 500 without body", func(t *testing.T) {
		mockSvc.On("Stat", mock.Anything, "broken.mp4").
			Return(storage.ObjectInfo{}, errors.New("stat failed")).Once()

		req := httptest.NewRequest(http.MethodHead, "/media/video?path=broken.mp4", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteMedia(t *testing.T) {
	mockSvc := new(serviceMocks.MockMediaService)
	app := fiber.New()
	app.Delete("/media/delete", DeleteMedia(mockSvc))

	deleteReq := func(path string) *http.Request {
		body, _ := json.Marshal(map[string]string{"path": path})
		req := httptest.NewRequest(http.MethodDelete, "/media/delete", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, "perfumes/1-a.jpg").Return(nil).Once()

		resp, _ := app.Test(deleteReq("perfumes/1-a.jpg"))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]bool
		json.NewDecoder(resp.Body).Decode(&body)
		assert.True(t, body["success"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("deleting twice succeeds twice", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, "never-created").Return(nil).Twice()

		for i := 0; i < 2; i++ {
			resp, _ := app.Test(deleteReq("never-created"))
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var body map[string]bool
			json.NewDecoder(resp.Body).Decode(&body)
			assert.True(t, body["success"])
		}
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing path", func(t *testing.T) {
		resp, _ := app.Test(deleteReq(""))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "PATH_REQUIRED", res.Error.Code)
	})

	t.Run("store error", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, "stuck.jpg").Return(errors.New("delete error")).Once()

		resp, _ := app.Test(deleteReq("stuck.jpg"))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestListMedia(t *testing.T) {
	mockSvc := new(serviceMocks.MockMediaService)
	app := fiber.New()
	app.Get("/media/list", ListMedia(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 10, 0).
			Return(&service.MediaListResult{Total: 0}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/media/list", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/media/list?limit=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_LIMIT", res.Error.Code)
	})

	t.Run("store-only deployment is 503", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 10, 0).
			Return(nil, service.ErrIndexNotConfigured).Once()

		req := httptest.NewRequest(http.MethodGet, "/media/list", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INDEX_UNAVAILABLE", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestMediaInfo(t *testing.T) {
	mockSvc := new(serviceMocks.MockMediaService)
	app := fiber.New()
	app.Get("/media/info", MediaInfo(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Describe", mock.Anything, "perfumes/3-clip.mp4").
			Return(&model.MediaObject{Path: "perfumes/3-clip.mp4", Category: "video", Converted: true}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/media/info?path=perfumes%2F3-clip.mp4", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body model.MediaObject
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "perfumes/3-clip.mp4", body.Path)
		assert.True(t, body.Converted)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing path", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/media/info", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "PATH_REQUIRED", res.Error.Code)
		mockSvc.AssertNotCalled(t, "Describe", mock.Anything, "")
	})

	t.Run("no index record", func(t *testing.T) {
		mockSvc.On("Describe", mock.Anything, "perfumes/unindexed.jpg").
			Return(nil, service.ErrNotIndexed).Once()

		req := httptest.NewRequest(http.MethodGet, "/media/info?path=perfumes%2Funindexed.jpg", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_INDEXED", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("store-only deployment is 503", func(t *testing.T) {
		mockSvc.On("Describe", mock.Anything, "perfumes/anything.jpg").
			Return(nil, service.ErrIndexNotConfigured).Once()

		req := httptest.NewRequest(http.MethodGet, "/media/info?path=perfumes%2Fanything.jpg", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INDEX_UNAVAILABLE", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	mockSvc := new(serviceMocks.MockMediaService)
	RegisterRoutes(app, nil, mockSvc)

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("preflight gets 200 with CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/media/upload", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "POST, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
	})

	t.Run("video preflight exposes range headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/media/video", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Content-Length, Content-Range, Accept-Ranges", resp.Header.Get("Access-Control-Expose-Headers"))
	})
}
