package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kisekka/internal/middleware"
)

type fakeUploader struct {
	lastPath        string
	lastContentType string
	lastSize        int
	fail            bool
}

func (f *fakeUploader) Upload(_ context.Context, path, contentType string, body io.Reader) (string, error) {
	if f.fail {
		return "", errors.New("bucket on fire")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.lastPath = path
	f.lastContentType = contentType
	f.lastSize = len(data)
	return "https://cdn.example.com/" + path, nil
}

func uploadRouter(uploader *fakeUploader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/upload", func(c *gin.Context) {
		c.Set(middleware.CtxUserID, primitive.NewObjectID())
	}, Upload(uploader))
	return r
}

func multipartImageBody(t *testing.T, field, filename string) (*bytes.Buffer, string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: uint8(y * 6), B: 120, A: 255})
		}
	}
	var encoded bytes.Buffer
	require.NoError(t, png.Encode(&encoded, img))

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(encoded.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("path", "posts"))
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestUploadReturnsPublicURL(t *testing.T) {
	uploader := &fakeUploader{}
	r := uploadRouter(uploader)

	body, contentType := multipartImageBody(t, "file", "engine photo.png")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://cdn.example.com/"+uploader.lastPath, resp["url"])
	assert.True(t, strings.HasPrefix(uploader.lastPath, "posts/"))
	assert.False(t, strings.Contains(uploader.lastPath, " "), "filename must be sanitized")
	assert.Greater(t, uploader.lastSize, 0)
}

func TestUploadRejectsMissingFile(t *testing.T) {
	r := uploadRouter(&fakeUploader{})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("path", "posts"))
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRejectsMissingPath(t *testing.T) {
	r := uploadRouter(&fakeUploader{})

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var encoded bytes.Buffer
	require.NoError(t, png.Encode(&encoded, img))

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(encoded.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadReportsStorageFailure(t *testing.T) {
	r := uploadRouter(&fakeUploader{fail: true})

	body, contentType := multipartImageBody(t, "file", "photo.png")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
