package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "photo.jpg"},
		{"my photo (1).jpg", "my_photo__1_.jpg"},
		{"IMG_2024-01-01.png", "IMG_2024_01_01.png"},
		{"légume.webp", "l_gume.webp"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{"", "file"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in), "input %q", tt.in)
	}
}

func TestSanitizedOutputIsAlwaysSafe(t *testing.T) {
	inputs := []string{"a b&c!.jpg", "名前.png", "with/slash.gif", strings.Repeat("*", 40)}
	for _, in := range inputs {
		out := SanitizeFilename(in)
		for _, r := range out {
			safe := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '_'
			assert.True(t, safe, "character %q leaked through for input %q", r, in)
		}
	}
}

func TestGeneratePathShape(t *testing.T) {
	before := time.Now().UnixMilli()
	path := GeneratePath("posts", "user123", "my photo.jpg")
	after := time.Now().UnixMilli()

	parts := strings.SplitN(path, "/", 3)
	require.Len(t, parts, 3)
	assert.Equal(t, "posts", parts[0])
	assert.Equal(t, "user123", parts[1])

	var millis int64
	var name string
	_, err := fmt.Sscanf(parts[2], "%d_%s", &millis, &name)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, millis, before)
	assert.LessOrEqual(t, millis, after)
	assert.Equal(t, "my_photo.jpg", name)
}

func TestGeneratePathDistinctTimestampsNeverCollide(t *testing.T) {
	first := GeneratePath("posts", "user123", "photo.jpg")
	time.Sleep(2 * time.Millisecond)
	second := GeneratePath("posts", "user123", "photo.jpg")
	assert.NotEqual(t, first, second)
}

func TestLocalUploaderWritesAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	uploader := NewLocalUploader(dir, "http://localhost:8080/public/uploads")

	url, err := uploader.Upload(context.Background(), "posts/u1/123_a.jpg", "image/jpeg", strings.NewReader("payload"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/public/uploads/posts/u1/123_a.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "posts", "u1", "123_a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestLocalUploaderRejectsUnknownExtension(t *testing.T) {
	uploader := NewLocalUploader(t.TempDir(), "http://localhost:8080/public/uploads")

	_, err := uploader.Upload(context.Background(), "posts/u1/123_a.exe", "application/octet-stream", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUploadFailed)
}

func TestLocalUploaderRejectsEscapingPaths(t *testing.T) {
	uploader := NewLocalUploader(t.TempDir(), "http://localhost:8080/public/uploads")

	_, err := uploader.Upload(context.Background(), "../outside.txt", "text/plain", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUploadFailed)
}
