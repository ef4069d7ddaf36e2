package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// maxLocalObjectBytes caps one object written to local disk.
const maxLocalObjectBytes = 5 << 20

var allowedLocalExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// LocalUploader writes objects under a public directory on disk. Used in
// development when no bucket is configured; the directory is served as
// static files by the router.
type LocalUploader struct {
	rootDir       string
	publicBaseURL string
}

func NewLocalUploader(rootDir, publicBaseURL string) *LocalUploader {
	return &LocalUploader{
		rootDir:       filepath.Clean(rootDir),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (u *LocalUploader) Upload(ctx context.Context, path, contentType string, body io.Reader) (string, error) {
	cleanRel := filepath.FromSlash(strings.TrimPrefix(path, "/"))
	target := filepath.Join(u.rootDir, cleanRel)

	// Refuse anything that escapes the public root.
	if target != u.rootDir && !strings.HasPrefix(target, u.rootDir+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: path escapes upload root: %s", ErrUploadFailed, path)
	}

	if ext := strings.ToLower(filepath.Ext(target)); !allowedLocalExtensions[ext] {
		return "", fmt.Errorf("%w: extension %q not allowed", ErrUploadFailed, ext)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		log.Printf("[UPLOAD] [ERROR] create directory for %s: %v", path, err)
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	out, err := os.Create(target)
	if err != nil {
		log.Printf("[UPLOAD] [ERROR] create file %s: %v", target, err)
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer out.Close()

	written, err := io.Copy(out, io.LimitReader(body, maxLocalObjectBytes+1))
	if err != nil {
		log.Printf("[UPLOAD] [ERROR] write file %s: %v", target, err)
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if written > maxLocalObjectBytes {
		out.Close()
		os.Remove(target)
		return "", fmt.Errorf("%w: object exceeds %d bytes", ErrUploadFailed, maxLocalObjectBytes)
	}

	return u.publicBaseURL + "/" + strings.TrimPrefix(path, "/"), nil
}
