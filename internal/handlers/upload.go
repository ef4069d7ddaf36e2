package handlers

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"kisekka/internal/imageprep"
	"kisekka/internal/storage"
)

// maxUploadBytes caps the raw multipart body before compression.
const maxUploadBytes = 15 << 20

// Upload receives one image, squeezes it through the compression pipeline
// and forwards the result to object storage. The answer is just the public
// URL; the client embeds it in whatever it is composing.
func Upload(uploader storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/upload"
		defer handlePanic(c, route)

		fileHeader, err := c.FormFile("file")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "file is required")
			return
		}
		if fileHeader.Size > maxUploadBytes {
			respondWithError(c, http.StatusBadRequest, route, "file too large")
			return
		}

		folder := c.PostForm("path")
		if folder == "" {
			respondWithError(c, http.StatusBadRequest, route, "path is required")
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not read file")
			return
		}
		defer file.Close()

		raw, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not read file")
			return
		}

		result := imageprep.Compress(raw, fileHeader.Header.Get("Content-Type"), imageprep.DefaultMaxBytes)
		if result.Compressed {
			log.Printf("[%s] %s compressed %d -> %d bytes", route, fileHeader.Filename, len(raw), len(result.Data))
		}

		path := storage.GeneratePath(folder, currentUserID(c).Hex(), fileHeader.Filename)

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		url, err := uploader.Upload(ctx, path, result.ContentType, bytes.NewReader(result.Data))
		if err != nil {
			log.Printf("[%s] upload of %s failed: %v", route, path, err)
			respondWithError(c, http.StatusInternalServerError, route, "upload failed")
			return
		}

		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}
