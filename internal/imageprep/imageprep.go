// Package imageprep shrinks user-selected images to a byte ceiling before
// they are forwarded to object storage. The market runs on cheap mobile data;
// a raw camera photo is 3-8 MB and the ceiling is 200 KB.
package imageprep

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"log"

	"github.com/disintegration/imaging"
)

const (
	MaxWidth  = 1200
	MaxHeight = 1200

	// DefaultMaxBytes is the target ceiling for one prepared image.
	DefaultMaxBytes = 200 * 1024

	initialQuality = 80
	minQuality     = 30
	qualityStep    = 10
)

// Result carries the prepared bytes plus what happened to them.
type Result struct {
	Data        []byte
	ContentType string
	// Compressed is false when the original bytes were passed through, either
	// because they could not be decoded or because they already fit.
	Compressed bool
}

// Compress decodes, downscales and re-encodes raw image bytes until they fit
// under maxBytes or the quality floor is reached. It never fails: any decode
// or encode problem degrades to passing the original bytes through unchanged,
// and once the floor is hit an oversize result is accepted.
func Compress(raw []byte, contentType string, maxBytes int) Result {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	passthrough := Result{Data: raw, ContentType: contentType, Compressed: false}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		log.Printf("[IMAGE] [WARN] decode failed, passing original through: %v", err)
		return passthrough
	}

	src = scaleToFit(src)

	quality := initialQuality
	var best []byte
	for {
		encoded, err := encodeJPEG(src, quality)
		if err != nil {
			log.Printf("[IMAGE] [WARN] encode failed, passing original through: %v", err)
			return passthrough
		}
		best = encoded

		if len(encoded) <= maxBytes || quality <= minQuality {
			break
		}
		quality -= qualityStep
		if quality < minQuality {
			quality = minQuality
		}
	}

	return Result{Data: best, ContentType: "image/jpeg", Compressed: true}
}

// scaleToFit preserves aspect ratio and never upscales.
func scaleToFit(src image.Image) image.Image {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= MaxWidth && height <= MaxHeight {
		return src
	}
	return imaging.Fit(src, MaxWidth, MaxHeight, imaging.Lanczos)
}

func encodeJPEG(src image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
