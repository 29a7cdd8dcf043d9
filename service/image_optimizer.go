package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"catalogo-tienda/logx"
)

// Defaults for catalog thumbnails
const (
	DefaultMaxDimension = 200
	DefaultJPEGQuality  = 80
)

// OptimizedImage is a re-encoded JPEG and its pixel size
type OptimizedImage struct {
	Data   []byte
	Width  int
	Height int
}

// ImageOptimizer shrinks images to catalog thumbnails
type ImageOptimizer struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// NewImageOptimizer returns an optimizer bounded to maxDim x maxDim
func NewImageOptimizer(maxDim, quality int) ImageOptimizer {
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return ImageOptimizer{MaxWidth: maxDim, MaxHeight: maxDim, Quality: quality}
}

// Optimize decodes PNG, JPEG, GIF or WebP data, fits it inside the bounds
// keeping its aspect ratio, flattens transparency on white and re-encodes
// it as JPEG. Images already inside the bounds are not upscaled.
func (o ImageOptimizer) Optimize(imageData []byte) (OptimizedImage, error) {
	// Decode the image
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return OptimizedImage{}, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return OptimizedImage{}, fmt.Errorf("image has no pixels")
	}
	logx.Debug().Str("format", format).Int("width", width).Int("height", height).Msg("📸 Image decoded")

	var resized image.Image = img
	if width > o.MaxWidth || height > o.MaxHeight {
		resized = imaging.Fit(img, o.MaxWidth, o.MaxHeight, imaging.Lanczos)
	}

	// JPEG has no alpha channel; paint onto white first
	rb := resized.Bounds()
	flat := imaging.New(rb.Dx(), rb.Dy(), color.White)
	flat = imaging.Overlay(flat, resized, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(o.Quality)); err != nil {
		return OptimizedImage{}, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	out := OptimizedImage{Data: buf.Bytes(), Width: rb.Dx(), Height: rb.Dy()}
	logx.Debug().Int("width", out.Width).Int("height", out.Height).Int("bytes", len(out.Data)).Msg("✓ Image optimized")
	return out, nil
}
