// Package render draws laid-out catalog pages onto a drawing surface.
//
// The Renderer only knows about Canvas. PDFCanvas produces the final
// document through gofpdf, HTMLCanvas produces a standalone HTML page
// used for browser previews and PNG export, and Recorder keeps the draw
// calls in memory.
package render

import (
	"io"

	"catalogo-tienda/layout"
	"catalogo-tienda/theme"
)

// Reserved image keys for store assets, preloaded next to product images.
const (
	LogoKey = "store:logo"
	QRKey   = "store:qr"
)

// Align is the horizontal text alignment inside a box
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextStyle describes a single run of text. Sizes are in points.
type TextStyle struct {
	SizePt float64
	Bold   bool
	Color  theme.Color
	Align  Align
}

// Canvas is a drawing surface measured in millimetres with the origin at
// the top-left of the current page. Drawing errors are sticky and
// reported by Err and Finish.
type Canvas interface {
	AddPage(widthMM, heightMM float64)
	FillRect(r layout.Rect, c theme.Color)
	StrokeRect(r layout.Rect, c theme.Color, lineWidth float64)
	Line(x1, y1, x2, y2 float64, c theme.Color, lineWidth float64)
	// Text draws a single line vertically centered in r.
	Text(r layout.Rect, s string, style TextStyle)
	MeasureText(s string, style TextStyle) float64
	// Image draws JPEG data stretched to r. Callers letterbox beforehand.
	Image(key string, jpegData []byte, r layout.Rect)
	Err() error
	Finish(w io.Writer) error
}

// Image is a prepared raster ready to be embedded
type Image struct {
	Data   []byte
	Width  int
	Height int
}

// ImageSource hands out prepared images by key (product id or a store key)
type ImageSource interface {
	Image(key string) (Image, bool)
}

// NoImages is an ImageSource that never has anything
type NoImages struct{}

// Image implements ImageSource
func (NoImages) Image(string) (Image, bool) { return Image{}, false }
