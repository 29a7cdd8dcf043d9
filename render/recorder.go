package render

import (
	"fmt"
	"io"
	"unicode/utf8"

	"catalogo-tienda/layout"
	"catalogo-tienda/theme"
)

// OpKind identifies a recorded draw call
type OpKind string

const (
	OpPage   OpKind = "page"
	OpFill   OpKind = "fill"
	OpStroke OpKind = "stroke"
	OpLine   OpKind = "line"
	OpText   OpKind = "text"
	OpImage  OpKind = "image"
)

// Op is one recorded draw call. Page is the 1-based page it was drawn on.
type Op struct {
	Kind  OpKind
	Page  int
	Rect  layout.Rect
	Text  string
	Style TextStyle
	Color theme.Color
	Key   string
}

// Recorder is a Canvas that keeps every draw call in memory. Text width
// is approximated from the rune count and font size.
type Recorder struct {
	Ops   []Op
	pages int
}

// NewRecorder returns an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(op Op) {
	op.Page = r.pages
	r.Ops = append(r.Ops, op)
}

// AddPage implements Canvas
func (r *Recorder) AddPage(widthMM, heightMM float64) {
	r.pages++
	r.add(Op{Kind: OpPage, Rect: layout.Rect{W: widthMM, H: heightMM}})
}

// FillRect implements Canvas
func (r *Recorder) FillRect(rect layout.Rect, c theme.Color) {
	r.add(Op{Kind: OpFill, Rect: rect, Color: c})
}

// StrokeRect implements Canvas
func (r *Recorder) StrokeRect(rect layout.Rect, c theme.Color, _ float64) {
	r.add(Op{Kind: OpStroke, Rect: rect, Color: c})
}

// Line implements Canvas
func (r *Recorder) Line(x1, y1, x2, y2 float64, c theme.Color, _ float64) {
	r.add(Op{Kind: OpLine, Rect: layout.Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}, Color: c})
}

// Text implements Canvas
func (r *Recorder) Text(rect layout.Rect, s string, style TextStyle) {
	r.add(Op{Kind: OpText, Rect: rect, Text: s, Style: style, Color: style.Color})
}

// MeasureText implements Canvas
func (r *Recorder) MeasureText(s string, style TextStyle) float64 {
	return float64(utf8.RuneCountInString(s)) * style.SizePt * 0.18
}

// Image implements Canvas
func (r *Recorder) Image(key string, _ []byte, rect layout.Rect) {
	r.add(Op{Kind: OpImage, Rect: rect, Key: key})
}

// Err implements Canvas
func (r *Recorder) Err() error { return nil }

// Finish writes one line per recorded call
func (r *Recorder) Finish(w io.Writer) error {
	for _, op := range r.Ops {
		if _, err := fmt.Fprintf(w, "%d %s %q %s %+v\n", op.Page, op.Kind, op.Text, op.Key, op.Rect); err != nil {
			return err
		}
	}
	return nil
}

// PageCount returns the number of pages started
func (r *Recorder) PageCount() int {
	return r.pages
}

// Texts returns the text drawn on a page, in draw order
func (r *Recorder) Texts(page int) []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpText && op.Page == page {
			out = append(out, op.Text)
		}
	}
	return out
}

// Find returns the first text op with the given content
func (r *Recorder) Find(text string) (Op, bool) {
	for _, op := range r.Ops {
		if op.Kind == OpText && op.Text == text {
			return op, true
		}
	}
	return Op{}, false
}
