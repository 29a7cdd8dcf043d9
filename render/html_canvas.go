package render

import (
	"encoding/base64"
	"fmt"
	"html"
	"html/template"
	"io"
	"strings"

	"catalogo-tienda/layout"
	"catalogo-tienda/theme"
)

var documentTemplate = template.Must(template.New("catalog").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
@page { margin: 0; }
body { margin: 0; background: #d9d9d9; font-family: Helvetica, Arial, sans-serif; }
.page { position: relative; overflow: hidden; background: #ffffff; margin: 0 auto 8mm auto; }
.page > div, .page > img, .page > span { position: absolute; box-sizing: border-box; }
.page > span { white-space: nowrap; overflow: hidden; }
@media print { body { background: none; } .page { margin: 0; page-break-after: always; } }
</style>
</head>
<body>
{{range .Pages}}<div class="page" style="width: {{.Width}}mm; height: {{.Height}}mm">
{{.Body}}</div>
{{end}}</body>
</html>
`))

type htmlPage struct {
	Width  string
	Height string
	Body   template.HTML
}

// HTMLCanvas renders every page as an absolutely positioned <div class="page">
// with images inlined as data URIs. Text metrics come from the PDF core font
// so line breaks match the PDF output.
type HTMLCanvas struct {
	title   string
	pages   []htmlPage
	current *strings.Builder
	measure *pdfMeasurer
	err     error
}

// NewHTMLCanvas creates an empty HTML document
func NewHTMLCanvas(title string) *HTMLCanvas {
	return &HTMLCanvas{title: title, measure: newPDFMeasurer()}
}

func mm(v float64) string {
	return fmt.Sprintf("%.2fmm", v)
}

func box(r layout.Rect) string {
	return fmt.Sprintf("left: %s; top: %s; width: %s; height: %s", mm(r.X), mm(r.Y), mm(r.W), mm(r.H))
}

func (c *HTMLCanvas) flush() {
	if c.current == nil {
		return
	}
	c.pages[len(c.pages)-1].Body = template.HTML(c.current.String())
}

func (c *HTMLCanvas) write(format string, args ...any) {
	if c.current == nil {
		if c.err == nil {
			c.err = fmt.Errorf("html canvas: drawing before the first page")
		}
		return
	}
	fmt.Fprintf(c.current, format, args...)
	c.current.WriteByte('\n')
}

// AddPage implements Canvas
func (c *HTMLCanvas) AddPage(widthMM, heightMM float64) {
	c.flush()
	c.pages = append(c.pages, htmlPage{
		Width:  fmt.Sprintf("%.2f", widthMM),
		Height: fmt.Sprintf("%.2f", heightMM),
	})
	c.current = &strings.Builder{}
}

// FillRect implements Canvas
func (c *HTMLCanvas) FillRect(r layout.Rect, col theme.Color) {
	c.write(`<div style="%s; background: %s"></div>`, box(r), col)
}

// StrokeRect implements Canvas
func (c *HTMLCanvas) StrokeRect(r layout.Rect, col theme.Color, lineWidth float64) {
	c.write(`<div style="%s; border: %s solid %s"></div>`, box(r), mm(lineWidth), col)
}

// Line implements Canvas. Only horizontal and vertical lines are drawn.
func (c *HTMLCanvas) Line(x1, y1, x2, y2 float64, col theme.Color, lineWidth float64) {
	r := layout.Rect{X: min(x1, x2), Y: min(y1, y2), W: max(x1, x2) - min(x1, x2), H: max(y1, y2) - min(y1, y2)}
	if r.H == 0 {
		r.Y -= lineWidth / 2
		r.H = lineWidth
	} else if r.W == 0 {
		r.X -= lineWidth / 2
		r.W = lineWidth
	} else {
		return
	}
	c.FillRect(r, col)
}

// Text implements Canvas
func (c *HTMLCanvas) Text(r layout.Rect, s string, style TextStyle) {
	weight := "normal"
	if style.Bold {
		weight = "bold"
	}
	align := "left"
	switch style.Align {
	case AlignCenter:
		align = "center"
	case AlignRight:
		align = "right"
	}
	c.write(`<span style="%s; line-height: %s; font-size: %.1fpt; font-weight: %s; color: %s; text-align: %s">%s</span>`,
		box(r), mm(r.H), style.SizePt, weight, style.Color, align, html.EscapeString(s))
}

// MeasureText implements Canvas
func (c *HTMLCanvas) MeasureText(s string, style TextStyle) float64 {
	return c.measure.measure(s, style)
}

// Image implements Canvas
func (c *HTMLCanvas) Image(key string, jpegData []byte, r layout.Rect) {
	c.write(`<img alt="%s" style="%s" src="data:image/jpeg;base64,%s">`,
		html.EscapeString(key), box(r), base64.StdEncoding.EncodeToString(jpegData))
}

// Err implements Canvas
func (c *HTMLCanvas) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.measure.pdf.Error()
}

// PageCount returns the number of pages drawn so far
func (c *HTMLCanvas) PageCount() int {
	return len(c.pages)
}

// Finish implements Canvas
func (c *HTMLCanvas) Finish(w io.Writer) error {
	if err := c.Err(); err != nil {
		return err
	}
	c.flush()
	return documentTemplate.Execute(w, struct {
		Title string
		Pages []htmlPage
	}{Title: c.title, Pages: c.pages})
}
