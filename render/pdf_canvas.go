package render

import (
	"bytes"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"catalogo-tienda/layout"
	"catalogo-tienda/theme"
)

const fontFamily = "Helvetica"

// PDFCanvas draws through gofpdf using the core Helvetica font. Text is
// translated to cp1252 so Spanish accents and the ellipsis survive.
type PDFCanvas struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	images map[string]bool
}

// NewPDFCanvas creates an empty document. Pages are added with AddPage.
func NewPDFCanvas(title string, created time.Time) *PDFCanvas {
	pdf := newFpdf()
	pdf.SetTitle(title, true)
	pdf.SetCreator("catalogo-tienda", false)
	if !created.IsZero() {
		pdf.SetCreationDate(created)
	}
	return &PDFCanvas{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		images: make(map[string]bool),
	}
}

func newFpdf() *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: 210, Ht: 297},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetCellMargin(0)
	pdf.SetAutoPageBreak(false, 0)
	return pdf
}

func fontStyle(style TextStyle) string {
	if style.Bold {
		return "B"
	}
	return ""
}

func alignStr(a Align) string {
	switch a {
	case AlignCenter:
		return "CM"
	case AlignRight:
		return "RM"
	default:
		return "LM"
	}
}

// AddPage implements Canvas
func (c *PDFCanvas) AddPage(widthMM, heightMM float64) {
	c.pdf.AddPageFormat("P", gofpdf.SizeType{Wd: widthMM, Ht: heightMM})
}

// FillRect implements Canvas
func (c *PDFCanvas) FillRect(r layout.Rect, col theme.Color) {
	c.pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
	c.pdf.Rect(r.X, r.Y, r.W, r.H, "F")
}

// StrokeRect implements Canvas
func (c *PDFCanvas) StrokeRect(r layout.Rect, col theme.Color, lineWidth float64) {
	c.pdf.SetDrawColor(int(col.R), int(col.G), int(col.B))
	c.pdf.SetLineWidth(lineWidth)
	c.pdf.Rect(r.X, r.Y, r.W, r.H, "D")
}

// Line implements Canvas
func (c *PDFCanvas) Line(x1, y1, x2, y2 float64, col theme.Color, lineWidth float64) {
	c.pdf.SetDrawColor(int(col.R), int(col.G), int(col.B))
	c.pdf.SetLineWidth(lineWidth)
	c.pdf.Line(x1, y1, x2, y2)
}

// Text implements Canvas
func (c *PDFCanvas) Text(r layout.Rect, s string, style TextStyle) {
	c.pdf.SetFont(fontFamily, fontStyle(style), style.SizePt)
	c.pdf.SetTextColor(int(style.Color.R), int(style.Color.G), int(style.Color.B))
	c.pdf.SetXY(r.X, r.Y)
	c.pdf.CellFormat(r.W, r.H, c.tr(s), "", 0, alignStr(style.Align), false, 0, "")
}

// MeasureText implements Canvas
func (c *PDFCanvas) MeasureText(s string, style TextStyle) float64 {
	c.pdf.SetFont(fontFamily, fontStyle(style), style.SizePt)
	return c.pdf.GetStringWidth(c.tr(s))
}

// Image implements Canvas. Each key is embedded once and reused.
func (c *PDFCanvas) Image(key string, jpegData []byte, r layout.Rect) {
	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	if !c.images[key] {
		c.pdf.RegisterImageOptionsReader(key, opts, bytes.NewReader(jpegData))
		c.images[key] = true
	}
	c.pdf.ImageOptions(key, r.X, r.Y, r.W, r.H, false, opts, 0, "")
}

// Err implements Canvas
func (c *PDFCanvas) Err() error {
	return c.pdf.Error()
}

// Finish implements Canvas
func (c *PDFCanvas) Finish(w io.Writer) error {
	if c.pdf.Err() {
		return c.pdf.Error()
	}
	return c.pdf.Output(w)
}

// pdfMeasurer measures text with gofpdf's core font metrics without
// producing a document. HTML output uses it so both formats wrap alike.
type pdfMeasurer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newPDFMeasurer() *pdfMeasurer {
	pdf := newFpdf()
	return &pdfMeasurer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (m *pdfMeasurer) measure(s string, style TextStyle) float64 {
	m.pdf.SetFont(fontFamily, fontStyle(style), style.SizePt)
	return m.pdf.GetStringWidth(m.tr(s))
}
