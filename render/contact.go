package render

import (
	"catalogo-tienda/layout"
)

const timestampLayout = "02/01/2006 15:04"

// drawContact prints the store record, the contact block and the QR code
// on the closing page.
func (r *Renderer) drawContact(area layout.Rect) {
	t := r.opts.Theme
	header := layout.Rect{X: area.X, Y: area.Y, W: area.W, H: 14}
	r.canvas.FillRect(header, t.CategoryBackground)
	r.canvas.Text(header.Inset(3), "Contact", TextStyle{SizePt: 16, Bold: true, Color: t.CategoryText})

	textArea := layout.Rect{X: area.X, Y: header.Bottom() + 10, W: area.W}
	if qr, ok := r.opts.Images.Image(QRKey); ok {
		slot := layout.Rect{X: area.Right() - 50, Y: textArea.Y, W: 50, H: 50}
		r.canvas.Image(QRKey, qr.Data, slot.Fit(float64(qr.Width), float64(qr.Height)))
		textArea.W -= 56
	}

	y := textArea.Y
	row := func(text string, style TextStyle, h float64) {
		if text == "" {
			return
		}
		r.canvas.Text(layout.Rect{X: textArea.X, Y: y, W: textArea.W, H: h}, text, style)
		y += h
	}

	body := TextStyle{SizePt: 11, Color: t.Text}
	if st := r.opts.Store; st != nil {
		row(st.Name, TextStyle{SizePt: 18, Bold: true, Color: t.Primary}, 10)
		row(st.Address, body, 7)
		row(labeled("Phone", st.Phone), body, 7)
		row(labeled("Email", st.Email), body, 7)
		row(labeled("Hours", st.BusinessHours), body, 7)
	}
	if c := r.opts.Settings.Contact; !c.IsZero() {
		y += 4
		row(labeled("Phone", c.Phone), body, 7)
		row(labeled("Email", c.Email), body, 7)
		row(labeled("Web", c.Website), body, 7)
		row(labeled("WhatsApp", c.WhatsApp), body, 7)
	}

	footer := r.opts.Geometry.FooterRect()
	r.canvas.Text(footer, "Generated "+r.opts.Now.Format(timestampLayout),
		TextStyle{SizePt: 8, Color: t.Muted, Align: AlignCenter})
}

func labeled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}
