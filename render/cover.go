package render

import (
	"strings"

	"catalogo-tienda/layout"
	"catalogo-tienda/theme"
	"catalogo-tienda/utils"
)

const dateLayout = "02/01/2006"

// coverLayouts maps a theme's cover variant to its drawing routine. New
// variants only need an entry here.
var coverLayouts = map[theme.CoverVariant]func(*Renderer, layout.Rect){
	theme.CoverClassic: (*Renderer).coverClassic,
	theme.CoverSplit:   (*Renderer).coverSplit,
	theme.CoverBanner:  (*Renderer).coverBanner,
	theme.CoverBold:    (*Renderer).coverBold,
}

func (r *Renderer) drawCover(page layout.Rect) {
	draw, ok := coverLayouts[r.opts.Theme.Cover]
	if !ok {
		draw = (*Renderer).coverClassic
	}
	draw(r, page)
}

// validityLine describes the validity range, or "" when none is set
func (r *Renderer) validityLine() string {
	s := r.opts.Settings
	switch {
	case s.ValidFrom != nil && s.ValidUntil != nil:
		return "Valid " + s.ValidFrom.Format(dateLayout) + " - " + s.ValidUntil.Format(dateLayout)
	case s.ValidFrom != nil:
		return "Valid from " + s.ValidFrom.Format(dateLayout)
	case s.ValidUntil != nil:
		return "Valid until " + s.ValidUntil.Format(dateLayout)
	default:
		return ""
	}
}

// contactLine joins the contact fields shown on the cover. Settings win
// over the store record.
func (r *Renderer) contactLine() string {
	var parts []string
	if c := r.opts.Settings.Contact; !c.IsZero() {
		for _, v := range []string{c.Phone, c.Email, c.Website} {
			if v != "" {
				parts = append(parts, v)
			}
		}
		if c.WhatsApp != "" {
			parts = append(parts, "WhatsApp "+c.WhatsApp)
		}
	} else if st := r.opts.Store; st != nil {
		for _, v := range []string{st.Phone, st.Email} {
			if v != "" {
				parts = append(parts, v)
			}
		}
	}
	return strings.Join(parts, "  |  ")
}

// coverLogo draws the store logo letterboxed into slot, if there is one
func (r *Renderer) coverLogo(slot layout.Rect) {
	if logo, ok := r.opts.Images.Image(LogoKey); ok {
		r.canvas.Image(LogoKey, logo.Data, slot.Fit(float64(logo.Width), float64(logo.Height)))
	}
}

// coverText stacks title, subtitle and validity from top inside area
func (r *Renderer) coverText(area layout.Rect, c theme.Color, align Align) {
	s := r.opts.Settings
	y := area.Y
	titleStyle := TextStyle{SizePt: 28, Bold: true, Color: c, Align: align}
	for _, l := range utils.Wrap(s.Title, area.W, 2, r.measure(titleStyle)) {
		r.canvas.Text(layout.Rect{X: area.X, Y: y, W: area.W, H: 13}, l, titleStyle)
		y += 13
	}
	if s.Subtitle != "" {
		style := TextStyle{SizePt: 14, Color: c, Align: align}
		for _, l := range utils.Wrap(s.Subtitle, area.W, 2, r.measure(style)) {
			r.canvas.Text(layout.Rect{X: area.X, Y: y, W: area.W, H: 8}, l, style)
			y += 8
		}
	}
	if v := r.validityLine(); v != "" {
		y += 4
		r.canvas.Text(layout.Rect{X: area.X, Y: y, W: area.W, H: 7}, v, TextStyle{SizePt: 11, Bold: true, Color: c, Align: align})
	}
}

func (r *Renderer) coverFooter(page layout.Rect, c theme.Color) {
	m := r.opts.Geometry.Margin
	area := layout.Rect{X: page.X + m, Y: page.Bottom() - m - 14, W: page.W - 2*m, H: 7}
	if st := r.opts.Store; st != nil && st.Name != "" {
		r.canvas.Text(area, st.Name, TextStyle{SizePt: 12, Bold: true, Color: c, Align: AlignCenter})
	}
	area.Y += 7
	if line := r.contactLine(); line != "" {
		r.canvas.Text(area, line, TextStyle{SizePt: 9, Color: c, Align: AlignCenter})
	}
}

// coverClassic: primary band across the top with the logo above the title
func (r *Renderer) coverClassic(page layout.Rect) {
	t := r.opts.Theme
	m := r.opts.Geometry.Margin
	band := layout.Rect{X: page.X, Y: page.Y, W: page.W, H: page.H * 0.45}
	r.canvas.FillRect(band, t.Primary)
	r.canvas.FillRect(layout.Rect{X: page.X, Y: band.Bottom(), W: page.W, H: 3}, t.Accent)

	r.coverLogo(layout.Rect{X: page.X + page.W/2 - 20, Y: page.Y + m + 6, W: 40, H: 24})
	top := max(page.Y+m+34, band.Bottom()-55)
	r.coverText(layout.Rect{X: page.X + m, Y: top, W: page.W - 2*m}, white, AlignCenter)
	r.coverFooter(page, t.Text)
}

// coverSplit: primary left half carrying the text, logo on the right
func (r *Renderer) coverSplit(page layout.Rect) {
	t := r.opts.Theme
	m := r.opts.Geometry.Margin
	left := layout.Rect{X: page.X, Y: page.Y, W: page.W / 2, H: page.H}
	r.canvas.FillRect(left, t.Primary)
	r.canvas.FillRect(layout.Rect{X: left.Right(), Y: page.Y, W: 2, H: page.H}, t.Accent)

	r.coverText(layout.Rect{X: left.X + m, Y: page.Y + page.H*0.3, W: left.W - 2*m}, white, AlignLeft)
	right := layout.Rect{X: left.Right() + m, Y: page.Y, W: page.W/2 - 2*m, H: page.H}
	r.coverLogo(layout.Rect{X: right.X, Y: page.Y + page.H*0.3, W: right.W, H: 50})
	r.coverFooter(layout.Rect{X: right.X - m, Y: page.Y, W: right.W + 2*m, H: page.H}, t.Text)
}

// coverBanner: plain page crossed by a secondary band holding the title
func (r *Renderer) coverBanner(page layout.Rect) {
	t := r.opts.Theme
	m := r.opts.Geometry.Margin
	band := layout.Rect{X: page.X, Y: page.Y + page.H*0.35, W: page.W, H: page.H * 0.25}
	r.canvas.FillRect(band, t.Secondary)
	r.canvas.Line(page.X, band.Y, page.Right(), band.Y, t.Accent, 1)
	r.canvas.Line(page.X, band.Bottom(), page.Right(), band.Bottom(), t.Accent, 1)

	r.coverLogo(layout.Rect{X: page.X + page.W/2 - 25, Y: band.Y - 40, W: 50, H: 30})
	r.coverText(layout.Rect{X: page.X + m, Y: band.Y + 8, W: page.W - 2*m}, white, AlignCenter)
	r.coverFooter(page, t.Text)
}

// coverBold: full-bleed accent with a framed title
func (r *Renderer) coverBold(page layout.Rect) {
	t := r.opts.Theme
	m := r.opts.Geometry.Margin
	r.canvas.FillRect(page, t.Accent)
	frame := page.Inset(m)
	r.canvas.StrokeRect(frame, white, 1.2)

	r.coverLogo(layout.Rect{X: page.X + page.W/2 - 25, Y: frame.Y + 12, W: 50, H: 30})
	r.coverText(layout.Rect{X: frame.X + m, Y: frame.Y + frame.H*0.35, W: frame.W - 2*m}, white, AlignCenter)
	r.coverFooter(frame, white)
}
