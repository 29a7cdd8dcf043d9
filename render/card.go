package render

import (
	"strings"

	"catalogo-tienda/layout"
	"catalogo-tienda/models"
	"catalogo-tienda/utils"
)

// Card text limits
const (
	TitleMaxChars       = 60
	DescriptionMaxChars = 120
	maxTextLines        = 2

	cardPadding     = 2.0
	titleLineMM     = 3.6
	priceLineMM     = 5.5
	smallLineMM     = 3.0
	badgeHeightMM   = 4.5
	placeholderText = "image unavailable"
)

func badgeLabel(p models.Product) (string, bool) {
	switch {
	case p.Badge == models.BadgeFeatured:
		return "FEATURED", true
	case p.Badge == models.BadgeNew:
		return "NEW", false
	case p.Featured:
		return "FEATURED", true
	default:
		return "", false
	}
}

// drawCard draws one product card. Draw order matters: the badge comes
// after the image so it stays on top.
func (r *Renderer) drawCard(rect layout.Rect, p models.Product) {
	t := r.opts.Theme
	s := r.opts.Settings

	r.canvas.FillRect(rect, white)
	r.canvas.StrokeRect(rect, t.Muted, 0.2)

	imageRect := layout.Rect{X: rect.X, Y: rect.Y, W: rect.W, H: rect.H * layout.ImageRegionRatio}.Inset(cardPadding)
	if img, ok := r.opts.Images.Image(p.ID); ok {
		r.canvas.Image(p.ID, img.Data, imageRect.Fit(float64(img.Width), float64(img.Height)))
	} else {
		r.canvas.FillRect(imageRect, placeholder)
		r.canvas.Text(imageRect, placeholderText, TextStyle{SizePt: 7, Color: t.Muted, Align: AlignCenter})
	}

	if label, featured := badgeLabel(p); label != "" {
		style := TextStyle{SizePt: 6.5, Bold: true, Color: white, Align: AlignCenter}
		w := r.canvas.MeasureText(label, style) + 3
		chip := layout.Rect{X: rect.Right() - cardPadding - w, Y: rect.Y + cardPadding, W: w, H: badgeHeightMM}
		r.canvas.FillRect(chip, t.BadgeColor(featured))
		r.canvas.Text(chip, label, style)
	}

	inner := layout.Rect{
		X: rect.X + cardPadding,
		Y: rect.Y + rect.H*layout.ImageRegionRatio,
		W: rect.W - 2*cardPadding,
	}
	bottom := rect.Bottom() - cardPadding
	y := inner.Y

	line := func(h float64) (layout.Rect, bool) {
		if y+h > bottom+0.001 {
			return layout.Rect{}, false
		}
		lr := layout.Rect{X: inner.X, Y: y, W: inner.W, H: h}
		y += h
		return lr, true
	}

	titleStyle := TextStyle{SizePt: 8, Bold: true, Color: t.Text}
	for _, l := range utils.Wrap(utils.Truncate(p.Name, TitleMaxChars), inner.W, maxTextLines, r.measure(titleStyle)) {
		if lr, ok := line(titleLineMM); ok {
			r.canvas.Text(lr, l, titleStyle)
		}
	}

	if s.ShowPrices {
		if lr, ok := line(priceLineMM); ok {
			r.drawPrice(lr, p)
		}
	}

	smallStyle := TextStyle{SizePt: 6.5, Color: t.Muted}
	var codes []string
	if s.ShowSKU && p.SKU != "" {
		codes = append(codes, "SKU "+p.SKU)
	}
	if s.ShowBarcode && p.Barcode != "" {
		codes = append(codes, p.Barcode)
	}
	if len(codes) > 0 {
		text := strings.Join(codes, " | ")
		if lines := utils.Wrap(text, inner.W, 1, r.measure(smallStyle)); len(lines) > 0 {
			if lr, ok := line(smallLineMM); ok {
				r.canvas.Text(lr, lines[0], smallStyle)
			}
		}
	}

	if s.IncludeDescription && p.Description != "" {
		for _, l := range utils.Wrap(utils.Truncate(p.Description, DescriptionMaxChars), inner.W, maxTextLines, r.measure(smallStyle)) {
			if lr, ok := line(smallLineMM); ok {
				r.canvas.Text(lr, l, smallStyle)
			}
		}
	}
}

// drawPrice prints either the plain price or the struck original next to
// the promotional price.
func (r *Renderer) drawPrice(lr layout.Rect, p models.Product) {
	t := r.opts.Theme
	s := r.opts.Settings
	symbol := s.CurrencySymbol()

	if s.ShowPromotionalPrice && p.HasValidDiscount() {
		origStyle := TextStyle{SizePt: 7, Color: t.Muted}
		orig := utils.FormatPrice(p.Price, symbol)
		w := r.canvas.MeasureText(orig, origStyle)
		origRect := layout.Rect{X: lr.X, Y: lr.Y, W: w, H: lr.H}
		r.canvas.Text(origRect, orig, origStyle)
		mid := lr.Y + lr.H/2
		r.canvas.Line(origRect.X, mid, origRect.Right(), mid, t.Muted, 0.25)

		discRect := layout.Rect{X: origRect.Right() + 2, Y: lr.Y, W: max(0, lr.W-w-2), H: lr.H}
		r.canvas.Text(discRect, utils.FormatPrice(*p.DiscountPrice, symbol), TextStyle{SizePt: 10, Bold: true, Color: t.Accent})
		return
	}

	r.canvas.FillRect(lr, t.PriceBackground)
	r.canvas.Text(lr.Inset(0.5), utils.FormatPrice(p.Price, symbol), TextStyle{SizePt: 10, Bold: true, Color: t.PriceText})
}
