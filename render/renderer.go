package render

import (
	"fmt"
	"iter"
	"strconv"
	"time"

	"catalogo-tienda/layout"
	"catalogo-tienda/models"
	"catalogo-tienda/theme"
	"catalogo-tienda/utils"
)

var (
	white       = theme.Color{R: 0xff, G: 0xff, B: 0xff}
	placeholder = theme.Color{R: 0xee, G: 0xee, B: 0xee}
)

// Options is everything a Renderer needs besides the canvas
type Options struct {
	Theme    theme.Theme
	Settings models.CatalogSettings
	Store    *models.StoreInfo
	Images   ImageSource
	Geometry layout.Geometry
	// Now is printed on the contact page
	Now time.Time
}

// Renderer turns pages into canvas draw calls with the active theme
type Renderer struct {
	canvas Canvas
	opts   Options
	pages  int
}

// New creates a renderer drawing onto canvas
func New(canvas Canvas, opts Options) *Renderer {
	if opts.Images == nil {
		opts.Images = NoImages{}
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	return &Renderer{canvas: canvas, opts: opts}
}

// Pages returns the number of pages drawn so far
func (r *Renderer) Pages() int {
	return r.pages
}

// HasContactPage reports whether there is anything to print on the closing page
func HasContactPage(settings models.CatalogSettings, store *models.StoreInfo) bool {
	return !store.IsZero() || !settings.Contact.IsZero()
}

// RenderCover draws the cover page
func (r *Renderer) RenderCover() error {
	return r.RenderPage(r.opts.Geometry.NewCoverPage())
}

// RenderEvents draws the grid pages of a pagination stream, numbering them
// after the pages already drawn.
func (r *Renderer) RenderEvents(events iter.Seq[layout.PageEvent]) error {
	for page := range r.opts.Geometry.Pages(events, r.pages+1) {
		if err := r.RenderPage(page); err != nil {
			return err
		}
	}
	return nil
}

// RenderContact draws the closing contact page when there is contact data
func (r *Renderer) RenderContact() error {
	if !HasContactPage(r.opts.Settings, r.opts.Store) {
		return nil
	}
	return r.RenderPage(r.opts.Geometry.NewContactPage(r.pages + 1))
}

// RenderPage draws one page. A block outside the page is a layout bug and
// fails the build.
func (r *Renderer) RenderPage(p layout.Page) error {
	bounds := layout.Rect{W: p.Width, H: p.Height}
	for _, b := range p.Blocks {
		if !b.Rect.Within(bounds) {
			return fmt.Errorf("%w: page %d block %d at %+v lies outside %.1fx%.1fmm",
				models.ErrRender, p.Number, b.Kind, b.Rect, p.Width, p.Height)
		}
	}

	r.canvas.AddPage(p.Width, p.Height)
	r.pages++
	r.canvas.FillRect(bounds, r.opts.Theme.Background)

	switch p.Kind {
	case layout.CoverPage:
		r.drawCover(p.Blocks[0].Rect)
	case layout.GridPage:
		r.drawRunningHeader()
		for _, b := range p.Blocks {
			switch b.Kind {
			case layout.BlockCategoryHeader:
				r.drawCategoryHeader(b)
			case layout.BlockProductCard:
				r.drawCard(b.Rect, b.Product)
			}
		}
		r.drawFooter(p.Number)
	case layout.ContactPage:
		r.drawContact(p.Blocks[0].Rect)
	}

	if err := r.canvas.Err(); err != nil {
		return fmt.Errorf("%w: page %d: %v", models.ErrRender, p.Number, err)
	}
	return nil
}

func (r *Renderer) measure(style TextStyle) utils.MeasureFunc {
	return func(s string) float64 { return r.canvas.MeasureText(s, style) }
}

func (r *Renderer) drawRunningHeader() {
	g := r.opts.Geometry
	t := r.opts.Theme
	rect := g.RunningHeaderRect()

	titleRect := rect
	if r.opts.Settings.LogoOnEveryPage {
		if logo, ok := r.opts.Images.Image(LogoKey); ok {
			slot := layout.Rect{X: rect.Right() - 30, Y: rect.Y, W: 30, H: rect.H - 1}
			r.canvas.Image(LogoKey, logo.Data, slot.Fit(float64(logo.Width), float64(logo.Height)))
			titleRect.W -= 32
		}
	}
	r.canvas.Text(titleRect, r.opts.Settings.Title, TextStyle{SizePt: 9, Bold: true, Color: t.Primary})
	r.canvas.Line(rect.X, rect.Bottom()-0.5, rect.Right(), rect.Bottom()-0.5, t.Muted, 0.2)
}

func (r *Renderer) drawCategoryHeader(b layout.Block) {
	if b.Label == "" {
		return
	}
	t := r.opts.Theme
	r.canvas.FillRect(b.Rect, t.CategoryBackground)

	label := b.Label
	if t.HeaderGlyph != "" {
		label = t.HeaderGlyph + " " + label
	}
	if b.Continuation {
		label += " (cont.)"
	}
	r.canvas.Text(b.Rect.Inset(3), label, TextStyle{SizePt: 12, Bold: true, Color: t.CategoryText})
}

func (r *Renderer) drawFooter(number int) {
	t := r.opts.Theme
	rect := r.opts.Geometry.FooterRect()
	if r.opts.Store != nil && r.opts.Store.Name != "" {
		r.canvas.Text(rect, r.opts.Store.Name, TextStyle{SizePt: 7, Color: t.Muted})
	}
	r.canvas.Text(rect, strconv.Itoa(number), TextStyle{SizePt: 8, Color: t.Muted, Align: AlignRight})
}
