package layout

import (
	"fmt"
	"math"

	"catalogo-tienda/models"
)

// Fixed page furniture in millimetres
const (
	MarginMM          = 10.0
	GutterMM          = 4.0
	RunningHeaderMM   = 8.0
	CategoryBarMM     = 10.0
	CategoryBarGapMM  = 4.0
	FooterMM          = 8.0
	ImageRegionRatio  = 0.55
	minCardHeightMM   = 30.0
	geometryTolerance = 0.001
)

// Rect is an axis-aligned box in millimetres, origin at the page top-left
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the right edge
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Within reports whether r lies inside outer, allowing for float rounding
func (r Rect) Within(outer Rect) bool {
	return r.W >= 0 && r.H >= 0 &&
		r.X >= outer.X-geometryTolerance && r.Y >= outer.Y-geometryTolerance &&
		r.Right() <= outer.Right()+geometryTolerance && r.Bottom() <= outer.Bottom()+geometryTolerance
}

// Inset shrinks the rectangle by d on every side
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: math.Max(0, r.W-2*d), H: math.Max(0, r.H-2*d)}
}

// Fit returns the largest rectangle with the given aspect ratio centered
// inside r (letterboxing). Non-positive source sizes return r unchanged.
func (r Rect) Fit(srcW, srcH float64) Rect {
	if srcW <= 0 || srcH <= 0 || r.W <= 0 || r.H <= 0 {
		return r
	}
	scale := math.Min(r.W/srcW, r.H/srcH)
	w, h := srcW*scale, srcH*scale
	return Rect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-h)/2, W: w, H: h}
}

// Geometry is the derived grid for one catalog build
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	Gutter     float64
	Columns    int
	Rows       int
	CardWidth  float64
	CardHeight float64
}

// NewGeometry derives the grid from the page size, column count and the
// theme's card height. Rows are whatever fits below the running header and
// the category bar, above the footer.
func NewGeometry(settings models.CatalogSettings, cardHeight float64) (Geometry, error) {
	w, h, err := settings.PageSize.Dimensions(settings.Orientation)
	if err != nil {
		return Geometry{}, err
	}
	if settings.Columns <= 0 {
		return Geometry{}, fmt.Errorf("%w: columns must be positive, got %d", models.ErrInvalidSettings, settings.Columns)
	}
	if cardHeight < minCardHeightMM {
		cardHeight = minCardHeightMM
	}
	g := Geometry{
		PageWidth:  w,
		PageHeight: h,
		Margin:     MarginMM,
		Gutter:     GutterMM,
		Columns:    settings.ClampedColumns(),
		CardHeight: cardHeight,
	}
	g.CardWidth = (g.ContentWidth() - float64(g.Columns-1)*g.Gutter) / float64(g.Columns)
	g.Rows = int(math.Floor((g.gridHeight() + g.Gutter) / (g.CardHeight + g.Gutter)))
	if g.CardWidth <= 0 || g.Rows <= 0 {
		return Geometry{}, fmt.Errorf("%w: %.0fx%.0fmm page cannot hold a %d-column grid of %.0fmm cards",
			models.ErrInvalidSettings, w, h, g.Columns, cardHeight)
	}
	return g, nil
}

// ContentWidth is the page width inside the margins
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - 2*g.Margin
}

// Capacity is the number of product cells on one page
func (g Geometry) Capacity() int {
	return g.Columns * g.Rows
}

// PageRect covers the whole page
func (g Geometry) PageRect() Rect {
	return Rect{W: g.PageWidth, H: g.PageHeight}
}

// ContentRect is the area inside the margins
func (g Geometry) ContentRect() Rect {
	return Rect{X: g.Margin, Y: g.Margin, W: g.ContentWidth(), H: g.PageHeight - 2*g.Margin}
}

// RunningHeaderRect holds the catalog title and optional logo on grid pages
func (g Geometry) RunningHeaderRect() Rect {
	return Rect{X: g.Margin, Y: g.Margin, W: g.ContentWidth(), H: RunningHeaderMM}
}

// CategoryBarRect is the category header band on grid pages
func (g Geometry) CategoryBarRect() Rect {
	return Rect{X: g.Margin, Y: g.Margin + RunningHeaderMM, W: g.ContentWidth(), H: CategoryBarMM}
}

// FooterRect holds the page number
func (g Geometry) FooterRect() Rect {
	return Rect{X: g.Margin, Y: g.PageHeight - g.Margin - FooterMM, W: g.ContentWidth(), H: FooterMM}
}

func (g Geometry) gridTop() float64 {
	return g.Margin + RunningHeaderMM + CategoryBarMM + CategoryBarGapMM
}

func (g Geometry) gridHeight() float64 {
	return g.PageHeight - 2*g.Margin - RunningHeaderMM - CategoryBarMM - CategoryBarGapMM - FooterMM
}

// CellRect returns the card box for a grid position
func (g Geometry) CellRect(row, col int) Rect {
	return Rect{
		X: g.Margin + float64(col)*(g.CardWidth+g.Gutter),
		Y: g.gridTop() + float64(row)*(g.CardHeight+g.Gutter),
		W: g.CardWidth,
		H: g.CardHeight,
	}
}
