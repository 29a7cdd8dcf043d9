package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"catalogo-tienda/layout"
	"catalogo-tienda/logx"
	"catalogo-tienda/models"
	"catalogo-tienda/render"
	"catalogo-tienda/theme"
)

// Content types of the serialized catalog
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeHTML = "text/html; charset=utf-8"
)

// CatalogBuilder builds a catalog document from products, settings and the
// store record
type CatalogBuilder interface {
	Build(ctx context.Context, products []models.Product, settings models.CatalogSettings, store *models.StoreInfo) (*models.CatalogDocument, error)
}

// CatalogService handles catalog generation operations
type CatalogService struct {
	preloader *ImagePreloader
	grouper   *layout.Grouper
	now       func() time.Time
}

// CatalogOption configures a CatalogService
type CatalogOption func(*CatalogService)

// WithClock overrides the clock used for the contact page and file names
func WithClock(now func() time.Time) CatalogOption {
	return func(s *CatalogService) {
		s.now = now
	}
}

// WithLocale sets the collation locale used to order categories and names
func WithLocale(tag language.Tag) CatalogOption {
	return func(s *CatalogService) {
		s.grouper = layout.NewGrouper(tag)
	}
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(preloader *ImagePreloader, opts ...CatalogOption) *CatalogService {
	s := &CatalogService{
		preloader: preloader,
		grouper:   layout.NewGrouper(language.Spanish),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build runs the whole pipeline: validate, preload images, group,
// paginate, render and serialize. Image failures only degrade cards to
// placeholders; any other failure returns an error and no document.
func (s *CatalogService) Build(ctx context.Context, products []models.Product, settings models.CatalogSettings, store *models.StoreInfo) (*models.CatalogDocument, error) {
	if len(products) == 0 {
		return nil, models.ErrNoProducts
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	th, known := theme.Lookup(settings.CatalogType)
	if !known {
		logx.Debug().Str("catalogType", settings.CatalogType).Str("theme", th.Key).Msg("Unknown catalog type, using default theme")
	}
	geometry, err := layout.NewGeometry(settings, th.CardHeightMM)
	if err != nil {
		return nil, err
	}
	if err := validateProducts(products); err != nil {
		return nil, err
	}

	start := s.now()
	cache := s.preloader.Preload(ctx, products, StoreImageTasks(store)...)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("catalog build cancelled: %w", err)
	}

	groups := s.grouper.Group(products, settings)
	events, err := layout.Paginate(groups, geometry.Columns, geometry.Rows)
	if err != nil {
		return nil, err
	}

	format := settings.Format
	if format == "" {
		format = models.FormatPDF
	}
	var canvas render.Canvas
	switch format {
	case models.FormatHTML:
		canvas = render.NewHTMLCanvas(settings.Title)
	default:
		canvas = render.NewPDFCanvas(settings.Title, start)
	}

	renderer := render.New(canvas, render.Options{
		Theme:    th,
		Settings: settings,
		Store:    store,
		Images:   cache,
		Geometry: geometry,
		Now:      start,
	})
	if err := renderer.RenderCover(); err != nil {
		return nil, err
	}
	if err := renderer.RenderEvents(events); err != nil {
		return nil, err
	}
	if err := renderer.RenderContact(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("catalog build cancelled: %w", err)
	}

	var buf bytes.Buffer
	if err := canvas.Finish(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrSerialization, err)
	}

	doc := &models.CatalogDocument{
		Data:      buf.Bytes(),
		Filename:  catalogFilename(settings.Title, format, start),
		PageCount: renderer.Pages(),
	}
	if format == models.FormatHTML {
		doc.ContentType = ContentTypeHTML
	} else {
		doc.ContentType = ContentTypePDF
	}

	logx.Info().
		Int("products", len(products)).
		Int("categories", len(groups)).
		Int("pages", doc.PageCount).
		Str("theme", th.Key).
		Str("format", string(format)).
		Int("bytes", len(doc.Data)).
		Dur("elapsed", s.now().Sub(start)).
		Msg("📄 Catalog generated")
	return doc, nil
}

// validateProducts rejects products without an id, with a negative price
// or with a repeated id. A bad discount is only logged; the card then shows
// the plain price.
func validateProducts(products []models.Product) error {
	seen := make(map[string]bool, len(products))
	for _, p := range products {
		if err := p.Validate(); err != nil {
			if p.ID == "" || p.Price.IsNegative() {
				return err
			}
			logx.Warn().Err(err).Str("product", p.ID).Msg("⚠️  Ignoring discount")
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate product id %s", models.ErrInvalidProduct, p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// catalogFilename builds e.g. "catalogo-ofertas-2026-03-01.pdf"
func catalogFilename(title string, format models.OutputFormat, at time.Time) string {
	// transform.Chain keeps state, so one per call
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(stripMarks, strings.ToLower(title))
	if err != nil {
		plain = strings.ToLower(title)
	}
	var b strings.Builder
	dash := false
	for _, r := range plain {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "catalogo"
	}
	return fmt.Sprintf("%s-%s.%s", slug, at.Format("2006-01-02"), format)
}
