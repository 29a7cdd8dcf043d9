package service

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo-tienda/models"
)

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func catalogProducts() []models.Product {
	discount := decimal.NewFromInt(8500)
	return []models.Product{
		{ID: "1", Name: "Collar de cuero", Price: decimal.NewFromInt(14000), DiscountPrice: &discount, Category: "Collares", Image: models.NewImageRef("https://img.co/1.png")},
		{ID: "2", Name: "Buzo polar", Price: decimal.NewFromInt(32000), Category: "Ropa", Badge: models.BadgeNew, Image: models.NewImageRef("https://img.co/2.png")},
		{ID: "3", Name: "Cama <grande>", Price: decimal.NewFromInt(90000), Image: models.NewImageRef("https://img.co/3.png")},
	}
}

func newTestService(fetcher ImageFetcher) *CatalogService {
	return NewCatalogService(NewImagePreloader(fetcher, NewImageOptimizer(0, 0)), WithClock(fixedClock))
}

func countingFailFetcher(calls *atomic.Int32) ImageFetcher {
	return fetchFunc(func(ctx context.Context, src string) ([]byte, error) {
		calls.Add(1)
		return nil, errors.New("host unreachable")
	})
}

func TestBuildEmptyProducts(t *testing.T) {
	var calls atomic.Int32
	doc, err := newTestService(countingFailFetcher(&calls)).Build(context.Background(), nil, models.DefaultCatalogSettings(), nil)

	assert.Nil(t, doc)
	assert.ErrorIs(t, err, models.ErrNoProducts)
	assert.ErrorIs(t, err, models.ErrInput)
	assert.Equal(t, int32(0), calls.Load(), "no image is fetched for an empty catalog")
}

func TestBuildWithUnreachableImages(t *testing.T) {
	var calls atomic.Int32
	settings := models.DefaultCatalogSettings()
	settings.GroupByCategory = false
	store := &models.StoreInfo{Name: "Tienda Luna", Phone: "3001234567"}

	doc, err := newTestService(countingFailFetcher(&calls)).Build(context.Background(), catalogProducts(), settings, store)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF")))
	assert.Equal(t, ContentTypePDF, doc.ContentType)
	assert.Equal(t, 3, doc.PageCount, "cover, one grid page and the contact page")
	assert.Equal(t, int32(3), calls.Load())
}

func TestBuildWithoutContactPage(t *testing.T) {
	var calls atomic.Int32
	settings := models.DefaultCatalogSettings()
	settings.GroupByCategory = false

	doc, err := newTestService(countingFailFetcher(&calls)).Build(context.Background(), catalogProducts(), settings, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.PageCount)
}

func TestBuildHTML(t *testing.T) {
	payload := pngBytes(t, 50, 50, color.NRGBA{R: 200, A: 255})
	fetcher := fetchFunc(func(ctx context.Context, src string) ([]byte, error) {
		return payload, nil
	})
	settings := models.DefaultCatalogSettings()
	settings.Title = "Ofertas de Marzo"
	settings.Format = models.FormatHTML

	doc, err := newTestService(fetcher).Build(context.Background(), catalogProducts(), settings, nil)
	require.NoError(t, err)

	out := string(doc.Data)
	assert.Equal(t, ContentTypeHTML, doc.ContentType)
	assert.Equal(t, "ofertas-de-marzo-2026-03-01.html", doc.Filename)
	assert.Equal(t, doc.PageCount, strings.Count(out, `<div class="page"`))
	assert.Contains(t, out, "data:image/jpeg;base64,")
	assert.Contains(t, out, "$8.500")
	assert.Contains(t, out, "$14.000")
	assert.Contains(t, out, "Cama &lt;grande&gt;")
	assert.NotContains(t, out, "Cama <grande>")
}

func TestBuildIsDeterministic(t *testing.T) {
	payload := pngBytes(t, 30, 20, color.NRGBA{G: 200, A: 255})
	fetcher := fetchFunc(func(ctx context.Context, src string) ([]byte, error) {
		return payload, nil
	})
	settings := models.DefaultCatalogSettings()
	settings.Format = models.FormatHTML
	store := &models.StoreInfo{Name: "Tienda Luna", Email: "hola@luna.co"}

	svc := newTestService(fetcher)
	first, err := svc.Build(context.Background(), catalogProducts(), settings, store)
	require.NoError(t, err)
	second, err := svc.Build(context.Background(), catalogProducts(), settings, store)
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, first.PageCount, second.PageCount)
}

func TestBuildRejectsInvalidInput(t *testing.T) {
	negative := catalogProducts()
	negative[1].Price = decimal.NewFromInt(-1)

	missingID := catalogProducts()
	missingID[0].ID = ""

	duplicate := catalogProducts()
	duplicate[2].ID = "1"

	badColumns := models.DefaultCatalogSettings()
	badColumns.Columns = 0

	badSize := models.DefaultCatalogSettings()
	badSize.PageSize = models.PageSize{Name: "B7"}

	tests := []struct {
		name     string
		products []models.Product
		settings models.CatalogSettings
		want     error
	}{
		{name: "negative price", products: negative, settings: models.DefaultCatalogSettings(), want: models.ErrInvalidProduct},
		{name: "missing id", products: missingID, settings: models.DefaultCatalogSettings(), want: models.ErrInvalidProduct},
		{name: "duplicate id", products: duplicate, settings: models.DefaultCatalogSettings(), want: models.ErrInvalidProduct},
		{name: "zero columns", products: catalogProducts(), settings: badColumns, want: models.ErrInvalidSettings},
		{name: "unknown page size", products: catalogProducts(), settings: badSize, want: models.ErrInvalidSettings},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			doc, err := newTestService(countingFailFetcher(&calls)).Build(context.Background(), tt.products, tt.settings, nil)
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, models.ErrInput)
			assert.Equal(t, int32(0), calls.Load())
		})
	}
}

func TestBuildIgnoresInvalidDiscount(t *testing.T) {
	products := catalogProducts()
	tooHigh := decimal.NewFromInt(20000)
	products[0].DiscountPrice = &tooHigh

	settings := models.DefaultCatalogSettings()
	settings.Format = models.FormatHTML
	var calls atomic.Int32
	doc, err := newTestService(countingFailFetcher(&calls)).Build(context.Background(), products, settings, nil)
	require.NoError(t, err)

	out := string(doc.Data)
	assert.Contains(t, out, "$14.000")
	assert.NotContains(t, out, "$20.000")
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	doc, err := newTestService(countingFailFetcher(&calls)).Build(ctx, catalogProducts(), models.DefaultCatalogSettings(), nil)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), calls.Load())
}

func TestCatalogFilename(t *testing.T) {
	tests := []struct {
		title  string
		format models.OutputFormat
		want   string
	}{
		{title: "Catálogo Ofertas", format: models.FormatPDF, want: "catalogo-ofertas-2026-03-01.pdf"},
		{title: "  Niños & Mascotas!! ", format: models.FormatHTML, want: "ninos-mascotas-2026-03-01.html"},
		{title: "¡¿?!", format: models.FormatPDF, want: "catalogo-2026-03-01.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, catalogFilename(tt.title, tt.format, fixedNow))
		})
	}
}

func TestExportTimeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, exportTimeout(0))
	assert.Equal(t, 30*time.Second, exportTimeout(1))
	assert.Equal(t, 60*time.Second, exportTimeout(4))
	assert.Equal(t, 3*time.Minute, exportTimeout(40))
}
