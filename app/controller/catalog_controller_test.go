package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo-tienda/models"
	"catalogo-tienda/service"
	"catalogo-tienda/storage"
)

type buildCall struct {
	products []models.Product
	settings models.CatalogSettings
	store    *models.StoreInfo
}

type fakeBuilder struct {
	calls []buildCall
	doc   *models.CatalogDocument
	err   error
}

func (b *fakeBuilder) Build(_ context.Context, products []models.Product, settings models.CatalogSettings, store *models.StoreInfo) (*models.CatalogDocument, error) {
	b.calls = append(b.calls, buildCall{products: products, settings: settings, store: store})
	if b.err != nil {
		return nil, b.err
	}
	return b.doc, nil
}

type fakeExporter struct {
	pages map[int][]byte
	err   error
}

func (e *fakeExporter) ExportPNG(_ context.Context, _ []byte, _ int) (map[int][]byte, error) {
	return e.pages, e.err
}

type fakeProducts struct {
	category string
	products []models.Product
}

func (f *fakeProducts) ListActiveProducts(_ context.Context, category string) ([]models.Product, error) {
	f.category = category
	return f.products, nil
}

type fakeStore struct{ store *models.StoreInfo }

func (f fakeStore) GetStoreInfo(context.Context) (*models.StoreInfo, error) { return f.store, nil }

func testDefaults() models.CatalogSettings {
	s := models.DefaultCatalogSettings()
	s.Title = "Catálogo Luna"
	return s
}

func pdfDoc() *models.CatalogDocument {
	return &models.CatalogDocument{
		Data:        []byte("%PDF-1.3 fake"),
		ContentType: service.ContentTypePDF,
		Filename:    "catalogo-luna-2026-03-01.pdf",
		PageCount:   3,
	}
}

func routes(c *CatalogController) http.Handler {
	r := chi.NewRouter()
	r.Get("/admin/catalog", c.GenerateCatalog)
	r.Post("/admin/catalog", c.CreateCatalog)
	r.Get("/admin/catalog/png-page", c.DownloadPNGPage)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateCatalogMergesSettings(t *testing.T) {
	builder := &fakeBuilder{doc: pdfDoc()}
	c := NewCatalogController(builder, nil, nil, nil, nil, testDefaults())

	rec := do(t, routes(c), http.MethodPost, "/admin/catalog", `{
		"products": [{"id": "1", "name": "Collar", "price": "14000", "discountPrice": "8500"}],
		"settings": {"columns": 4, "catalogType": "ofertas"},
		"store": {"name": "Tienda Luna"}
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ContentTypePDF, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="catalogo-luna-2026-03-01.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "3", rec.Header().Get("X-Page-Count"))
	assert.Equal(t, "%PDF-1.3 fake", rec.Body.String())

	require.Len(t, builder.calls, 1)
	call := builder.calls[0]
	assert.Equal(t, "Catálogo Luna", call.settings.Title, "unset fields keep the defaults")
	assert.Equal(t, 4, call.settings.Columns)
	assert.Equal(t, "ofertas", call.settings.CatalogType)
	assert.True(t, call.settings.ShowPrices)
	require.Len(t, call.products, 1)
	assert.True(t, call.products[0].DiscountPrice.Equal(decimal.NewFromInt(8500)))
	assert.Equal(t, "Tienda Luna", call.store.Name)
}

func TestCreateCatalogFormatOverride(t *testing.T) {
	builder := &fakeBuilder{doc: &models.CatalogDocument{
		Data:        []byte("<html></html>"),
		ContentType: service.ContentTypeHTML,
		Filename:    "catalogo.html",
		PageCount:   1,
	}}
	c := NewCatalogController(builder, nil, nil, nil, nil, testDefaults())

	rec := do(t, routes(c), http.MethodPost, "/admin/catalog?format=HTML", `{"products": [{"id": "1", "name": "A", "price": 10}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.FormatHTML, builder.calls[0].settings.Format)
	assert.Equal(t, `inline; filename="catalogo.html"`, rec.Header().Get("Content-Disposition"))
}

func TestCreateCatalogErrors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		buildErr   error
		wantStatus int
		wantBody   string
	}{
		{name: "malformed json", target: "/admin/catalog", body: `{"products": [`, wantStatus: http.StatusBadRequest, wantBody: "Invalid request body"},
		{name: "bad settings", target: "/admin/catalog", body: `{"products": [], "settings": {"columns": "many"}}`, wantStatus: http.StatusBadRequest, wantBody: "Invalid settings"},
		{name: "unknown format", target: "/admin/catalog?format=docx", body: `{"products": []}`, wantStatus: http.StatusBadRequest, wantBody: "Invalid format"},
		{name: "png without exporter", target: "/admin/catalog?format=png", body: `{"products": []}`, wantStatus: http.StatusServiceUnavailable},
		{name: "no products", target: "/admin/catalog", body: `{"products": []}`, buildErr: models.ErrNoProducts, wantStatus: http.StatusBadRequest, wantBody: "no products selected"},
		{name: "invalid settings", target: "/admin/catalog", body: `{"products": []}`, buildErr: models.ErrInvalidSettings, wantStatus: http.StatusBadRequest, wantBody: "invalid settings"},
		{name: "render failure", target: "/admin/catalog", body: `{"products": []}`, buildErr: errors.Join(models.ErrRender, errors.New("page 3 overflow")), wantStatus: http.StatusInternalServerError, wantBody: "could not generate document"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder := &fakeBuilder{doc: pdfDoc(), err: tt.buildErr}
			c := NewCatalogController(builder, nil, nil, nil, nil, testDefaults())

			rec := do(t, routes(c), http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.NotContains(t, rec.Body.String(), "page 3 overflow")
		})
	}
}

func TestCreateCatalogWithRealService(t *testing.T) {
	svc := service.NewCatalogService(service.NewImagePreloader(
		service.NewSourceFetcher(nil, "", 0, nil),
		service.NewImageOptimizer(0, 0),
	))
	c := NewCatalogController(svc, nil, nil, nil, nil, testDefaults())

	rec := do(t, routes(c), http.MethodPost, "/admin/catalog", `{"products": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "no products selected\n", rec.Body.String())

	rec = do(t, routes(c), http.MethodPost, "/admin/catalog", `{"products": [{"id": "1", "name": "Collar", "price": 14000, "category": "Collares"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
	assert.Equal(t, "2", rec.Header().Get("X-Page-Count"))
}

func TestPNGExportSession(t *testing.T) {
	page := func(s string) []byte { return append(append([]byte{}, pngSignature...), s...) }
	builder := &fakeBuilder{doc: &models.CatalogDocument{
		Data:        []byte("<html></html>"),
		ContentType: service.ContentTypeHTML,
		Filename:    "catalogo-luna-2026-03-01.html",
		PageCount:   2,
	}}
	exporter := &fakeExporter{pages: map[int][]byte{1: page("uno"), 2: page("dos")}}
	pages := storage.NewMemoryStore(time.Minute)
	defer pages.Close()
	c := NewCatalogController(builder, nil, nil, exporter, pages, testDefaults())
	h := routes(c)

	rec := do(t, h, http.MethodPost, "/admin/catalog?format=png", `{"products": [{"id": "1", "name": "A", "price": 10}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.FormatHTML, builder.calls[0].settings.Format, "PNG pages are shot from the HTML output")

	var resp pngResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, 2, resp.TotalPages)
	require.Len(t, resp.Pages, 2)
	assert.Equal(t, "catalogo-luna-2026-03-01-pagina-2.png", resp.Pages[1].Filename)

	rec = do(t, h, http.MethodGet, resp.Pages[1].URL, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, page("dos"), rec.Body.Bytes())

	rec = do(t, h, http.MethodGet, "/admin/catalog/png-page?session="+resp.SessionID+"&page=9", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page 9 not found")

	rec = do(t, h, http.MethodGet, "/admin/catalog/png-page?session=nope&page=1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Session expired or not found")

	rec = do(t, h, http.MethodGet, "/admin/catalog/png-page?session="+resp.SessionID+"&page=zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/admin/catalog/png-page?page=1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPNGExportFailure(t *testing.T) {
	builder := &fakeBuilder{doc: pdfDoc()}
	pages := storage.NewMemoryStore(time.Minute)
	defer pages.Close()
	c := NewCatalogController(builder, nil, nil, &fakeExporter{err: errors.New("chrome not found")}, pages, testDefaults())

	rec := do(t, routes(c), http.MethodPost, "/admin/catalog?format=png", `{"products": [{"id": "1", "name": "A", "price": 10}]}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "could not generate document\n", rec.Body.String())
}

func TestDownloadRejectsNonPNGData(t *testing.T) {
	pages := storage.NewMemoryStore(time.Minute)
	defer pages.Close()
	require.NoError(t, pages.Put(context.Background(), "s1", map[int][]byte{1: []byte("GIF89a")}))
	c := NewCatalogController(&fakeBuilder{}, nil, nil, nil, pages, testDefaults())

	rec := do(t, routes(c), http.MethodGet, "/admin/catalog/png-page?session=s1&page=1", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGenerateCatalogFromDatabase(t *testing.T) {
	builder := &fakeBuilder{doc: pdfDoc()}
	repo := &fakeProducts{products: []models.Product{{ID: "7", Name: "Buzo", Price: decimal.NewFromInt(32000)}}}
	store := fakeStore{store: &models.StoreInfo{Name: "Tienda Luna"}}
	c := NewCatalogController(builder, repo, store, nil, nil, testDefaults())

	rec := do(t, routes(c), http.MethodGet, "/admin/catalog?type=nuevos&category=Ropa&format=pdf", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ropa", repo.category)
	require.Len(t, builder.calls, 1)
	assert.Equal(t, "nuevos", builder.calls[0].settings.CatalogType)
	assert.Equal(t, models.FormatPDF, builder.calls[0].settings.Format)
	assert.Equal(t, "Tienda Luna", builder.calls[0].store.Name)
	assert.Equal(t, "7", builder.calls[0].products[0].ID)
}

func TestGenerateCatalogWithoutDatabase(t *testing.T) {
	c := NewCatalogController(&fakeBuilder{}, nil, nil, nil, nil, testDefaults())
	rec := do(t, routes(c), http.MethodGet, "/admin/catalog", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCreateCatalogDoesNotMutateDefaults(t *testing.T) {
	defaults := testDefaults()
	defaults.Contact = &models.ContactInfo{Phone: "300 111 2222"}
	builder := &fakeBuilder{doc: pdfDoc()}
	c := NewCatalogController(builder, nil, nil, nil, nil, defaults)

	rec := do(t, routes(c), http.MethodPost, "/admin/catalog", `{"products": [{"id": "1", "name": "A", "price": 10}], "settings": {"contact": {"phone": "999"}}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "999", builder.calls[0].settings.Contact.Phone)
	assert.Equal(t, "300 111 2222", c.defaults.Contact.Phone)
}
