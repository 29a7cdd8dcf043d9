package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"catalogo-tienda/logx"
	"catalogo-tienda/models"
	"catalogo-tienda/repository"
	"catalogo-tienda/service"
	"catalogo-tienda/storage"
)

// maxRequestBytes caps POST /admin/catalog bodies; products may carry data URIs
const maxRequestBytes = 32 << 20

const formatPNG = "png"

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// CatalogController handles HTTP requests for catalog generation
type CatalogController struct {
	builder  service.CatalogBuilder
	products repository.ProductRepositoryInterface
	store    repository.StoreRepositoryInterface
	exporter service.PageExporter
	pages    storage.PageStore
	defaults models.CatalogSettings
}

// NewCatalogController creates a new CatalogController. products and store
// may be nil when no database is configured; exporter may be nil when PNG
// export is unavailable.
func NewCatalogController(
	builder service.CatalogBuilder,
	products repository.ProductRepositoryInterface,
	store repository.StoreRepositoryInterface,
	exporter service.PageExporter,
	pages storage.PageStore,
	defaults models.CatalogSettings,
) *CatalogController {
	return &CatalogController{
		builder:  builder,
		products: products,
		store:    store,
		exporter: exporter,
		pages:    pages,
		defaults: defaults,
	}
}

// catalogRequest is the body of POST /admin/catalog. Settings are merged
// over the configured defaults, so callers only send what they change.
type catalogRequest struct {
	Products []models.Product  `json:"products"`
	Settings json.RawMessage   `json:"settings,omitempty"`
	Store    *models.StoreInfo `json:"store,omitempty"`
	Format   string            `json:"format,omitempty"`
}

// PageLink points at one exported PNG page
type PageLink struct {
	Page     int    `json:"page"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// pngResponse lists the pages of a PNG export session
type pngResponse struct {
	SessionID  string     `json:"sessionId"`
	TotalPages int        `json:"totalPages"`
	Pages      []PageLink `json:"pages"`
}

// CreateCatalog handles POST /admin/catalog
func (c *CatalogController) CreateCatalog(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	var req catalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Warn().Err(err).Msg("❌ CreateCatalog: invalid request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	settings := cloneSettings(c.defaults)
	if len(req.Settings) > 0 && !bytes.Equal(bytes.TrimSpace(req.Settings), []byte("null")) {
		if err := json.Unmarshal(req.Settings, &settings); err != nil {
			logx.Warn().Err(err).Msg("❌ CreateCatalog: invalid settings")
			http.Error(w, "Invalid settings", http.StatusBadRequest)
			return
		}
	}

	format := strings.ToLower(strings.TrimSpace(req.Format))
	if q := strings.TrimSpace(r.URL.Query().Get("format")); q != "" {
		format = strings.ToLower(q)
	}
	c.respond(w, r, req.Products, settings, req.Store, format)
}

// GenerateCatalog handles GET /admin/catalog?type=&category=&format=
// Products and the store record come from the database.
func (c *CatalogController) GenerateCatalog(w http.ResponseWriter, r *http.Request) {
	if c.products == nil {
		http.Error(w, "No product database configured", http.StatusServiceUnavailable)
		return
	}
	ctx := r.Context()
	query := r.URL.Query()
	category := strings.TrimSpace(query.Get("category"))

	settings := c.defaults
	if t := strings.TrimSpace(query.Get("type")); t != "" {
		settings.CatalogType = t
	}

	products, err := c.products.ListActiveProducts(ctx, category)
	if err != nil {
		logx.Error().Err(err).Msg("❌ GenerateCatalog: error fetching products")
		http.Error(w, "Failed to fetch products", http.StatusInternalServerError)
		return
	}

	var store *models.StoreInfo
	if c.store != nil {
		store, err = c.store.GetStoreInfo(ctx)
		if err != nil {
			logx.Error().Err(err).Msg("❌ GenerateCatalog: error fetching store")
			http.Error(w, "Failed to fetch store information", http.StatusInternalServerError)
			return
		}
	}

	c.respond(w, r, products, settings, store, strings.ToLower(strings.TrimSpace(query.Get("format"))))
}

// respond builds the catalog and writes it, or the PNG page links, to w
func (c *CatalogController) respond(w http.ResponseWriter, r *http.Request, products []models.Product, settings models.CatalogSettings, store *models.StoreInfo, format string) {
	switch format {
	case "":
	case string(models.FormatPDF), string(models.FormatHTML):
		settings.Format = models.OutputFormat(format)
	case formatPNG:
		if c.exporter == nil || c.pages == nil {
			http.Error(w, "PNG export is not available", http.StatusServiceUnavailable)
			return
		}
		settings.Format = models.FormatHTML
	default:
		http.Error(w, "Invalid format. Valid formats: html, pdf, png", http.StatusBadRequest)
		return
	}

	doc, err := c.builder.Build(r.Context(), products, settings, store)
	if err != nil {
		writeBuildError(w, err)
		return
	}

	if format == formatPNG {
		c.writePNGSession(w, r, doc)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	if doc.ContentType == service.ContentTypePDF {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", doc.Filename))
	} else {
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=\"%s\"", doc.Filename))
	}
	w.Header().Set("X-Page-Count", strconv.Itoa(doc.PageCount))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Data); err != nil {
		logx.Error().Err(err).Msg("❌ Error writing catalog response")
	}
}

func (c *CatalogController) writePNGSession(w http.ResponseWriter, r *http.Request, doc *models.CatalogDocument) {
	pngs, err := c.exporter.ExportPNG(r.Context(), doc.Data, doc.PageCount)
	if err != nil {
		logx.Error().Err(err).Msg("❌ Error exporting catalog to PNG")
		http.Error(w, "could not generate document", http.StatusInternalServerError)
		return
	}

	sessionID := uuid.NewString()
	if err := c.pages.Put(r.Context(), sessionID, pngs); err != nil {
		logx.Error().Err(err).Msg("❌ Error storing PNG pages")
		http.Error(w, "could not generate document", http.StatusInternalServerError)
		return
	}

	base := strings.TrimSuffix(doc.Filename, ".html")
	resp := pngResponse{SessionID: sessionID, TotalPages: len(pngs)}
	for i := 1; i <= len(pngs); i++ {
		if _, ok := pngs[i]; !ok {
			continue
		}
		resp.Pages = append(resp.Pages, PageLink{
			Page:     i,
			URL:      fmt.Sprintf("/admin/catalog/png-page?session=%s&page=%d", sessionID, i),
			Filename: pageFilename(base, i, len(pngs)),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logx.Error().Err(err).Msg("❌ Error encoding PNG session response")
	}
}

// DownloadPNGPage handles GET /admin/catalog/png-page?session=XXX&page=N
func (c *CatalogController) DownloadPNGPage(w http.ResponseWriter, r *http.Request) {
	if c.pages == nil {
		http.Error(w, "PNG export is not available", http.StatusServiceUnavailable)
		return
	}
	sessionID := strings.TrimSpace(r.URL.Query().Get("session"))
	pageStr := strings.TrimSpace(r.URL.Query().Get("page"))

	if sessionID == "" {
		http.Error(w, "session parameter is required", http.StatusBadRequest)
		return
	}
	pageNum, err := strconv.Atoi(pageStr)
	if err != nil || pageNum < 1 {
		http.Error(w, "Invalid page number", http.StatusBadRequest)
		return
	}

	pngData, err := c.pages.Get(r.Context(), sessionID, pageNum)
	switch {
	case errors.Is(err, storage.ErrSessionNotFound):
		http.Error(w, "Session expired or not found", http.StatusNotFound)
		return
	case errors.Is(err, storage.ErrPageNotFound):
		http.Error(w, fmt.Sprintf("Page %d not found", pageNum), http.StatusNotFound)
		return
	case err != nil:
		logx.Error().Err(err).Str("session", sessionID).Msg("❌ DownloadPNGPage: error loading page")
		http.Error(w, "Failed to load page", http.StatusInternalServerError)
		return
	}

	if !bytes.HasPrefix(pngData, pngSignature) {
		logx.Error().Int("page", pageNum).Int("bytes", len(pngData)).Msg("❌ DownloadPNGPage: invalid PNG data")
		http.Error(w, "Invalid PNG data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", pageFilename("catalogo", pageNum, 0)))
	w.Header().Set("Content-Length", strconv.Itoa(len(pngData)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pngData); err != nil {
		logx.Error().Err(err).Msg("❌ DownloadPNGPage: error writing PNG response")
	}
}

// cloneSettings copies the pointer fields so decoding a request never
// writes through to the shared defaults
func cloneSettings(s models.CatalogSettings) models.CatalogSettings {
	if s.Contact != nil {
		contact := *s.Contact
		s.Contact = &contact
	}
	if s.ValidFrom != nil {
		from := *s.ValidFrom
		s.ValidFrom = &from
	}
	if s.ValidUntil != nil {
		until := *s.ValidUntil
		s.ValidUntil = &until
	}
	s.PreferredCategories = append([]string(nil), s.PreferredCategories...)
	return s
}

// pageFilename drops the page suffix for single page exports
func pageFilename(base string, page, total int) string {
	if total == 1 {
		return base + ".png"
	}
	return fmt.Sprintf("%s-pagina-%d.png", base, page)
}

// writeBuildError maps build failures to status codes. Input problems are
// the caller's fault; everything else is reported without internals.
func writeBuildError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNoProducts):
		logx.Warn().Err(err).Msg("⚠️  Catalog requested without products")
		http.Error(w, "no products selected", http.StatusBadRequest)
	case errors.Is(err, models.ErrInput):
		logx.Warn().Err(err).Msg("⚠️  Invalid catalog request")
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		logx.Error().Err(err).Msg("❌ Catalog generation failed")
		http.Error(w, "could not generate document", http.StatusInternalServerError)
	}
}
