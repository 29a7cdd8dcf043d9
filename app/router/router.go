package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"catalogo-tienda/app/controller"
)

type Controllers struct {
	Catalog *controller.CatalogController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// New builds the HTTP handler. Unsupported methods get 405 from chi.
func New(controllers *Controllers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(5 * time.Minute))

	r.Get("/ping", pingHandler)

	r.Route("/admin/catalog", func(r chi.Router) {
		r.Get("/", controllers.Catalog.GenerateCatalog)
		r.Post("/", controllers.Catalog.CreateCatalog)
		r.Get("/png-page", controllers.Catalog.DownloadPNGPage)
	})

	return r
}
