package httpapi

import (
	"expvar"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(WithRequestID)
	r.Use(WithLogging)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
	})

	r.Post("/cash", app.insertCashHandler)
	r.Post("/card", app.insertCardHandler)
	r.Post("/card/eject", app.ejectCardHandler)
	r.Post("/change/return", app.returnChangeHandler)
	r.Post("/change/collect", app.collectChangeHandler)
	r.Post("/items/collect", app.collectItemHandler)
	r.Post("/message", app.setMessageHandler)

	r.Get("/state", app.stateHandler)
	r.Route("/slots", func(r chi.Router) {
		r.Get("/", app.listSlotsHandler)
		r.Get("/{id}", app.getSlotHandler)
		r.Post("/{id}/select", app.selectSlotHandler)
	})

	r.Get("/healthz", app.healthHandler)
	r.Get("/debug/metrics", app.metricsHandler)
	r.Handle("/debug/vars", expvar.Handler())
	r.Get("/openapi.yaml", app.openapiHandler)
	r.Get("/docs", app.docsHandler)
	return r
}
