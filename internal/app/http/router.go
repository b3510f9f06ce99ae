package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alejomeek/cotizaciones/internal/app/config"
	"github.com/alejomeek/cotizaciones/internal/app/http/handlers"
	"github.com/alejomeek/cotizaciones/internal/app/http/middleware"
)

func NewRouter(cfg config.Config, log *slog.Logger, h *handlers.Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLog(log))

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.InternalAuth(cfg.InternalToken))

		r.Post("/catalog", h.ImportCatalog)
		r.Get("/catalog/{sku}", h.GetCatalogEntry)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.CreateSession)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", h.GetSession)
				r.Put("/client", h.SetSessionClient)
				r.Post("/items", h.AddSessionItem)
				r.Delete("/items/{code}", h.RemoveSessionItem)
				r.Post("/reset", h.ResetSession)
				r.Post("/load/{quoteID}", h.LoadSessionQuote)
				r.Post("/save", h.SaveSession)
				r.Get("/pdf", h.SessionPDF)
			})
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", h.ListQuotes)
			r.Get("/export", h.ExportQuotes)
			r.Patch("/status", h.UpdateStatuses)
			r.Get("/{quoteID}", h.GetQuote)
			r.Delete("/{quoteID}", h.DeleteQuote)
		})
	})

	return r
}
