// Package metrics exposes the service's Prometheus counters, served on
// /metrics by the HTTP router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuotesSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cotizaciones_quotes_saved_total",
		Help: "Quotes created or updated in the document store.",
	})
	PDFRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cotizaciones_pdf_rendered_total",
		Help: "Quote PDFs rendered successfully.",
	})
	ImageFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cotizaciones_pdf_image_failures_total",
		Help: "Product images that fell back to the placeholder during rendering.",
	})
)
