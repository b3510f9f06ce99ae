package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alejomeek/cotizaciones/internal/app/config"
	"github.com/alejomeek/cotizaciones/internal/domain/catalog"
	"github.com/alejomeek/cotizaciones/internal/domain/quote"
	"github.com/alejomeek/cotizaciones/internal/domain/quote/pdf"
)

type Handlers struct {
	Cfg      config.Config
	Log      *slog.Logger
	Repo     quote.Repository
	Seq      quote.Sequencer
	Catalog  *catalog.Store
	Sessions *SessionStore
	PDF      pdf.Generator
}

func New(cfg config.Config, log *slog.Logger, repo quote.Repository, seq quote.Sequencer, gen pdf.Generator) *Handlers {
	return &Handlers{
		Cfg:      cfg,
		Log:      log,
		Repo:     repo,
		Seq:      seq,
		Catalog:  catalog.NewStore(),
		Sessions: NewSessionStore(),
		PDF:      gen,
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps the domain error taxonomy onto HTTP statuses:
// validation 400, not found 404, anything else is a persistence failure
// reported with its cause.
func (h *Handlers) respondError(w http.ResponseWriter, err error) {
	switch {
	case quote.IsValidation(err), errors.Is(err, catalog.ErrMissingColumns):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, quote.ErrNotFound), errors.Is(err, errSessionNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		h.Log.Error("persistence failure", "err", err)
		respondJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	}
}
