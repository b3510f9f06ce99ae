package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alejomeek/cotizaciones/internal/domain/quote"
)

func (h *Handlers) ListQuotes(w http.ResponseWriter, r *http.Request) {
	store := r.URL.Query().Get("store")
	if !h.Cfg.KnownStore(store) {
		http.Error(w, "unknown store", http.StatusBadRequest)
		return
	}
	summaries, err := h.Repo.ListByStore(r.Context(), store)
	if err != nil {
		h.respondError(w, err)
		return
	}
	type row struct {
		quote.Summary
		Number string `json:"number_display"`
	}
	rows := make([]row, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, row{Summary: s, Number: quote.FormatNumber(s.Store, s.Number)})
	}
	respondJSON(w, http.StatusOK, rows)
}

func (h *Handlers) GetQuote(w http.ResponseWriter, r *http.Request) {
	q, err := h.Repo.Get(r.Context(), chi.URLParam(r, "quoteID"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, q)
}

// DeleteQuote removes the document. The store's counter is untouched, so
// the deleted number is never reissued.
func (h *Handlers) DeleteQuote(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "quoteID")); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type statusUpdateRequest struct {
	ID       string  `json:"id"`
	Status   *string `json:"status,omitempty"`
	Comments *string `json:"comments,omitempty"`
}

type statusUpdateResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// UpdateStatuses applies a batch of partial edits from the tracking
// screen. Each update stands alone: one bad row does not stop the rest.
func (h *Handlers) UpdateStatuses(w http.ResponseWriter, r *http.Request) {
	var reqs []statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	results := make([]statusUpdateResult, 0, len(reqs))
	for _, req := range reqs {
		res := statusUpdateResult{ID: req.ID, OK: true}
		upd := quote.StatusUpdate{ID: req.ID, Comments: req.Comments}
		if req.Status != nil {
			st, err := quote.ParseStatus(*req.Status)
			if err != nil {
				results = append(results, statusUpdateResult{ID: req.ID, Error: err.Error()})
				continue
			}
			upd.Status = &st
		}
		if err := h.Repo.SetStatus(r.Context(), upd); err != nil {
			res.OK = false
			res.Error = err.Error()
		}
		results = append(results, res)
	}
	respondJSON(w, http.StatusOK, results)
}
