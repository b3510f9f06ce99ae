package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/alejomeek/cotizaciones/internal/domain/catalog"
)

const maxFeedSize = 20 << 20

// ImportCatalog loads a product feed for one store, replacing whatever was
// loaded before. CSV and XLSX exports share the same column contract.
func (h *Handlers) ImportCatalog(w http.ResponseWriter, r *http.Request) {
	store := r.URL.Query().Get("store")
	if !h.Cfg.KnownStore(store) {
		http.Error(w, "unknown store", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxFeedSize); err != nil {
		http.Error(w, "bad multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing feed file", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	var entries []catalog.Entry
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".csv":
		entries, err = catalog.ParseCSV(file)
	case ".xlsx":
		entries, err = catalog.ParseXLSX(file)
	default:
		http.Error(w, "unsupported feed format", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.Catalog.Load(store, entries)
	h.Log.Info("catalog loaded", "store", store, "products", len(entries))
	respondJSON(w, http.StatusOK, map[string]any{
		"store":    store,
		"products": len(entries),
	})
}

func (h *Handlers) GetCatalogEntry(w http.ResponseWriter, r *http.Request) {
	store := r.URL.Query().Get("store")
	sku := chi.URLParam(r, "sku")
	entry, ok := h.Catalog.Lookup(store, sku)
	if !ok {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("sku %q not found in catalog", sku)})
		return
	}
	respondJSON(w, http.StatusOK, entry)
}
