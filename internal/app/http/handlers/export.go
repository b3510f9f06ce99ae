package handlers

import (
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/alejomeek/cotizaciones/internal/domain/quote"
)

// ExportQuotes writes the status board for one store as an XLSX download.
func (h *Handlers) ExportQuotes(w http.ResponseWriter, r *http.Request) {
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

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{"numero", "fecha", "cliente", "subtotal", "estado", "comentarios"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	for i, s := range summaries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		row := []interface{}{
			quote.FormatNumber(s.Store, s.Number),
			s.IssueDate.Format("02/01/2006"),
			s.ClientName,
			s.Subtotal,
			s.Status.Label(),
			s.Comments,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "Cotizaciones_"+store+".xlsx"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
