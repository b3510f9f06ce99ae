package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/alejomeek/cotizaciones/internal/domain/quote"
	"github.com/alejomeek/cotizaciones/internal/metrics"
)

var errSessionNotFound = errors.New("session not found")

// SessionStore keeps one SessionContext per active user session. The lock
// only guards the map; each context belongs to a single caller.
type SessionStore struct {
	mu sync.Mutex
	m  map[string]*quote.SessionContext
}

func NewSessionStore() *SessionStore {
	return &SessionStore{m: make(map[string]*quote.SessionContext)}
}

func (s *SessionStore) Create(store, payment, validity string) *quote.SessionContext {
	sess := quote.NewSession(uuid.NewString(), store, payment, validity)
	s.mu.Lock()
	s.m[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

func (s *SessionStore) Get(id string) (*quote.SessionContext, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[id]
	return sess, ok
}

type sessionView struct {
	ID      string       `json:"id"`
	Quote   quote.Quote  `json:"quote"`
	Number  string       `json:"number,omitempty"`
	Totals  quote.Totals `json:"totals"`
	Display struct {
		Subtotal   string `json:"subtotal"`
		GrandTotal string `json:"grand_total"`
	} `json:"display"`
	Warning string `json:"warning,omitempty"`
}

func (h *Handlers) sessionView(sess *quote.SessionContext, warning string) sessionView {
	v := sessionView{
		ID:      sess.ID,
		Quote:   sess.Quote,
		Totals:  sess.Quote.Totals(h.Cfg.FreightThreshold),
		Warning: warning,
	}
	if sess.Quote.Number > 0 {
		v.Number = quote.FormatNumber(sess.Quote.Store, sess.Quote.Number)
	}
	v.Display.Subtotal = quote.FormatPesos(v.Totals.Subtotal)
	v.Display.GrandTotal = quote.FormatPesos(v.Totals.GrandTotal)
	return v
}

func (h *Handlers) session(w http.ResponseWriter, r *http.Request) (*quote.SessionContext, bool) {
	sess, ok := h.Sessions.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		h.respondError(w, errSessionNotFound)
		return nil, false
	}
	return sess, true
}

func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Store string `json:"store"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !h.Cfg.KnownStore(req.Store) {
		h.respondError(w, quote.ErrStoreRequired)
		return
	}
	sess := h.Sessions.Create(req.Store, h.Cfg.DefaultPayment, h.Cfg.DefaultValidity)
	respondJSON(w, http.StatusCreated, h.sessionView(sess, ""))
}

func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.sessionView(sess, ""))
}

func (h *Handlers) SetSessionClient(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Client       quote.Client `json:"client"`
		PaymentTerms string       `json:"payment_terms"`
		Validity     string       `json:"validity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	sess.Quote.Client = req.Client
	if req.PaymentTerms != "" {
		sess.Quote.PaymentTerms = req.PaymentTerms
	}
	if req.Validity != "" {
		sess.Quote.Validity = req.Validity
	}
	respondJSON(w, http.StatusOK, h.sessionView(sess, ""))
}

type manualItemRequest struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Qty       int    `json:"qty"`
	UnitPrice int64  `json:"unit_price"`
	ImageData []byte `json:"image_data,omitempty"`
}

type addItemRequest struct {
	SKU    string             `json:"sku,omitempty"`
	Qty    int                `json:"qty,omitempty"`
	Manual *manualItemRequest `json:"manual,omitempty"`
}

// AddSessionItem adds a catalog SKU (incrementing on repeats) or a fully
// specified manual product to the cart.
func (h *Handlers) AddSessionItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if req.Manual != nil {
		it := quote.LineItem{
			Code:      req.Manual.Code,
			Name:      req.Manual.Name,
			Qty:       req.Manual.Qty,
			UnitPrice: req.Manual.UnitPrice,
			Source:    quote.SourceManual,
			ImageData: req.Manual.ImageData,
		}
		if err := sess.Quote.Add(it); err != nil {
			h.respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, h.sessionView(sess, ""))
		return
	}

	entry, found := h.Catalog.Lookup(sess.Quote.Store, req.SKU)
	if !found {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("sku %q not found in catalog", req.SKU)})
		return
	}
	it := quote.LineItem{
		Code:      entry.SKU,
		Name:      entry.Name,
		Qty:       req.Qty,
		UnitPrice: entry.Price,
		Source:    quote.SourceCatalog,
		ImageURL:  entry.ImageURL,
	}
	if err := sess.Quote.Add(it); err != nil {
		h.respondError(w, err)
		return
	}

	var warning string
	if cur, ok := sess.Quote.Item(entry.SKU); ok && cur.Qty > entry.Stock {
		warning = fmt.Sprintf("Inventario bajo (%d unidades). Comunicarse para revisar disponibilidad.", entry.Stock)
	}
	respondJSON(w, http.StatusOK, h.sessionView(sess, warning))
}

func (h *Handlers) RemoveSessionItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if !sess.Quote.Remove(chi.URLParam(r, "code")) {
		h.respondError(w, quote.ErrNotFound)
		return
	}
	respondJSON(w, http.StatusOK, h.sessionView(sess, ""))
}

func (h *Handlers) ResetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	sess.Reset()
	respondJSON(w, http.StatusOK, h.sessionView(sess, ""))
}

// LoadSessionQuote replaces the cart wholesale with a persisted quote.
func (h *Handlers) LoadSessionQuote(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	q, err := h.Repo.Get(r.Context(), chi.URLParam(r, "quoteID"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	sess.Load(q)
	respondJSON(w, http.StatusOK, h.sessionView(sess, ""))
}

// SaveSession persists the cart. The first save allocates the quote number;
// later saves update the same document. A failed save leaves the cart
// intact so the user can retry.
func (h *Handlers) SaveSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if _, err := sess.Save(r.Context(), h.Repo, h.Seq); err != nil {
		h.respondError(w, err)
		return
	}
	metrics.QuotesSaved.Inc()
	respondJSON(w, http.StatusOK, h.sessionView(sess, ""))
}

func (h *Handlers) SessionPDF(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	pdfBytes, err := h.PDF.Generate(sess.Quote)
	if err != nil {
		h.Log.Error("pdf generation failed", "err", err)
		http.Error(w, "pdf generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sess.Quote.FileName()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}
