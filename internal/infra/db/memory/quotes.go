// Package memory holds mutex-guarded in-memory twins of the persistence
// ports. They back unit tests and the credential-less startup mode, where
// the cart and PDF features stay usable without a database.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/alejomeek/cotizaciones/internal/domain/quote"
)

type QuoteRepository struct {
	mu     sync.RWMutex
	quotes map[string]quote.Quote
}

func NewQuoteRepository() *QuoteRepository {
	return &QuoteRepository{quotes: make(map[string]quote.Quote)}
}

var _ quote.Repository = (*QuoteRepository)(nil)

func (r *QuoteRepository) Create(_ context.Context, q quote.Quote) (string, error) {
	id := uuid.NewString()
	q.ID = id
	r.mu.Lock()
	r.quotes[id] = cloneQuote(q)
	r.mu.Unlock()
	return id, nil
}

func (r *QuoteRepository) Update(_ context.Context, id string, q quote.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quotes[id]; !ok {
		return quote.ErrNotFound
	}
	q.ID = id
	r.quotes[id] = cloneQuote(q)
	return nil
}

func (r *QuoteRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quotes[id]; !ok {
		return quote.ErrNotFound
	}
	delete(r.quotes, id)
	return nil
}

func (r *QuoteRepository) Get(_ context.Context, id string) (quote.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.quotes[id]
	if !ok {
		return quote.Quote{}, quote.ErrNotFound
	}
	return cloneQuote(q), nil
}

func (r *QuoteRepository) ListByStore(_ context.Context, store string) ([]quote.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []quote.Summary
	for id, q := range r.quotes {
		if q.Store != store {
			continue
		}
		out = append(out, quote.Summary{
			ID:         id,
			Store:      q.Store,
			Number:     q.Number,
			IssueDate:  q.IssueDate,
			ClientName: q.Client.Name,
			Subtotal:   q.Subtotal(),
			Status:     q.Status,
			Comments:   q.Comments,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *QuoteRepository) SetStatus(_ context.Context, upd quote.StatusUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotes[upd.ID]
	if !ok {
		return quote.ErrNotFound
	}
	if upd.Status != nil {
		q.Status = *upd.Status
	}
	if upd.Comments != nil {
		q.Comments = *upd.Comments
	}
	r.quotes[upd.ID] = q
	return nil
}

func cloneQuote(q quote.Quote) quote.Quote {
	items := make([]quote.LineItem, len(q.Items))
	copy(items, q.Items)
	q.Items = items
	return q
}
