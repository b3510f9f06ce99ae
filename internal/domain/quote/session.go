package quote

import (
	"context"
	"fmt"
	"time"
)

// SessionContext is one user's in-progress cart: the store scope, client
// fields and items being assembled before a save. It is an explicit value
// owned by a single session; nothing here needs locking.
type SessionContext struct {
	ID    string
	Quote Quote
}

func NewSession(id, store, paymentTerms, validity string) *SessionContext {
	return &SessionContext{
		ID: id,
		Quote: Quote{
			Store:        store,
			PaymentTerms: paymentTerms,
			Validity:     validity,
			Status:       StatusCreated,
		},
	}
}

// Reset clears the cart for a fresh quote. The store selection survives,
// matching how staff work through several quotes per sitting.
func (s *SessionContext) Reset() {
	s.Quote = Quote{
		Store:        s.Quote.Store,
		PaymentTerms: s.Quote.PaymentTerms,
		Validity:     s.Quote.Validity,
		Status:       StatusCreated,
	}
}

// Load replaces the cart wholesale with a persisted quote for editing.
func (s *SessionContext) Load(q Quote) {
	s.Quote = q
}

// Save validates and persists the session's quote. The sequence number is
// allocated exactly once, on the first successful save; later saves update
// the same document and never touch the number.
func (s *SessionContext) Save(ctx context.Context, repo Repository, seq Sequencer) (Quote, error) {
	q := &s.Quote
	if q.Store == "" {
		return Quote{}, ErrStoreRequired
	}
	if q.Client.Name == "" {
		return Quote{}, ErrClientNameRequired
	}
	if len(q.Items) == 0 {
		return Quote{}, ErrItemsRequired
	}

	if q.IssueDate.IsZero() {
		q.IssueDate = time.Now()
	}
	if q.Status == "" {
		q.Status = StatusCreated
	}
	if q.Number == 0 {
		n, err := seq.Allocate(ctx, q.Store)
		if err != nil {
			return Quote{}, fmt.Errorf("allocate quote number: %w", err)
		}
		q.Number = n
	}

	if q.ID == "" {
		id, err := repo.Create(ctx, *q)
		if err != nil {
			return Quote{}, fmt.Errorf("create quote: %w", err)
		}
		q.ID = id
	} else {
		if err := repo.Update(ctx, q.ID, *q); err != nil {
			return Quote{}, fmt.Errorf("update quote: %w", err)
		}
	}
	return *q, nil
}
