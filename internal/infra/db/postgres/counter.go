package postgres

import (
	"context"
	"fmt"

	"github.com/alejomeek/cotizaciones/internal/domain/quote"
)

// Sequencer issues per-store quote numbers from the shared counter table.
// The upsert runs as one atomic statement, so concurrent callers each get
// a distinct consecutive value and no update is ever lost. Numbers of
// deleted quotes are never handed out again.
type Sequencer struct {
	db *DB
}

func NewSequencer(db *DB) *Sequencer { return &Sequencer{db: db} }

var _ quote.Sequencer = (*Sequencer)(nil)

func (s *Sequencer) Allocate(ctx context.Context, store string) (int64, error) {
	var n int64
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO quote_counters (store, last_number) VALUES ($1, 1)
		ON CONFLICT (store) DO UPDATE SET last_number = quote_counters.last_number + 1
		RETURNING last_number
	`, store).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("allocate quote number for %s: %w", store, err)
	}
	return n, nil
}
