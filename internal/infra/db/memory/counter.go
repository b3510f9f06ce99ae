package memory

import (
	"context"
	"sync"

	"github.com/alejomeek/cotizaciones/internal/domain/quote"
)

type Sequencer struct {
	mu   sync.Mutex
	last map[string]int64
}

func NewSequencer() *Sequencer {
	return &Sequencer{last: make(map[string]int64)}
}

var _ quote.Sequencer = (*Sequencer)(nil)

func (s *Sequencer) Allocate(_ context.Context, store string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[store]++
	return s.last[store], nil
}
