package quote

import (
	"context"
	"time"
)

// Summary is the row shown on the status-tracking screen and list views.
type Summary struct {
	ID         string    `json:"id"`
	Store      string    `json:"store"`
	Number     int64     `json:"number"`
	IssueDate  time.Time `json:"issue_date"`
	ClientName string    `json:"client_name"`
	Subtotal   int64     `json:"subtotal"`
	Status     Status    `json:"status"`
	Comments   string    `json:"comments"`
}

// StatusUpdate is one entry of a batch partial update: nil fields are
// left untouched.
type StatusUpdate struct {
	ID       string  `json:"id"`
	Status   *Status `json:"status,omitempty"`
	Comments *string `json:"comments,omitempty"`
}

// Repository persists quote documents. Implementations must give
// read-your-writes consistency to a single caller.
type Repository interface {
	Create(ctx context.Context, q Quote) (string, error)
	Update(ctx context.Context, id string, q Quote) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (Quote, error)
	ListByStore(ctx context.Context, store string) ([]Summary, error)
	SetStatus(ctx context.Context, upd StatusUpdate) error
}

// Sequencer hands out per-store quote numbers. Allocate must be atomic:
// concurrent callers for one store each get a distinct number, the issued
// set is gapless from the previous high-water mark, and deleted quotes
// never return their numbers to the pool.
type Sequencer interface {
	Allocate(ctx context.Context, store string) (int64, error)
}
