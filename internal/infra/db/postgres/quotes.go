package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/alejomeek/cotizaciones/internal/domain/quote"
)

// QuoteRepository stores the full quote as a JSONB document alongside the
// denormalized columns the list and status screens query.
type QuoteRepository struct {
	db *DB
}

func NewQuoteRepository(db *DB) *QuoteRepository { return &QuoteRepository{db: db} }

var _ quote.Repository = (*QuoteRepository)(nil)

func (r *QuoteRepository) Create(ctx context.Context, q quote.Quote) (string, error) {
	id := uuid.NewString()
	q.ID = id
	doc, err := json.Marshal(q)
	if err != nil {
		return "", fmt.Errorf("marshal quote: %w", err)
	}
	_, err = r.db.Pool.Exec(ctx, `
		INSERT INTO quotes (id, store, number, issue_date, client_name, subtotal, status, comments, doc)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, id, q.Store, q.Number, q.IssueDate, q.Client.Name, q.Subtotal(), string(q.Status), q.Comments, doc)
	if err != nil {
		return "", fmt.Errorf("insert quote: %w", err)
	}
	return id, nil
}

func (r *QuoteRepository) Update(ctx context.Context, id string, q quote.Quote) error {
	q.ID = id
	doc, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("marshal quote: %w", err)
	}
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE quotes
		SET store = $2, issue_date = $3, client_name = $4, subtotal = $5,
		    status = $6, comments = $7, doc = $8, updated_at = now()
		WHERE id = $1
	`, id, q.Store, q.IssueDate, q.Client.Name, q.Subtotal(), string(q.Status), q.Comments, doc)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return quote.ErrNotFound
	}
	return nil
}

func (r *QuoteRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return quote.ErrNotFound
	}
	return nil
}

func (r *QuoteRepository) Get(ctx context.Context, id string) (quote.Quote, error) {
	var doc []byte
	err := r.db.Pool.QueryRow(ctx, `SELECT doc FROM quotes WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return quote.Quote{}, quote.ErrNotFound
		}
		return quote.Quote{}, fmt.Errorf("select quote: %w", err)
	}
	var q quote.Quote
	if err := json.Unmarshal(doc, &q); err != nil {
		return quote.Quote{}, fmt.Errorf("unmarshal quote: %w", err)
	}
	q.ID = id
	return q, nil
}

func (r *QuoteRepository) ListByStore(ctx context.Context, store string) ([]quote.Summary, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, store, number, issue_date, client_name, subtotal, status, comments
		FROM quotes
		WHERE store = $1
		ORDER BY number
	`, store)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	var out []quote.Summary
	for rows.Next() {
		var s quote.Summary
		var status string
		if err := rows.Scan(&s.ID, &s.Store, &s.Number, &s.IssueDate, &s.ClientName, &s.Subtotal, &status, &s.Comments); err != nil {
			return nil, fmt.Errorf("scan quote summary: %w", err)
		}
		s.Status = quote.Status(status)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return out, nil
}

// SetStatus applies a partial update: nil fields keep their stored value.
// The JSONB document is patched in the same statement so Get stays
// consistent with the list columns.
func (r *QuoteRepository) SetStatus(ctx context.Context, upd quote.StatusUpdate) error {
	var status, comments *string
	if upd.Status != nil {
		s := string(*upd.Status)
		status = &s
	}
	comments = upd.Comments

	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE quotes
		SET status = COALESCE($2, status),
		    comments = COALESCE($3, comments),
		    doc = doc || jsonb_strip_nulls(jsonb_build_object('status', $2::text, 'comments', $3::text)),
		    updated_at = now()
		WHERE id = $1
	`, upd.ID, status, comments)
	if err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return quote.ErrNotFound
	}
	return nil
}
