package memory

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejomeek/cotizaciones/internal/domain/quote"
)

func TestAllocateConcurrentGapless(t *testing.T) {
	seq := NewSequencer()
	ctx := context.Background()

	const n = 64
	got := make([]int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			num, err := seq.Allocate(ctx, "Oviedo")
			assert.NoError(t, err)
			got[i] = num
		}(i)
	}
	wg.Wait()

	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	for i, num := range got {
		assert.Equal(t, int64(i+1), num)
	}
}

func TestAllocatePerStore(t *testing.T) {
	seq := NewSequencer()
	ctx := context.Background()

	a, err := seq.Allocate(ctx, "Oviedo")
	require.NoError(t, err)
	b, err := seq.Allocate(ctx, "Barranquilla")
	require.NoError(t, err)
	assert.Equal(t, int64(1), a)
	assert.Equal(t, int64(1), b)
}

func TestDeleteNeverReissuesNumbers(t *testing.T) {
	ctx := context.Background()
	repo := NewQuoteRepository()
	seq := NewSequencer()

	n1, err := seq.Allocate(ctx, "Oviedo")
	require.NoError(t, err)
	id, err := repo.Create(ctx, quote.Quote{Store: "Oviedo", Number: n1})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, id))

	n2, err := seq.Allocate(ctx, "Oviedo")
	require.NoError(t, err)
	assert.Greater(t, n2, n1)
}

func TestRepositoryRoundtrip(t *testing.T) {
	ctx := context.Background()
	repo := NewQuoteRepository()

	q := quote.Quote{Store: "Oviedo", Number: 3, Client: quote.Client{Name: "ACME"}, Status: quote.StatusCreated}
	require.NoError(t, q.Add(quote.LineItem{Code: "A", Name: "Bloques", Qty: 2, UnitPrice: 40_000}))

	id, err := repo.Create(ctx, q)
	require.NoError(t, err)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, int64(80_000), got.Subtotal())

	// Mutating the returned copy must not leak into the stored document.
	got.Items[0].Qty = 99
	again, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Items[0].Qty)

	list, err := repo.ListByStore(ctx, "Oviedo")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ACME", list[0].ClientName)
	assert.Equal(t, int64(80_000), list[0].Subtotal)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, quote.ErrNotFound)
}

func TestSetStatusPartial(t *testing.T) {
	ctx := context.Background()
	repo := NewQuoteRepository()

	id, err := repo.Create(ctx, quote.Quote{Store: "Oviedo", Status: quote.StatusCreated, Comments: "inicial"})
	require.NoError(t, err)

	st := quote.StatusSent
	require.NoError(t, repo.SetStatus(ctx, quote.StatusUpdate{ID: id, Status: &st}))
	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, quote.StatusSent, got.Status)
	assert.Equal(t, "inicial", got.Comments)

	comment := "cliente confirmó"
	require.NoError(t, repo.SetStatus(ctx, quote.StatusUpdate{ID: id, Comments: &comment}))
	got, err = repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, quote.StatusSent, got.Status)
	assert.Equal(t, "cliente confirmó", got.Comments)

	assert.ErrorIs(t, repo.SetStatus(ctx, quote.StatusUpdate{ID: "missing"}), quote.ErrNotFound)
}
