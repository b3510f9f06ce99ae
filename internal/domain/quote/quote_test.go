package quote_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejomeek/cotizaciones/internal/domain/quote"
)

func item(code string, qty int, price int64) quote.LineItem {
	return quote.LineItem{Code: code, Name: "Producto " + code, Qty: qty, UnitPrice: price, Source: quote.SourceCatalog}
}

func TestAddComputesLineTotal(t *testing.T) {
	var q quote.Quote
	require.NoError(t, q.Add(item("A1", 3, 15000)))

	it, ok := q.Item("A1")
	require.True(t, ok)
	assert.Equal(t, int64(45000), it.LineTotal)
}

func TestAddMergesDuplicateCode(t *testing.T) {
	var q quote.Quote
	require.NoError(t, q.Add(item("A1", 2, 10000)))
	require.NoError(t, q.Add(item("A1", 3, 10000)))

	require.Len(t, q.Items, 1)
	assert.Equal(t, 5, q.Items[0].Qty)
	assert.Equal(t, int64(50000), q.Items[0].LineTotal)
}

func TestAddValidation(t *testing.T) {
	var q quote.Quote
	assert.ErrorIs(t, q.Add(quote.LineItem{Name: "x", Qty: 1}), quote.ErrItemCodeRequired)
	assert.ErrorIs(t, q.Add(quote.LineItem{Code: "x", Qty: 1}), quote.ErrItemNameRequired)
	assert.ErrorIs(t, q.Add(quote.LineItem{Code: "x", Name: "x", Qty: 0}), quote.ErrItemQtyInvalid)
	assert.ErrorIs(t, q.Add(quote.LineItem{Code: "x", Name: "x", Qty: 1, UnitPrice: -1}), quote.ErrItemPriceInvalid)
	assert.Empty(t, q.Items)
}

func TestRemoveKeepsOrder(t *testing.T) {
	var q quote.Quote
	require.NoError(t, q.Add(item("A", 1, 100)))
	require.NoError(t, q.Add(item("B", 1, 100)))
	require.NoError(t, q.Add(item("C", 1, 100)))

	assert.True(t, q.Remove("B"))
	assert.False(t, q.Remove("B"))
	require.Len(t, q.Items, 2)
	assert.Equal(t, "A", q.Items[0].Code)
	assert.Equal(t, "C", q.Items[1].Code)
}

func TestFreightThresholdInclusive(t *testing.T) {
	assert.Equal(t, quote.FreightIncluded, quote.FreightFor(1_000_000, 1_000_000).Label)
	assert.Equal(t, quote.FreightToAgree, quote.FreightFor(999_999, 1_000_000).Label)
	assert.Zero(t, quote.FreightFor(1_000_000, 1_000_000).Charge)
	assert.Zero(t, quote.FreightFor(999_999, 1_000_000).Charge)
}

func TestTotals(t *testing.T) {
	var q quote.Quote
	require.NoError(t, q.Add(item("A", 2, 50_000)))
	require.NoError(t, q.Add(item("B", 1, 2_000_000)))

	tot := q.Totals(1_000_000)
	assert.Equal(t, int64(2_100_000), tot.Subtotal)
	assert.Equal(t, 3, tot.Units)
	assert.Equal(t, quote.FreightIncluded, tot.Freight.Label)
	assert.Equal(t, int64(2_100_000), tot.GrandTotal)
}

func TestStorePrefix(t *testing.T) {
	assert.Equal(t, "OV", quote.StorePrefix("Oviedo"))
	assert.Equal(t, "BA", quote.StorePrefix("Barranquilla"))
	assert.Equal(t, "ÑA", quote.StorePrefix("ñandú"))
	assert.Equal(t, "AX", quote.StorePrefix("a"))
	assert.Equal(t, "XX", quote.StorePrefix("  "))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "OV-0012", quote.FormatNumber("Oviedo", 12))
	assert.Equal(t, "BA-12345", quote.FormatNumber("Barranquilla", 12345))
}

func TestFileName(t *testing.T) {
	q := quote.Quote{
		Store:     "Oviedo",
		Number:    7,
		Client:    quote.Client{Name: "Colegio San José"},
		IssueDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "Cotizacion_OV-0007_Colegio_San_José_2026-03-14.pdf", q.FileName())

	draft := quote.Quote{Store: "Oviedo", IssueDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "Cotizacion_Borrador_General_2026-03-14.pdf", draft.FileName())
}

func TestParseStatus(t *testing.T) {
	st, err := quote.ParseStatus("approved")
	require.NoError(t, err)
	assert.Equal(t, quote.StatusApproved, st)
	assert.Equal(t, "Aprobada", st.Label())

	_, err = quote.ParseStatus("APPROVED")
	assert.ErrorIs(t, err, quote.ErrStatusInvalid)
}
