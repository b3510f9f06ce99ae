package gofpdf

import (
	"bytes"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejomeek/cotizaciones/internal/domain/quote"
)

var testCompany = Company{
	Name:    "DIDACTICOS JUGANDO Y EDUCANDO SAS",
	TaxID:   "901144615-6",
	Phone:   "3153357921",
	Email:   "jugandoyeducando@hotmail.com",
	Address: "Avenida 19 # 114A - 22, Bogota",
}

func newTestGenerator() *Generator {
	return New(Options{Company: testCompany, FreightThreshold: 1_000_000, ImageTimeout: time.Second})
}

func sampleQuote(items ...quote.LineItem) quote.Quote {
	q := quote.Quote{
		Store:        "Oviedo",
		Number:       12,
		IssueDate:    time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		Client:       quote.Client{Name: "Colegio San José", TaxID: "900123456", City: "Medellín", Phone: "3001234567"},
		PaymentTerms: "Transferencia bancaria",
		Validity:     "5 DÍAS HÁBILES",
	}
	for _, it := range items {
		if err := q.Add(it); err != nil {
			panic(err)
		}
	}
	return q
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	img := imaging.New(40, 40, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.JPEG))
	return buf.Bytes()
}

func TestGenerateSmoke(t *testing.T) {
	g := newTestGenerator()
	q := sampleQuote(
		quote.LineItem{Code: "A1", Name: "Bloques de madera x50", Qty: 2, UnitPrice: 45_500},
		quote.LineItem{Code: "B2", Name: "Rompecabezas", Qty: 1, UnitPrice: 28_000},
	)

	out, err := g.Generate(q)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateDraftWithoutNumber(t *testing.T) {
	g := newTestGenerator()
	q := sampleQuote(quote.LineItem{Code: "A1", Name: "Bloques", Qty: 1, UnitPrice: 1000})
	q.Number = 0

	out, err := g.Generate(q)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateSurvivesBrokenImageURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	g := newTestGenerator()
	q := sampleQuote(quote.LineItem{Code: "A1", Name: "Bloques", Qty: 1, UnitPrice: 1000, ImageURL: srv.URL + "/x.jpg"})

	out, err := g.Generate(q)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateSurvivesGarbageImageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not an image at all"))
	}))
	defer srv.Close()

	g := newTestGenerator()
	q := sampleQuote(quote.LineItem{Code: "A1", Name: "Bloques", Qty: 1, UnitPrice: 1000, ImageURL: srv.URL + "/x.jpg"})

	out, err := g.Generate(q)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateEmbedsRemoteImage(t *testing.T) {
	body := jpegBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	g := newTestGenerator()
	q := sampleQuote(quote.LineItem{Code: "A1", Name: "Bloques", Qty: 1, UnitPrice: 1000, ImageURL: srv.URL + "/x.jpg"})

	out, err := g.Generate(q)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	// Embedded JPEGs make the file noticeably bigger than a text-only render.
	plain, err := g.Generate(sampleQuote(quote.LineItem{Code: "A1", Name: "Bloques", Qty: 1, UnitPrice: 1000}))
	require.NoError(t, err)
	assert.Greater(t, len(out), len(plain))
}

func TestGenerateInlineImage(t *testing.T) {
	g := newTestGenerator()
	q := sampleQuote(quote.LineItem{
		Code: "M1", Name: "Producto manual", Qty: 1, UnitPrice: 5000,
		Source: quote.SourceManual, ImageData: jpegBytes(t),
	})

	out, err := g.Generate(q)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateManyItemsPaginates(t *testing.T) {
	g := newTestGenerator()
	var items []quote.LineItem
	for i := 0; i < 25; i++ {
		items = append(items, quote.LineItem{
			Code: "P" + string(rune('A'+i)), Name: "Producto de prueba", Qty: 1, UnitPrice: 10_000,
		})
	}
	q := sampleQuote(items...)

	out, err := g.Generate(q)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	// 25 rows at 30mm minimum cannot fit one A4 page. Each page adds a
	// "/Type /Page" object on top of the single "/Type /Pages" root.
	assert.GreaterOrEqual(t, bytes.Count(out, []byte("/Type /Page")), 3)
}

func TestGenerateVeryLongName(t *testing.T) {
	g := newTestGenerator()
	q := sampleQuote(quote.LineItem{
		Code: "L1", Name: strings.Repeat("referencia", 20), Qty: 1, UnitPrice: 1000,
	})

	out, err := g.Generate(q)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateLongBoldClientName(t *testing.T) {
	g := newTestGenerator()
	q := sampleQuote(quote.LineItem{Code: "A1", Name: "Bloques", Qty: 1, UnitPrice: 1000})
	// The client name renders bold and wraps over several value-column
	// lines in the client block.
	q.Client.Name = strings.Repeat("Corporación Educativa del Norte ", 4)

	out, err := g.Generate(q)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestFitBox(t *testing.T) {
	w, h := fitBox(200, 100, 26, 26)
	assert.InDelta(t, 26, w, 0.001)
	assert.InDelta(t, 13, h, 0.001)

	w, h = fitBox(100, 200, 26, 26)
	assert.InDelta(t, 13, w, 0.001)
	assert.InDelta(t, 26, h, 0.001)
}

func TestDownscaleCapsLargeImages(t *testing.T) {
	big := imaging.New(1200, 900, color.NRGBA{A: 255})
	small := downscale(big)
	b := small.Bounds()
	assert.LessOrEqual(t, b.Dx(), maxImageDim)
	assert.LessOrEqual(t, b.Dy(), maxImageDim)

	ok := imaging.New(100, 100, color.NRGBA{A: 255})
	assert.Equal(t, image.Rect(0, 0, 100, 100), downscale(ok).Bounds())
}
