// Package gofpdf renders a quote document as a paginated A4 PDF with the
// company letterhead, a client block, the banded line-item table and the
// totals block. Layout is driven by an explicit vertical cursor so the
// page-break and row-height decisions stay testable.
package gofpdf

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"

	"github.com/alejomeek/cotizaciones/internal/domain/quote"
	"github.com/alejomeek/cotizaciones/internal/metrics"
)

var (
	colorPrimary = [3]int{4, 76, 125}
	colorFill    = [3]int{240, 240, 240}
	colorText    = [3]int{50, 50, 50}
	colorBorder  = [3]int{220, 220, 220}
)

const fontFamily = "Lato"

// Company is the letterhead identity block.
type Company struct {
	Name    string
	TaxID   string
	Phone   string
	Email   string
	Address string
}

type Options struct {
	Company          Company
	LogoPath         string
	FontDir          string // optional Lato TTFs; falls back to the core font
	FreightThreshold int64
	ImageTimeout     time.Duration
}

type Generator struct {
	opts    Options
	fetcher *imageFetcher
	logoOK  bool
}

func New(opts Options) *Generator {
	if opts.ImageTimeout <= 0 {
		opts.ImageTimeout = 5 * time.Second
	}
	g := &Generator{opts: opts, fetcher: newImageFetcher(opts.ImageTimeout)}
	// A missing or unreadable logo degrades to the company name as text.
	if opts.LogoPath != "" {
		if _, err := imaging.Open(opts.LogoPath); err == nil {
			g.logoOK = true
		}
	}
	return g
}

// doc bundles the pdf engine with the resolved font family and the
// codepage translator needed when running on the core font.
type doc struct {
	pdf  *gofpdf.Fpdf
	font string
	tr   func(string) string
}

func (d *doc) meter(style string, size float64) Meter {
	return meterFunc(func(s string) float64 {
		d.pdf.SetFont(d.font, style, size)
		return d.pdf.GetStringWidth(d.tr(s))
	})
}

func (g *Generator) Generate(q quote.Quote) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Cotización "+g.opts.Company.Name, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")

	d := &doc{pdf: pdf, font: "Arial", tr: pdf.UnicodeTranslatorFromDescriptor("")}
	if g.loadFonts(pdf) {
		d.font = fontFamily
		d.tr = func(s string) string { return s }
	}

	pdf.SetHeaderFunc(func() { g.drawLetterhead(d, q) })
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(d.font, "I", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 10, d.tr(fmt.Sprintf("Página %d/{nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	y := g.drawClientInfo(d, q)
	y += 5
	y = g.drawTableHeader(d, y)

	meter := d.meter("", 9)
	fill := true
	for _, it := range q.Items {
		y = g.drawRow(d, it, y, fill, meter)
		fill = !fill
	}

	g.drawTotals(d, q, y)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render quote pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render quote pdf: %w", err)
	}
	metrics.PDFRendered.Inc()
	return buf.Bytes(), nil
}

// loadFonts registers the Lato faces when all three TTFs are present.
// A partial set keeps the core font so rendering never depends on assets.
func (g *Generator) loadFonts(pdf *gofpdf.Fpdf) bool {
	if g.opts.FontDir == "" {
		return false
	}
	faces := map[string]string{
		"":  "Lato-Regular.ttf",
		"B": "Lato-Bold.ttf",
		"I": "Lato-Italic.ttf",
	}
	for _, file := range faces {
		if _, err := os.Stat(filepath.Join(g.opts.FontDir, file)); err != nil {
			return false
		}
	}
	for style, file := range faces {
		pdf.AddUTF8Font(fontFamily, style, filepath.Join(g.opts.FontDir, file))
	}
	return pdf.Error() == nil
}

// drawLetterhead runs on every page: logo (or name fallback), the company
// identity block right-aligned, then the page title and rule. It leaves
// the cursor at the content top for the page.
func (g *Generator) drawLetterhead(d *doc, q quote.Quote) {
	pdf := d.pdf
	if g.logoOK {
		pdf.ImageOptions(g.opts.LogoPath, pageLeft, 8, 45, 0, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
	} else {
		pdf.SetFont(d.font, "B", 14)
		setTextColor(pdf, colorText)
		pdf.SetXY(pageLeft, 15)
		pdf.CellFormat(0, 10, d.tr(strings.ToUpper(g.opts.Company.Name)), "", 1, "L", false, 0, "")
	}

	setTextColor(pdf, colorText)
	pdf.SetFont(d.font, "B", 9)
	const infoX = 120.0
	pdf.SetXY(infoX, 10)
	pdf.CellFormat(0, 5, d.tr(g.opts.Company.Name), "", 1, "R", false, 0, "")
	pdf.SetFont(d.font, "", 9)
	for _, line := range []string{
		"NIT: " + g.opts.Company.TaxID,
		"CEL: " + g.opts.Company.Phone,
		g.opts.Company.Email,
		g.opts.Company.Address,
	} {
		pdf.SetX(infoX)
		pdf.CellFormat(0, 5, d.tr(line), "", 1, "R", false, 0, "")
	}

	pdf.SetY(45)
	pdf.SetFont(d.font, "B", 22)
	setTextColor(pdf, colorPrimary)
	title := "COTIZACIÓN"
	if q.Number > 0 {
		title += " " + quote.FormatNumber(q.Store, q.Number)
	}
	pdf.CellFormat(0, 10, d.tr(title), "", 1, "L", false, 0, "")
	pdf.SetLineWidth(0.5)
	setDrawColor(pdf, colorPrimary)
	pdf.Line(pageLeft, pdf.GetY(), pageRight, pdf.GetY())
	pdf.Ln(5)
}

type labelValue struct {
	label string
	value string
	bold  bool
}

// drawClientInfo renders the two label/value columns; content after the
// block starts below whichever column ends up taller.
func (g *Generator) drawClientInfo(d *doc, q quote.Quote) float64 {
	pdf := d.pdf
	pdf.Ln(5)
	pdf.SetFont(d.font, "B", 11)
	setTextColor(pdf, colorPrimary)
	pdf.CellFormat(0, 8, d.tr("Información del Cliente"), "", 1, "L", false, 0, "")
	setTextColor(pdf, colorText)

	yStart := pdf.GetY()
	addr := q.Client.Address
	if q.Client.City != "" {
		if addr != "" {
			addr += ", "
		}
		addr += q.Client.City
	}
	day := q.IssueDate
	if day.IsZero() {
		day = time.Now()
	}

	left := []labelValue{
		{"Cliente:", q.Client.Name, true},
		{"NIT/CC:", q.Client.TaxID, false},
		{"Dirección:", addr, false},
		{"Correo:", q.Client.Email, false},
	}
	right := []labelValue{
		{"Fecha:", day.Format("02/01/2006"), false},
		{"Teléfono:", q.Client.Phone, false},
		{"Vigencia:", q.Validity, false},
		{"Forma de pago:", q.PaymentTerms, false},
	}

	yLeft := g.drawLabelColumn(d, pageLeft, yStart, left)
	yRight := g.drawLabelColumn(d, 110, yStart, right)

	y := math.Max(yLeft, yRight) + 5
	pdf.SetY(y)
	return y
}

func (g *Generator) drawLabelColumn(d *doc, x, y float64, rows []labelValue) float64 {
	pdf := d.pdf
	const labelW, valueW, rowH = 28.0, 62.0, 6.0
	for _, lv := range rows {
		pdf.SetFont(d.font, "", 10)
		pdf.SetXY(x, y)
		pdf.CellFormat(labelW, rowH, d.tr(lv.label), "", 0, "L", false, 0, "")
		style := ""
		if lv.bold {
			style = "B"
		}
		// Measure with the style the value is drawn in; bold glyphs run
		// wider and would otherwise overflow the column.
		lines := SplitLines(d.meter(style, 10), lv.value, valueW)
		pdf.SetFont(d.font, style, 10)
		for i, line := range lines {
			pdf.SetXY(x+labelW, y+float64(i)*rowH)
			pdf.CellFormat(valueW, rowH, d.tr(line), "", 0, "L", false, 0, "")
		}
		y += float64(len(lines)) * rowH
	}
	return y
}

func (g *Generator) drawTableHeader(d *doc, y float64) float64 {
	pdf := d.pdf
	pdf.SetFont(d.font, "B", 9)
	setFillColor(pdf, colorPrimary)
	pdf.SetTextColor(255, 255, 255)
	setDrawColor(pdf, colorPrimary)
	pdf.SetLineWidth(0.3)
	pdf.SetXY(pageLeft, y)
	for _, c := range []struct {
		w   float64
		txt string
	}{
		{tableCols.img, "IMAGEN"},
		{tableCols.name, "PRODUCTO"},
		{tableCols.sku, "CÓDIGO"},
		{tableCols.qty, "UNDS."},
		{tableCols.price, "VLR. UNITARIO"},
		{tableCols.total, "VALOR TOTAL"},
	} {
		pdf.CellFormat(c.w, 8, d.tr(c.txt), "T", 0, "C", true, 0, "")
	}
	return y + 8
}

// drawRow lays out one line item and returns the new cursor. When the row
// would cross the page bottom it opens a fresh page and repeats the table
// header first; rows are never split across pages.
func (g *Generator) drawRow(d *doc, it quote.LineItem, y float64, fill bool, meter Meter) float64 {
	pdf := d.pdf
	lines := SplitLines(meter, it.Name, tableCols.name-cellInset)
	rowH := rowHeight(len(lines))

	if y+rowH > pageBottom {
		pdf.AddPage()
		y = g.drawTableHeader(d, pdf.GetY())
	}

	// Band and bottom border first so the cell content paints on top.
	setFillColor(pdf, colorFill)
	setDrawColor(pdf, colorBorder)
	pdf.SetLineWidth(0.3)
	x := pageLeft
	for _, w := range []float64{tableCols.img, tableCols.name, tableCols.sku, tableCols.qty, tableCols.price, tableCols.total} {
		pdf.SetXY(x, y)
		pdf.CellFormat(w, rowH, "", "B", 0, "C", fill, 0, "")
		x += w
	}

	setTextColor(pdf, colorText)
	g.drawItemImage(d, it, pageLeft, y, rowH)

	pdf.SetFont(d.font, "", 9)
	nameH := float64(len(lines)) * lineHeight
	nameY := y + (rowH-nameH)/2
	for i, line := range lines {
		pdf.SetXY(pageLeft+tableCols.img, nameY+float64(i)*lineHeight)
		pdf.CellFormat(tableCols.name, lineHeight, d.tr(line), "", 0, "C", false, 0, "")
	}

	cy := y + (rowH-lineHeight)/2
	pdf.SetXY(pageLeft+tableCols.img+tableCols.name, cy)
	pdf.CellFormat(tableCols.sku, lineHeight, d.tr(it.Code), "", 0, "C", false, 0, "")
	pdf.CellFormat(tableCols.qty, lineHeight, strconv.Itoa(it.Qty), "", 0, "C", false, 0, "")
	pdf.CellFormat(tableCols.price, lineHeight, quote.FormatPesos(it.UnitPrice), "", 0, "R", false, 0, "")
	pdf.CellFormat(tableCols.total, lineHeight, quote.FormatPesos(it.LineTotal), "", 0, "R", false, 0, "")

	return y + rowH
}

// drawItemImage fits the product picture into the image cell; any fetch or
// decode problem degrades to the "S/I" placeholder without touching the
// row geometry.
func (g *Generator) drawItemImage(d *doc, it quote.LineItem, x, y, rowH float64) {
	pdf := d.pdf
	boxW, boxH := tableCols.img-2*cellInset, rowH-2*cellInset

	img, err := g.fetcher.fetch(it)
	if err == nil {
		buf, encErr := encodeJPEG(img)
		if encErr == nil {
			name := "item-" + it.Code
			info := pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "JPEG"}, buf)
			if info != nil && pdf.Error() == nil {
				w, h := fitBox(info.Width(), info.Height(), boxW, boxH)
				pdf.ImageOptions(name, x+cellInset+(boxW-w)/2, y+cellInset+(boxH-h)/2, w, h, false, gofpdf.ImageOptions{ImageType: "JPEG"}, 0, "")
				return
			}
		}
		err = encErr
	}
	if err != nil && err != errNoImage {
		metrics.ImageFetchFailures.Inc()
	}

	pdf.SetFont(d.font, "", 9)
	pdf.SetXY(x, y+(rowH-rowPadding)/2)
	pdf.CellFormat(tableCols.img, 4, "S/I", "", 0, "C", false, 0, "")
}

func (g *Generator) drawTotals(d *doc, q quote.Quote, y float64) float64 {
	pdf := d.pdf
	if y > totalsBreakY {
		pdf.AddPage()
		y = pdf.GetY()
	}
	t := q.Totals(g.opts.FreightThreshold)

	const labelX, labelW, valueW = 100.0, 70.0, 30.0
	y += 5
	setTextColor(pdf, colorText)
	for _, lv := range []labelValue{
		{"SUBTOTAL", quote.FormatPesos(t.Subtotal), false},
		{"FLETE", t.Freight.Label, false},
		{"TOTAL UNIDADES", strconv.Itoa(t.Units), false},
	} {
		pdf.SetXY(labelX, y)
		pdf.SetFont(d.font, "", 10)
		pdf.CellFormat(labelW, 8, d.tr(lv.label), "", 0, "R", false, 0, "")
		pdf.SetFont(d.font, "B", 10)
		pdf.CellFormat(valueW, 8, d.tr(lv.value), "", 0, "R", false, 0, "")
		y += 8
	}

	setDrawColor(pdf, colorBorder)
	pdf.Line(labelX+5, y, pageRight, y)
	y += 2

	pdf.SetXY(labelX, y)
	pdf.SetFont(d.font, "B", 11)
	setTextColor(pdf, colorPrimary)
	pdf.CellFormat(labelW, 10, d.tr("TOTAL COTIZACIÓN INCLUIDO IVA"), "", 0, "R", false, 0, "")
	pdf.SetFont(d.font, "B", 12)
	pdf.CellFormat(valueW, 10, quote.FormatPesos(t.GrandTotal), "", 0, "R", false, 0, "")
	return y + 10
}

func fitBox(imgW, imgH, boxW, boxH float64) (float64, float64) {
	if imgW <= 0 || imgH <= 0 {
		return boxW, boxH
	}
	scale := math.Min(boxW/imgW, boxH/imgH)
	return imgW * scale, imgH * scale
}

func setTextColor(pdf *gofpdf.Fpdf, c [3]int) { pdf.SetTextColor(c[0], c[1], c[2]) }
func setDrawColor(pdf *gofpdf.Fpdf, c [3]int) { pdf.SetDrawColor(c[0], c[1], c[2]) }
func setFillColor(pdf *gofpdf.Fpdf, c [3]int) { pdf.SetFillColor(c[0], c[1], c[2]) }
