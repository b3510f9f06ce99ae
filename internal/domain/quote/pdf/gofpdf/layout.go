package gofpdf

import "strings"

// Layout constants of the printed A4 form, in millimetres.
const (
	pageLeft     = 10.0
	pageRight    = 200.0
	pageBottom   = 270.0 // rows never start past this line
	totalsBreakY = 225.0 // totals move to a fresh page beyond this
	lineHeight   = 5.0
	minRowHeight = 30.0 // leaves room for the product image
	rowPadding   = 4.0
	cellInset    = 2.0
)

type colWidths struct {
	img, name, sku, qty, price, total float64
}

var tableCols = colWidths{img: 30, name: 70, sku: 20, qty: 15, price: 25, total: 30}

// Meter measures rendered string widths for the current table font. The
// wrap logic is written against this interface so it can be tested with a
// fixed-width fake.
type Meter interface {
	StringWidth(s string) float64
}

type meterFunc func(string) float64

func (f meterFunc) StringWidth(s string) float64 { return f(s) }

// SplitLines wraps text greedily word by word into lines no wider than
// width. A word is only broken when it alone exceeds the width, in which
// case it is cut proportionally to its measured width. The renderer draws
// exactly these lines, so the measured count always matches the page.
func SplitLines(m Meter, text string, width float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	spaceW := m.StringWidth(" ")
	var lines []string
	var cur string
	var curW float64

	flush := func() {
		if cur != "" {
			lines = append(lines, cur)
			cur, curW = "", 0
		}
	}

	for _, word := range words {
		for m.StringWidth(word) > width {
			flush()
			cut := cutToWidth(m, word, width)
			lines = append(lines, word[:cut])
			word = word[cut:]
		}
		w := m.StringWidth(word)
		switch {
		case cur == "":
			cur, curW = word, w
		case curW+spaceW+w <= width:
			cur += " " + word
			curW += spaceW + w
		default:
			lines = append(lines, cur)
			cur, curW = word, w
		}
	}
	flush()
	return lines
}

// cutToWidth returns the byte length of the widest prefix of word that
// still fits. At least one rune is always taken so progress is guaranteed:
// a lone rune wider than the column is emitted whole as an over-wide line.
func cutToWidth(m Meter, word string, width float64) int {
	r := []rune(word)
	if len(r) == 1 {
		return len(word)
	}
	n := int(float64(len(r)) * width / m.StringWidth(word))
	if n < 1 {
		n = 1
	}
	if n > len(r)-1 {
		n = len(r) - 1
	}
	for n > 1 && m.StringWidth(string(r[:n])) > width {
		n--
	}
	for n < len(r)-1 && m.StringWidth(string(r[:n+1])) <= width {
		n++
	}
	return len(string(r[:n]))
}

// rowHeight adapts the table row to its wrapped product name while keeping
// the minimum needed by the image cell.
func rowHeight(lines int) float64 {
	h := float64(lines)*lineHeight + rowPadding
	if h < minRowHeight {
		return minRowHeight
	}
	return h
}
