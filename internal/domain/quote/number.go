package quote

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// StorePrefix derives the two-letter code used in printed quote numbers,
// e.g. "Oviedo" -> "OV", "Barranquilla" -> "BA".
func StorePrefix(store string) string {
	r := []rune(strings.TrimSpace(store))
	if len(r) == 0 {
		return "XX"
	}
	if len(r) == 1 {
		r = append(r, 'X')
	}
	return strings.ToUpper(string(r[:2]))
}

// FormatNumber renders the human-readable quote identifier, e.g. "OV-0012".
func FormatNumber(store string, n int64) string {
	return fmt.Sprintf("%s-%04d", StorePrefix(store), n)
}

// FileName builds the download name for the rendered PDF. Drafts without a
// sequence number are labelled Borrador.
func (q *Quote) FileName() string {
	num := "Borrador"
	if q.Number > 0 {
		num = FormatNumber(q.Store, q.Number)
	}
	client := "General"
	if q.Client.Name != "" {
		client = sanitizeFileName(q.Client.Name)
	}
	day := q.IssueDate
	if day.IsZero() {
		day = time.Now()
	}
	return fmt.Sprintf("Cotizacion_%s_%s_%s.pdf", num, client, day.Format("2006-01-02"))
}

func sanitizeFileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, s)
}
