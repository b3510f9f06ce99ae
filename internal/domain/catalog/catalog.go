// Package catalog parses the product feed exported from the web store and
// keeps the loaded entries in memory, one catalog per physical store.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Entry is one product row of the imported feed.
type Entry struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"image_url"`
	Stock    int    `json:"stock"`
}

var ErrMissingColumns = errors.New("catalog feed is missing required columns")

const (
	wixMediaBase        = "https://static.wixstatic.com/media/"
	placeholderImageURL = "https://placehold.co/100x100/EEE/333?text=S/I"
)

var feedColumns = []string{"sku", "name", "price", "productImageUrl", "inventory"}

// ParseCSV reads a Wix CSV export. Rows missing sku or name are dropped;
// a non-numeric inventory value defaults to zero.
func ParseCSV(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read feed header: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read feed row: %w", err)
		}
		if e, ok := entryFromRow(rec, idx); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// ParseXLSX reads the same feed as an Excel workbook (first sheet).
func ParseXLSX(r io.Reader) ([]Entry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx feed: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrMissingColumns
	}
	idx, err := columnIndex(rows[0])
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, rec := range rows[1:] {
		if e, ok := entryFromRow(rec, idx); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(feedColumns))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range feedColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumns, col)
		}
	}
	return idx, nil
}

func entryFromRow(rec []string, idx map[string]int) (Entry, bool) {
	field := func(col string) string {
		i := idx[col]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	sku := field("sku")
	name := field("name")
	if sku == "" || name == "" {
		return Entry{}, false
	}
	return Entry{
		SKU:      sku,
		Name:     name,
		Price:    parsePrice(field("price")),
		ImageURL: resolveImageURL(field("productImageUrl")),
		Stock:    parseStock(field("inventory")),
	}, true
}

// parsePrice truncates fractional feed prices to whole pesos, the same
// floor the currency formatter applies on display.
func parsePrice(s string) int64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int64(math.Trunc(v))
}

func parseStock(s string) int {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(v)
}

// resolveImageURL maps the Wix media reference (first segment of a
// ;-separated list) onto the public CDN, falling back to a placeholder.
func resolveImageURL(raw string) string {
	if raw == "" {
		return placeholderImageURL
	}
	return wixMediaBase + strings.SplitN(raw, ";", 2)[0]
}
