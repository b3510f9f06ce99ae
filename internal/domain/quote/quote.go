package quote

import "time"

// ItemSource distinguishes catalog lookups from hand-entered products.
// Manual items may carry an inline image blob instead of a catalog URL.
type ItemSource string

const (
	SourceCatalog ItemSource = "catalog"
	SourceManual  ItemSource = "manual"
)

type LineItem struct {
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Qty       int        `json:"qty"`
	UnitPrice int64      `json:"unit_price"`
	LineTotal int64      `json:"line_total"`
	Source    ItemSource `json:"source"`
	ImageURL  string     `json:"image_url,omitempty"`
	ImageData []byte     `json:"image_data,omitempty"`
}

type Client struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Quote is the full cotización document. Items keep insertion order and
// are unique by code; LineTotal is recomputed on every mutation.
type Quote struct {
	ID           string     `json:"id,omitempty"`
	Store        string     `json:"store"`
	IssueDate    time.Time  `json:"issue_date"`
	Client       Client     `json:"client"`
	PaymentTerms string     `json:"payment_terms"`
	Validity     string     `json:"validity"`
	Items        []LineItem `json:"items"`
	Number       int64      `json:"number,omitempty"`
	Status       Status     `json:"status,omitempty"`
	Comments     string     `json:"comments"`
}

type Freight struct {
	Label  string `json:"label"`
	Charge int64  `json:"charge"`
}

type Totals struct {
	Subtotal   int64   `json:"subtotal"`
	Units      int     `json:"units"`
	Freight    Freight `json:"freight"`
	GrandTotal int64   `json:"grand_total"`
}

const (
	FreightIncluded = "INCLUIDO"
	FreightToAgree  = "A convenir"
)

func (it LineItem) validate() error {
	if it.Code == "" {
		return ErrItemCodeRequired
	}
	if it.Name == "" {
		return ErrItemNameRequired
	}
	if it.Qty <= 0 {
		return ErrItemQtyInvalid
	}
	if it.UnitPrice < 0 {
		return ErrItemPriceInvalid
	}
	return nil
}

// Add appends a validated item, or increments the quantity of an item
// already in the quote with the same code.
func (q *Quote) Add(it LineItem) error {
	if err := it.validate(); err != nil {
		return err
	}
	for i := range q.Items {
		if q.Items[i].Code == it.Code {
			q.Items[i].Qty += it.Qty
			q.Items[i].LineTotal = int64(q.Items[i].Qty) * q.Items[i].UnitPrice
			return nil
		}
	}
	it.LineTotal = int64(it.Qty) * it.UnitPrice
	q.Items = append(q.Items, it)
	return nil
}

// Remove drops the item with the given code. Reports whether it was present.
func (q *Quote) Remove(code string) bool {
	for i := range q.Items {
		if q.Items[i].Code == code {
			q.Items = append(q.Items[:i], q.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (q *Quote) Item(code string) (LineItem, bool) {
	for _, it := range q.Items {
		if it.Code == code {
			return it, true
		}
	}
	return LineItem{}, false
}

func (q *Quote) Subtotal() int64 {
	var sum int64
	for _, it := range q.Items {
		sum += it.LineTotal
	}
	return sum
}

func (q *Quote) TotalUnits() int {
	var n int
	for _, it := range q.Items {
		n += it.Qty
	}
	return n
}

// FreightFor applies the shipping policy: orders at or above the threshold
// ship included, smaller ones are arranged with the client. The charge is
// zero either way; the label is what changes on the printed quote.
func FreightFor(subtotal, threshold int64) Freight {
	if subtotal >= threshold {
		return Freight{Label: FreightIncluded}
	}
	return Freight{Label: FreightToAgree}
}

func (q *Quote) Totals(freightThreshold int64) Totals {
	sub := q.Subtotal()
	fr := FreightFor(sub, freightThreshold)
	return Totals{
		Subtotal:   sub,
		Units:      q.TotalUnits(),
		Freight:    fr,
		GrandTotal: sub + fr.Charge,
	}
}
