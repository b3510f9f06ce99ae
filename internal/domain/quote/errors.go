package quote

import "errors"

var (
	// ErrStoreRequired: every quote belongs to one physical store.
	ErrStoreRequired = errors.New("store is required")
	// ErrClientNameRequired: a quote cannot be saved without at least the client name.
	ErrClientNameRequired = errors.New("client name is required")
	// ErrItemsRequired: a quote must carry at least one line item to be saved.
	ErrItemsRequired = errors.New("quote must contain at least one item")
	// ErrItemCodeRequired: line items are keyed by product code.
	ErrItemCodeRequired = errors.New("item code is required")
	// ErrItemNameRequired: line items need a printable product name.
	ErrItemNameRequired = errors.New("item name is required")
	// ErrItemQtyInvalid: quantities are strictly positive integers.
	ErrItemQtyInvalid = errors.New("item qty must be greater than zero")
	// ErrItemPriceInvalid: unit prices are non-negative pesos.
	ErrItemPriceInvalid = errors.New("item price must be non-negative")
	// ErrNotFound is returned when a quote id is absent from the repository.
	ErrNotFound = errors.New("quote not found")
	// ErrStatusInvalid is returned for status values outside the fixed set.
	ErrStatusInvalid = errors.New("invalid quote status")
)

// IsValidation reports whether err is a user-input problem rather than a
// persistence or rendering failure.
func IsValidation(err error) bool {
	for _, e := range []error{
		ErrStoreRequired, ErrClientNameRequired, ErrItemsRequired,
		ErrItemCodeRequired, ErrItemNameRequired, ErrItemQtyInvalid,
		ErrItemPriceInvalid, ErrStatusInvalid,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
