package quote

import (
	"math"
	"strconv"
	"strings"
)

// FormatCurrency renders an amount as Colombian-style pesos: "$" prefix,
// dot as thousands separator, fraction truncated. Non-finite input
// collapses to "$0".
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$0"
	}
	return FormatPesos(int64(math.Trunc(v)))
}

// FormatPesos is the int64 fast path used wherever money is already typed.
func FormatPesos(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	var b strings.Builder
	b.Grow(len(s) + len(s)/3 + 2)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte('.')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
