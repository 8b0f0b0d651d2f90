package products

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPrice renders a price the way the storefront displays it:
// es-ES grouping with a trailing EUR, decimals shown only when the
// amount is not whole (e.g. "1.329 EUR", "1.329,50 EUR").
func FormatPrice(price decimal.Decimal) string {
	whole := price.Equal(price.Truncate(0))

	var intPart, fracPart string
	if whole {
		intPart = price.Truncate(0).String()
	} else {
		fixed := price.StringFixed(2)
		parts := strings.SplitN(fixed, ".", 2)
		intPart, fracPart = parts[0], parts[1]
	}

	negative := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if !whole {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	b.WriteString(" EUR")
	return b.String()
}
