package catalog

import (
	"strings"

	"github.com/saturnines/polar-sync/pkg/polar"
)

const defaultCurrency = "usd"

// SelectPrice prefers the first one-time price, then the first price of
// any type. ok is false when the product has no prices at all.
func SelectPrice(prices []polar.Price) (price polar.Price, ok bool) {
	for _, p := range prices {
		if p.Type == polar.PriceTypeOneTime {
			return p, true
		}
	}
	if len(prices) > 0 {
		return prices[0], true
	}
	return polar.Price{}, false
}

// CurrencyCode upper-cases the price currency, falling back to USD.
func CurrencyCode(p polar.Price) string {
	if p.PriceCurrency == "" {
		return strings.ToUpper(defaultCurrency)
	}
	return strings.ToUpper(p.PriceCurrency)
}
