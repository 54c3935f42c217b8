package rates

import (
	"math"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
)

// Rebase converts rates quoted per one oldBase into rates quoted per one newBase.
//
// The input is returned unchanged when the bases are equal, or when newBase is missing
// from rates or its rate is zero. That last case leaves the table anchored at oldBase
// and the caller has to cope with the mismatch.
func Rebase(rates entity.Rates, oldBase, newBase entity.CurrencyCode) entity.Rates {
	if oldBase == newBase {
		return rates
	}

	pivot, ok := rates[newBase]
	if !ok || pivot == 0 || math.IsNaN(pivot) {
		return rates
	}

	out := make(entity.Rates, len(rates)+1)
	for code, rate := range rates {
		out[code] = rate / pivot
	}
	out[oldBase] = 1 / pivot
	out[newBase] = 1

	return out
}

// Sanitize drops every rate that is not a finite positive number
func Sanitize(rates entity.Rates) entity.Rates {
	out := make(entity.Rates, len(rates))
	for code, rate := range rates {
		if rate > 0 && !math.IsInf(rate, 0) && !math.IsNaN(rate) {
			out[code] = rate
		}
	}
	return out
}
