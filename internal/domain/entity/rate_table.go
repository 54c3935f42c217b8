package entity

import "time"

// Provenance tags which source produced a rate table
type Provenance string

const (
	// ProvenanceExchangeRateV6 is the keyed ExchangeRate-API v6 tier
	ProvenanceExchangeRateV6 Provenance = "exchangerate-api-v6"
	// ProvenanceFrankfurter is the free Frankfurter API (ECB reference currencies only)
	ProvenanceFrankfurter Provenance = "frankfurter"
	// ProvenanceExchangeRateFree is the free ExchangeRate-API v4 tier
	ProvenanceExchangeRateFree Provenance = "exchangerate-api-free"
	// ProvenanceFallback marks the static table used when every provider declined
	ProvenanceFallback Provenance = "fallback"
	// ProvenanceFallbackError marks the static table used after an unexpected fault
	ProvenanceFallbackError Provenance = "fallback-error"
)

// IsFallback reports whether the table came from the static fallback data
func (p Provenance) IsFallback() bool {
	return p == ProvenanceFallback || p == ProvenanceFallbackError
}

// Label returns the operator-facing description of the source
func (p Provenance) Label() string {
	switch p {
	case ProvenanceExchangeRateV6:
		return "Live rates via ExchangeRate-API.com"
	case ProvenanceFrankfurter:
		return "Live rates via Frankfurter API (limited currencies)"
	case ProvenanceExchangeRateFree:
		return "Live rates (free tier)"
	case ProvenanceFallback, ProvenanceFallbackError:
		return "Using cached rates (API temporarily unavailable)"
	default:
		return ""
	}
}

// Rates maps a currency code to the number of units of that currency per one unit of the base
type Rates map[CurrencyCode]float64

// Clone returns an independent copy of the rates
func (r Rates) Clone() Rates {
	out := make(Rates, len(r))
	for code, rate := range r {
		out[code] = rate
	}
	return out
}

// ProviderRates is the canonical shape every rate provider normalizes its response into
type ProviderRates struct {
	Base  CurrencyCode `json:"base"`
	Date  string       `json:"date"`
	Rates Rates        `json:"rates"`
}

// RateTable is a complete, immutable set of conversion rates anchored at Base
type RateTable struct {
	Base        CurrencyCode `json:"base"`
	Date        string       `json:"date"`
	Rates       Rates        `json:"rates"`
	Provenance  Provenance   `json:"source"`
	Timestamp   time.Time    `json:"timestamp"`
	NeedsAPIKey bool         `json:"needsApiKey"`
}

// Rate looks up the rate for code
func (t *RateTable) Rate(code CurrencyCode) (float64, bool) {
	if t == nil {
		return 0, false
	}
	rate, ok := t.Rates[code]
	return rate, ok
}
