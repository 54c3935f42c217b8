// Package rates holds the static currency data and the pure rate arithmetic used by the services
package rates

import (
	"sort"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
)

var catalog = []entity.Currency{
	// Major
	{Code: "USD", Name: "US Dollar", Region: "Americas"},
	{Code: "EUR", Name: "Euro", Region: "Europe"},
	{Code: "GBP", Name: "British Pound", Region: "Europe"},
	{Code: "JPY", Name: "Japanese Yen", Region: "Asia"},
	{Code: "CHF", Name: "Swiss Franc", Region: "Europe"},
	{Code: "CAD", Name: "Canadian Dollar", Region: "Americas"},
	{Code: "AUD", Name: "Australian Dollar", Region: "Oceania"},
	{Code: "CNY", Name: "Chinese Yuan", Region: "Asia"},

	// Africa
	{Code: "ZAR", Name: "South African Rand", Region: "Africa"},
	{Code: "NGN", Name: "Nigerian Naira", Region: "Africa"},
	{Code: "KES", Name: "Kenyan Shilling", Region: "Africa"},
	{Code: "GHS", Name: "Ghanaian Cedi", Region: "Africa"},
	{Code: "UGX", Name: "Ugandan Shilling", Region: "Africa"},
	{Code: "TZS", Name: "Tanzanian Shilling", Region: "Africa"},
	{Code: "EGP", Name: "Egyptian Pound", Region: "Africa"},
	{Code: "MAD", Name: "Moroccan Dirham", Region: "Africa"},
	{Code: "XOF", Name: "West African CFA Franc", Region: "Africa"},
	{Code: "XAF", Name: "Central African CFA Franc", Region: "Africa"},
	{Code: "ETB", Name: "Ethiopian Birr", Region: "Africa"},
	{Code: "ZMW", Name: "Zambian Kwacha", Region: "Africa"},
	{Code: "BWP", Name: "Botswana Pula", Region: "Africa"},
	{Code: "MUR", Name: "Mauritian Rupee", Region: "Africa"},
	{Code: "NAD", Name: "Namibian Dollar", Region: "Africa"},
	{Code: "RWF", Name: "Rwandan Franc", Region: "Africa"},

	// Other
	{Code: "INR", Name: "Indian Rupee", Region: "Asia"},
	{Code: "BRL", Name: "Brazilian Real", Region: "Americas"},
	{Code: "MXN", Name: "Mexican Peso", Region: "Americas"},
	{Code: "SGD", Name: "Singapore Dollar", Region: "Asia"},
	{Code: "HKD", Name: "Hong Kong Dollar", Region: "Asia"},
	{Code: "NZD", Name: "New Zealand Dollar", Region: "Oceania"},
	{Code: "SEK", Name: "Swedish Krona", Region: "Europe"},
	{Code: "NOK", Name: "Norwegian Krone", Region: "Europe"},
	{Code: "DKK", Name: "Danish Krone", Region: "Europe"},
	{Code: "PLN", Name: "Polish Zloty", Region: "Europe"},
	{Code: "THB", Name: "Thai Baht", Region: "Asia"},
	{Code: "MYR", Name: "Malaysian Ringgit", Region: "Asia"},
	{Code: "IDR", Name: "Indonesian Rupiah", Region: "Asia"},
	{Code: "PHP", Name: "Philippine Peso", Region: "Asia"},
	{Code: "AED", Name: "UAE Dirham", Region: "Middle East"},
	{Code: "SAR", Name: "Saudi Riyal", Region: "Middle East"},
}

// Currencies returns a copy of the full currency catalog in display order
func Currencies() []entity.Currency {
	out := make([]entity.Currency, len(catalog))
	copy(out, catalog)
	return out
}

// CurrencyByCode looks up a catalog entry
func CurrencyByCode(code entity.CurrencyCode) (entity.Currency, bool) {
	for _, c := range catalog {
		if c.Code == code {
			return c, true
		}
	}
	return entity.Currency{}, false
}

// CurrenciesByRegion returns the catalog entries of one region in display order
func CurrenciesByRegion(region string) []entity.Currency {
	out := make([]entity.Currency, 0)
	for _, c := range catalog {
		if c.Region == region {
			out = append(out, c)
		}
	}
	return out
}

// Regions returns the distinct catalog regions, sorted
func Regions() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, c := range catalog {
		if _, ok := seen[c.Region]; ok {
			continue
		}
		seen[c.Region] = struct{}{}
		out = append(out, c.Region)
	}
	sort.Strings(out)
	return out
}
