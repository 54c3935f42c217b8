package rates

import "github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"

// fallbackTables are the last known rates, served when no live provider answers
var fallbackTables = map[entity.CurrencyCode]entity.Rates{
	"USD": {
		"EUR": 0.92,
		"GBP": 0.79,
		"NGN": 1650.0,
		"ZAR": 18.5,
		"KES": 129.0,
		"GHS": 15.8,
		"UGX": 3700.0,
		"TZS": 2500.0,
		"EGP": 49.5,
		"MAD": 10.2,
		"XOF": 605.0,
		"XAF": 605.0,
		"ETB": 125.0,
		"MUR": 46.5,
		"ZMW": 27.5,
		"BWP": 13.8,
		"JPY": 149.5,
		"CNY": 7.24,
		"INR": 83.2,
		"AUD": 1.52,
		"CAD": 1.36,
	},
	"EUR": {
		"USD": 1.09,
		"GBP": 0.86,
		"NGN": 1793.0,
		"ZAR": 20.1,
		"KES": 140.0,
		"GHS": 17.2,
		"UGX": 4020.0,
		"TZS": 2715.0,
		"EGP": 53.8,
		"MAD": 11.1,
		"XOF": 656.0,
		"XAF": 656.0,
		"ETB": 136.0,
		"MUR": 50.5,
		"ZMW": 29.9,
		"BWP": 15.0,
		"JPY": 162.5,
		"CNY": 7.87,
		"INR": 90.4,
		"AUD": 1.65,
		"CAD": 1.48,
	},
}

// FallbackRates returns the static rates anchored at base.
// Bases without their own table are derived from the USD table with Rebase; a base missing
// from the USD table too gets the USD table unchanged.
// The returned map is a copy and always carries rates[base] == 1.
func FallbackRates(base entity.CurrencyCode) entity.Rates {
	var out entity.Rates
	if table, ok := fallbackTables[base]; ok {
		out = table.Clone()
	} else {
		out = Rebase(fallbackTables[entity.DefaultBase], entity.DefaultBase, base).Clone()
	}
	out[base] = 1
	return out
}
