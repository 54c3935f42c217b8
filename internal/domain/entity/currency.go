package entity

import "strings"

// CurrencyCode is a three letter ISO-4217 style currency identifier such as "USD"
type CurrencyCode string

// DefaultBase is the base currency used when a caller does not name one
const DefaultBase CurrencyCode = "USD"

// NormalizeCurrencyCode trims and upper-cases a raw currency code
func NormalizeCurrencyCode(raw string) CurrencyCode {
	return CurrencyCode(strings.ToUpper(strings.TrimSpace(raw)))
}

// Valid reports whether the code is exactly three upper-case ASCII letters
func (c CurrencyCode) Valid() bool {
	if len(c) != 3 {
		return false
	}
	for i := 0; i < len(c); i++ {
		if c[i] < 'A' || c[i] > 'Z' {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer
func (c CurrencyCode) String() string {
	return string(c)
}

// Currency is a catalog entry describing a currency the bureau can trade
type Currency struct {
	Code   CurrencyCode `json:"code"`
	Name   string       `json:"name"`
	Region string       `json:"region"`
}
