package config

import "sort"

// currencyPresets are display settings offered by the setup wizard. Users
// may still configure any code and locale by hand.
var currencyPresets = map[string]CurrencyConfig{
	"AED": {Locale: "en-AE", Code: "AED"},
	"SAR": {Locale: "en-SA", Code: "SAR"},
	"QAR": {Locale: "en-QA", Code: "QAR"},
	"EGP": {Locale: "en-EG", Code: "EGP"},
	"USD": {Locale: "en-US", Code: "USD", MinFractionDigits: 2, MaxFractionDigits: 2},
	"EUR": {Locale: "de-DE", Code: "EUR", MinFractionDigits: 2, MaxFractionDigits: 2},
	"GBP": {Locale: "en-GB", Code: "GBP", MinFractionDigits: 2, MaxFractionDigits: 2},
	"INR": {Locale: "en-IN", Code: "INR"},
}

// LookupCurrency returns the preset for a currency code.
func LookupCurrency(code string) (CurrencyConfig, bool) {
	c, ok := currencyPresets[code]
	return c, ok
}

// CurrencyCodes returns the preset codes, sorted.
func CurrencyCodes() []string {
	codes := make([]string, 0, len(currencyPresets))
	for code := range currencyPresets {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
