// Package currency holds the supported currency set and the USD-pivot
// converter used to express stored amounts in the active display currency.
package currency

// Option describes one selectable currency.
type Option struct {
	Code   string
	Symbol string
	Name   string
}

// Default is the display currency for fresh installs and the pivot currency of
// the rate table.
const Default = "USD"

// Options lists the supported currencies in menu order.
var Options = []Option{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "TRY", Symbol: "₺", Name: "Turkish Lira"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "CHF", Symbol: "Fr", Name: "Swiss Franc"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
}

// ByCode returns the option for a currency code, or false if unsupported.
func ByCode(code string) (Option, bool) {
	for _, o := range Options {
		if o.Code == code {
			return o, true
		}
	}
	return Option{}, false
}

// Symbol returns the display symbol for a code, falling back to the code
// itself for anything outside the supported set.
func Symbol(code string) string {
	if o, ok := ByCode(code); ok {
		return o.Symbol
	}
	return code
}
