package service

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatAmount 千分位、無小數，例如 152,000
func FormatAmount(amount float64) string {
	return printer.Sprintf("%.0f", amount)
}

// FormatCurrency 例如 PKR 38,000
func FormatCurrency(amount float64) string {
	return "PKR " + FormatAmount(amount)
}
