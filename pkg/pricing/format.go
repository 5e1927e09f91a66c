package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// All catalog prices are stored in EUR; only display formatting varies by
// locale.
const BaseCurrencySymbol = "€"

// FormatPrice renders a base-currency amount for the given BCP 47 locale.
// Unparseable locales fall back to English.
func FormatPrice(amount float64, locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}

	p := message.NewPrinter(tag)
	return p.Sprintf("%s%v", BaseCurrencySymbol,
		number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
