package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatCents renders an integer cent amount as a grouped decimal string with
// currency code, e.g. 150000 -> "1,500.00 ZAR". Used by DTOs and notification
// bodies so every surface shows the same formatting.
func FormatCents(cents int64, currency string) string {
	whole := cents / 100
	frac := cents % 100
	if frac < 0 {
		frac = -frac
	}
	return moneyPrinter.Sprintf("%d.%02d %s", whole, frac, currency)
}
