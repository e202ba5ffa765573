package opname

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatQuantity renders a count with Indonesian digit grouping, e.g. 12.500.
func FormatQuantity(n int) string {
	return idPrinter.Sprintf("%d", n)
}

// FormatDate renders a stored calendar date. Dates are kept as UTC midnight,
// so they are formatted in UTC whatever zone the driver returned.
func FormatDate(t time.Time, layout string) string {
	return t.UTC().Format(layout)
}
