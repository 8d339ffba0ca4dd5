package analysis

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

// Formats the number with the given number of decimals and grouped thousands, e.g. "1,234.50".
func FormatNumber(value float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return numberPrinter.Sprintf(fmt.Sprintf("%%.%df", decimals), value)
}
