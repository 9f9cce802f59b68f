// Package locale formats numbers for chart labels the way Chilean readers
// expect them: "." groups thousands and "," separates decimals.
package locale

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Spanish)

// Number formats v with exactly decimals fractional digits.
//
//	Number(1123008, 0) == "1.123.008"
//	Number(16.87, 2)   == "16,87"
func Number(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
}

// Integer formats n with thousands separators.
func Integer(n int) string {
	return printer.Sprintf("%d", n)
}

// Percent formats a percentage value (already in 0..100) with one decimal.
func Percent(v float64) string {
	return Number(v, 1) + "%"
}

// Size formats a byte count for log lines, e.g. "48 kB".
func Size(n int) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
