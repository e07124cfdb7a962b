// Package format renders prices and dates for guests.
package format

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const CurrencyLabel = "บาท"

var thaiMonths = [...]string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

var printer = message.NewPrinter(language.English)

// Number renders v with thousands separators. Whole values carry no
// decimals; anything else is shown to two places.
func Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	if v == math.Trunc(v) {
		return printer.Sprintf("%d", int64(v))
	}
	return printer.Sprintf("%.2f", v)
}

// Baht renders an amount followed by the currency label.
func Baht(v float64) string {
	return Number(v) + " " + CurrencyLabel
}

// Percent renders a discount such as "10%".
func Percent(v float64) string {
	return Number(v) + "%"
}

// LongDate renders a civil date as "10 มกราคม 2024".
func LongDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%d %s %d", t.Day(), thaiMonths[t.Month()-1], t.Year())
}
