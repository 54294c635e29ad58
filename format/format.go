// Package format holds the pure formatting helpers used to turn raw catalog
// records into display strings. Nothing in here reads the clock: functions
// that depend on the current time take it as a parameter.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DateLayout is the layout of release dates returned by the catalog service
const DateLayout = "2006-01-02"

const (
	longDateLayout  = "January 2, 2006"
	shortDateLayout = "Jan 2, 2006"
	unknownDate     = "Unknown"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency formats a positive amount as whole US dollars, e.g. "$1,000,000".
// Callers decide what to show for zero or missing amounts.
func Currency(amount float64) string {
	rounded := int64(math.Round(amount))
	if rounded < 0 {
		return "-$" + printer.Sprintf("%d", -rounded)
	}
	return "$" + printer.Sprintf("%d", rounded)
}

// Count formats an integer with thousands separators
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// ParseDate parses a YYYY-MM-DD release date. An empty string yields the zero
// time and ok=true, since release dates are optional.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// LongDate is the detail-view date form, e.g. "January 2, 2006"
func LongDate(t time.Time) string {
	if t.IsZero() {
		return unknownDate
	}
	return t.Format(longDateLayout)
}

// ShortDate is the list-view date form, e.g. "Jan 2, 2006"
func ShortDate(t time.Time) string {
	if t.IsZero() {
		return unknownDate
	}
	return t.Format(shortDateLayout)
}

// Runtime formats a runtime in minutes
func Runtime(minutes int) string {
	if minutes <= 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
