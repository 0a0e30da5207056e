package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// displayName renders a symbolic enum name such as COLD_STORAGE as "Cold Storage".
func displayName(symbol string) string {
	if symbol == "" {
		return "Unknown"
	}
	return cases.Title(language.English).String(strings.ToLower(strings.ReplaceAll(symbol, "_", " ")))
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func some(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NewNullDecimal(d)
}

// percentOf returns part / whole × 100 at 2 decimals, or false when whole is not positive.
func percentOf(part, whole decimal.Decimal) (decimal.Decimal, bool) {
	if !whole.IsPositive() {
		return decimal.Zero, false
	}
	return round2(part.Div(whole).Mul(hundred)), true
}

// wholeDaysBetween truncates toward zero, matching calendar day counting of elapsed time.
func wholeDaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

// copyTime returns a pointer to a copy of *t, or nil.
func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	return timePtr(*t)
}

func intPtr(i int) *int {
	return &i
}

func floatPtr(f float64) *float64 {
	return &f
}

// startOfDay truncates t to midnight UTC.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// calendarDaysBetween counts date boundaries crossed from one day to another.
func calendarDaysBetween(from, to time.Time) int {
	return int(startOfDay(to).Sub(startOfDay(from)).Hours() / 24)
}
