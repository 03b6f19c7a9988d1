// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"time"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
)

const (
	// DateTimeLayout is the month format used for schedule dates.
	DateTimeLayout = constants.DateTimeLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// CurrentMonth formats the month containing now in DateTimeLayout.
func CurrentMonth(now time.Time) string {
	return now.Format(DateTimeLayout)
}

// ValidateMonth checks that date is a YYYY-MM month.
func ValidateMonth(date string) error {
	if _, err := time.Parse(DateTimeLayout, date); err != nil {
		return fmt.Errorf("invalid month %q, expected YYYY-MM: %w", date, err)
	}
	return nil
}

// MonthSequence returns count consecutive months starting at start.
func MonthSequence(start string, count int) ([]string, error) {
	if err := ValidateMonth(start); err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, nil
	}

	months := make([]string, count)
	for i := range months {
		months[i], _ = OffsetDate(start, DateTimeLayout, i)
	}
	return months, nil
}
