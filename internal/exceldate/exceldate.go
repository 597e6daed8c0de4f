// Package exceldate normalizes the date and time values found in spreadsheet
// cells. Cells arrive either as serial numbers (days since the 1900 epoch,
// time-of-day as a fraction of one day) or as strings in a handful of US and
// ISO formats. All functions are pure.
package exceldate

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrParseFailure is returned when a cell cannot be interpreted as a date.
// Callers must treat the cell as unusable for date matching, not fail the
// whole import.
var ErrParseFailure = errors.New("unrecognized date value")

// DateLayout is the canonical rendering used for date comparison.
const DateLayout = "01/02/2006"

// epoch is the spreadsheet day-zero. Serial N maps to epoch + (N-2) days;
// the -2 absorbs the historical leap-year bug plus 1-based counting.
var epoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

var (
	mmddyyyySlash = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	yyyymmdd      = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	mmddyyyyDash  = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
)

// fallbackLayouts are tried, in order, when none of the explicit patterns
// match a string cell.
var fallbackLayouts = []string{
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	time.RFC3339,
}

// ParseDate interprets a single spreadsheet cell as a calendar date.
// Numeric cells greater than 1 are treated as day serials; string cells are
// matched against MM/DD/YYYY, YYYY-MM-DD and MM-DD-YYYY before falling back
// to a set of generic layouts. The time component of the result is always
// midnight UTC.
func ParseDate(cell any) (time.Time, error) {
	switch v := cell.(type) {
	case float64:
		return serialToDate(v)
	case int:
		return serialToDate(float64(v))
	case int64:
		return serialToDate(float64(v))
	case string:
		return parseDateString(v)
	case time.Time:
		return time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC), nil
	case nil:
		return time.Time{}, ErrParseFailure
	default:
		return parseDateString(fmt.Sprint(v))
	}
}

func serialToDate(n float64) (time.Time, error) {
	if n <= 1 {
		return time.Time{}, ErrParseFailure
	}
	days := int(n) // drop any time-of-day fraction
	return epoch.AddDate(0, 0, days-2), nil
}

func parseDateString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrParseFailure
	}
	if m := mmddyyyySlash.FindStringSubmatch(s); m != nil {
		return makeDate(m[3], m[1], m[2])
	}
	if m := yyyymmdd.FindStringSubmatch(s); m != nil {
		return makeDate(m[1], m[2], m[3])
	}
	if m := mmddyyyyDash.FindStringSubmatch(s); m != nil {
		return makeDate(m[3], m[1], m[2])
	}
	// A bare number in a string cell is still a serial.
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return serialToDate(n)
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, ErrParseFailure
}

func makeDate(year, month, day string) (time.Time, error) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, ErrParseFailure
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), nil
}

// FormatDate renders a date in the canonical MM/DD/YYYY comparison form.
// ParseDate(FormatDate(t)) yields the same calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseClock interprets a cell as a time of day and renders it as a 12-hour
// clock string with an AM/PM suffix. Serial values in [0,1] are a fraction
// of one day, rounded to the nearest minute. Strings are passed through
// unchanged, other values are stringified; only numeric cells get the
// serial conversion.
func ParseClock(cell any) string {
	switch v := cell.(type) {
	case float64:
		if v >= 0 && v <= 1 {
			return clockFromSerial(v)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// clockFromSerial renders a day-fraction serial as a 12-hour clock. The
// serial 1.0 yields hours=24 and lands in the PM branch, so a full-day
// value renders "12:00 PM" rather than wrapping to midnight.
func clockFromSerial(t float64) string {
	total := int(math.Round(t * 1440))
	hours := total / 60
	minutes := total % 60

	display := hours
	suffix := "AM"
	switch {
	case hours == 0:
		display = 12
	case hours == 12:
		suffix = "PM"
	case hours > 12:
		display = hours - 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", display, minutes, suffix)
}

var (
	clock12 = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(AM|PM)`)
	clock24 = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// ClockToMinutes converts a display clock string ("10:30 AM" or "14:05") to
// minutes since midnight for ordering. Unparsable strings sort first (0).
func ClockToMinutes(s string) int {
	if m := clock12.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		suffix := strings.ToUpper(m[3])
		if suffix == "PM" && hours != 12 {
			hours += 12
		} else if suffix == "AM" && hours == 12 {
			hours = 0
		}
		return hours*60 + minutes
	}
	if m := clock24.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		return hours*60 + minutes
	}
	return 0
}
