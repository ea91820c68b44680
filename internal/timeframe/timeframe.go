// Package timeframe resolves free-form timeframe strings into calendar dates.
//
// Accepted inputs, tried in order (case-insensitive, surrounding whitespace
// trimmed):
//
//	today
//	yesterday
//	2024-10-28   (YYYY-M-D, 1-2 digit month/day accepted)
//	10/28/2024   (M/D/YYYY)
//	28.10.2024   (D.M.YYYY)
//
// All dates resolve to local midnight.
package timeframe

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gorewood/worklog/internal/output"
)

// Resolved is the result of parsing a timeframe string.
type Resolved struct {
	Date        time.Time // local midnight of the resolved day
	DisplayName string    // "today", "yesterday", or "YYYY-MM-DD"
}

// Explicit date grammars. Capture groups are ordered per format.
var (
	dashFormat  = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)    // YYYY-M-D
	slashFormat = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)   // M/D/YYYY
	dotFormat   = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`) // D.M.YYYY
)

// Parse resolves a timeframe string against the current local time.
func Parse(input string) (Resolved, error) {
	return parseAt(input, time.Now())
}

// parseAt resolves a timeframe string against the given reference time.
func parseAt(input string, now time.Time) (Resolved, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))

	switch normalized {
	case "today":
		return Resolved{Date: midnight(now), DisplayName: "today"}, nil
	case "yesterday":
		return Resolved{Date: midnight(now).AddDate(0, 0, -1), DisplayName: "yesterday"}, nil
	}

	if date, ok := parseExplicit(normalized); ok {
		return Resolved{Date: date, DisplayName: date.Format("2006-01-02")}, nil
	}

	return Resolved{}, output.NewUserError(fmt.Sprintf(
		"unable to parse date %q; supported formats: \"today\", \"yesterday\", "+
			"or specific dates (e.g. \"2024-10-28\", \"10/28/2024\", \"28.10.2024\")", input))
}

// parseExplicit tries the three explicit date grammars in order.
func parseExplicit(input string) (time.Time, bool) {
	if m := dashFormat.FindStringSubmatch(input); m != nil {
		return makeDate(m[1], m[2], m[3])
	}
	if m := slashFormat.FindStringSubmatch(input); m != nil {
		return makeDate(m[3], m[1], m[2])
	}
	if m := dotFormat.FindStringSubmatch(input); m != nil {
		return makeDate(m[3], m[2], m[1])
	}
	return time.Time{}, false
}

// makeDate builds local midnight for the given components, rejecting
// out-of-range values (time.Date would silently roll them over).
func makeDate(yearStr, monthStr, dayStr string) (time.Time, bool) {
	year, _ := strconv.Atoi(yearStr)
	month, _ := strconv.Atoi(monthStr)
	day, _ := strconv.Atoi(dayStr)

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return time.Time{}, false
	}
	return date, true
}

// midnight truncates a time to local midnight.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 local for the day containing t.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// DayWindow returns the half-open interval [midnight, next midnight) for the
// day containing t.
func DayWindow(t time.Time) (from, to time.Time) {
	from = midnight(t)
	return from, from.AddDate(0, 0, 1)
}
