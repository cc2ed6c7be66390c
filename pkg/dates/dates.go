package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layout is the canonical calendar-day serialization used across the API.
const Layout = "2006-01-02"

// fallbackLayouts are tried, in order, for strings that match none of the
// explicit shapes. The calendar day is always taken in UTC.
var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// FromTime returns the UTC calendar day of a store-native timestamp.
func FromTime(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Resolve dispatches over the accepted date-input variants: a concrete
// timestamp wins over any raw string representation.
func Resolve(at *time.Time, raw string) (string, bool) {
	if at != nil {
		return FromTime(*at), true
	}
	return Normalize(raw)
}

// Normalize converts a heterogeneous date string into the canonical
// YYYY-MM-DD form. Ambiguous N/N/YYYY strings are read day-first, so
// "02/03/2025" is 2 March 2025. Failure is reported via the boolean;
// Normalize never panics.
func Normalize(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	if isCanonical(s) {
		return s, true
	}

	if day, month, year, ok := splitNumeric(s, false); ok {
		if canonical, ok := assemble(year, month, day); ok {
			return canonical, true
		}
	}

	if day, month, year, ok := splitNumeric(s, true); ok {
		if canonical, ok := assemble(year, month, day); ok {
			return canonical, true
		}
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FromTime(t), true
		}
	}

	return "", false
}

// isCanonical reports whether s already has the exact YYYY-MM-DD shape.
func isCanonical(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// splitNumeric parses D/M/YYYY (slashes or dashes) or, when yearFirst is
// set, YYYY/M/D.
func splitNumeric(s string, yearFirst bool) (day, month, year int, ok bool) {
	sep := "/"
	if !yearFirst && strings.Count(s, "-") == 2 {
		sep = "-"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return 0, 0, 0, false
	}

	var yRaw, mRaw, dRaw string
	if yearFirst {
		yRaw, mRaw, dRaw = parts[0], parts[1], parts[2]
	} else {
		dRaw, mRaw, yRaw = parts[0], parts[1], parts[2]
	}
	if len(yRaw) != 4 || len(mRaw) == 0 || len(mRaw) > 2 || len(dRaw) == 0 || len(dRaw) > 2 {
		return 0, 0, 0, false
	}

	y, err := strconv.Atoi(yRaw)
	if err != nil {
		return 0, 0, 0, false
	}
	m, err := strconv.Atoi(mRaw)
	if err != nil {
		return 0, 0, 0, false
	}
	d, err := strconv.Atoi(dRaw)
	if err != nil {
		return 0, 0, 0, false
	}
	return d, m, y, true
}

// assemble zero-pads the parts and validates them as a real UTC calendar
// day; time.Date normalizes overflow, so a round-trip mismatch means the
// input was not a valid date.
func assemble(year, month, day int) (string, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}
