package extract

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/finsight/receipt-pipeline/internal/patterns"
)

// Date recovers the transaction date. Patterns are tried in order: numeric
// slash dates, ISO, then textual months. The first candidate that parses to
// a valid calendar date not in the future wins. When both MM/DD and DD/MM
// readings are plausible, MM/DD is preferred and DD/MM is used only when it
// is the sole valid, past reading.
func Date(lines []string, now time.Time) DateResult {
	for _, line := range lines {
		if m := patterns.DateNumeric.FindStringSubmatch(line); m != nil {
			if d, ok := resolveNumericDate(m, now); ok {
				return DateResult{Value: d, Strategy: "date_numeric", Confidence: 0.85}
			}
		}
	}
	for _, line := range lines {
		if m := patterns.DateISO.FindStringSubmatch(line); m != nil {
			year, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			day, _ := strconv.Atoi(m[3])
			if d, ok := validDate(year, month, day, now); ok {
				return DateResult{Value: d, Strategy: "date_iso", Confidence: 0.95}
			}
		}
	}
	for _, line := range lines {
		if m := patterns.DateTextual.FindStringSubmatch(line); m != nil {
			month := patterns.MonthNumber(m[1])
			day, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			if d, ok := validDate(year, month, day, now); ok {
				return DateResult{Value: d, Strategy: "date_textual", Confidence: 0.8}
			}
		}
	}
	return DateResult{Strategy: "date_numeric"}
}

// resolveNumericDate tries the MM/DD reading first, then DD/MM.
func resolveNumericDate(m []string, now time.Time) (*time.Time, bool) {
	first, _ := strconv.Atoi(m[1])
	second, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	year = expandYear(year)

	if d, ok := validDate(year, first, second, now); ok {
		return d, true
	}
	if d, ok := validDate(year, second, first, now); ok {
		return d, true
	}
	return nil, false
}

// expandYear turns two-digit years into four digits, splitting at 50.
func expandYear(year int) int {
	if year >= 100 {
		return year
	}
	if year > 50 {
		return 1900 + year
	}
	return 2000 + year
}

// validDate builds a calendar date and rejects impossible or future values.
// time.Date normalizes overflows (e.g. month 13), so the round-trip check
// catches them.
func validDate(year, month, day int, now time.Time) (*time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1990 {
		return nil, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if int(d.Month()) != month || d.Day() != day {
		return nil, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if d.After(today) {
		return nil, false
	}
	return &d, true
}

// Time recovers the transaction time of day: 12-hour clock first, then
// 24-hour, first match wins.
func Time(lines []string) StringResult {
	for _, line := range lines {
		if m := patterns.Time12Hour.FindStringSubmatch(line); m != nil {
			value := fmt.Sprintf("%s:%s %s", m[1], m[2], strings.ToUpper(m[3]))
			return StringResult{Value: value, Strategy: "time_12h", Confidence: 0.85}
		}
	}
	for _, line := range lines {
		if m := patterns.Time24Hour.FindStringSubmatch(line); m != nil {
			return StringResult{Value: fmt.Sprintf("%s:%s", m[1], m[2]), Strategy: "time_24h", Confidence: 0.8}
		}
	}
	return StringResult{Strategy: "time_12h"}
}
