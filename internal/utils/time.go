package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// ParseHour extracts the hour from "HH:MM" or "HH:MM:SS" strings.
func ParseHour(s string) int {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()
		}
	}
	return 0
}

// PeriodRange resolves a dashboard period keyword into [start, end).
// Unknown keywords fall back to the current month.
func PeriodRange(period string, now time.Time) (time.Time, time.Time, string) {
	now = now.In(time.Local)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	switch strings.ToLower(strings.TrimSpace(period)) {
	case "today":
		return today, today.AddDate(0, 0, 1), "today"
	case "week":
		// Monday-start week.
		offset := (int(today.Weekday()) + 6) % 7
		start := today.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7), "week"
	case "year":
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.Local)
		return start, start.AddDate(1, 0, 0), "year"
	default:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
		return start, start.AddDate(0, 1, 0), "month"
	}
}
