package utils

import (
	"testing"
	"time"
)

func TestParseHour(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"18:30", 18},
		{"05:00:00", 5},
		{"00:15", 0},
		{"bogus", 0},
	}
	for _, tc := range cases {
		if got := ParseHour(tc.in); got != tc.want {
			t.Fatalf("ParseHour(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestPeriodRange(t *testing.T) {
	// Tuesday 2026-09-01.
	now := time.Date(2026, 9, 1, 14, 30, 0, 0, time.Local)

	start, end, label := PeriodRange("today", now)
	if label != "today" || start.Day() != 1 || !end.Equal(start.AddDate(0, 0, 1)) {
		t.Fatalf("today range wrong: %v..%v (%s)", start, end, label)
	}

	start, end, label = PeriodRange("week", now)
	if label != "week" || start.Weekday() != time.Monday {
		t.Fatalf("week should start Monday, got %v", start.Weekday())
	}
	if !end.Equal(start.AddDate(0, 0, 7)) {
		t.Fatalf("week should span 7 days")
	}

	start, _, label = PeriodRange("nonsense", now)
	if label != "month" || start.Day() != 1 || start.Month() != time.September {
		t.Fatalf("unknown period should fall back to month, got %v (%s)", start, label)
	}
}
