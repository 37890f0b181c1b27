package common

import (
	"strings"
	"time"

	"github.com/khanghh/vbs/params"
)

// ParseDay parses a YYYY-MM-DD date as midnight UTC.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(params.DayLayout, strings.TrimSpace(s), time.UTC)
}

// Day truncates t to its calendar date in t's location, returned as midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDay(t time.Time) string {
	return t.Format(params.DayLayout)
}
