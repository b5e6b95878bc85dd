package domain

import (
	"fmt"
	"time"
)

// tradeTimeLayouts are tried in order. Layouts without an offset are
// interpreted as UTC.
var tradeTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
}

// ParseTradeTime parses a trade timestamp. It accepts RFC 3339 and
// timezone-naive ISO 8601 date-times; the result is always in UTC.
func ParseTradeTime(s string) (time.Time, error) {
	for _, layout := range tradeTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date-time %q", s)
}

// FormatTradeTime renders t as RFC 3339 in UTC.
func FormatTradeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
