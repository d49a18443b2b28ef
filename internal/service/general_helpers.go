package service

import (
	"fmt"
	"time"
)

// parseDate parses a YYYY-MM-DD request date as UTC midnight.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.UTC(), nil
}
