package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ehtishamkhalid92/flowledger/internal/config"
	"github.com/ehtishamkhalid92/flowledger/internal/service"
	"github.com/ehtishamkhalid92/flowledger/internal/storage"
)

// initStorage opens the configured database and brings the schema up to
// date.
func initStorage(ctx context.Context) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// parseAmountCents parses a decimal amount like "1234.50" or "1234" into
// minor units without going through floating point.
func parseAmountCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	units := s
	fraction := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		units = s[:dot]
		fraction = s[dot+1:]
	}
	if units == "" {
		units = "0"
	}
	if len(fraction) > 2 {
		return 0, fmt.Errorf("amount %q has more than two decimal places", s)
	}
	for len(fraction) < 2 {
		fraction += "0"
	}

	u, err := strconv.ParseInt(units, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	f, err := strconv.ParseInt(fraction, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	cents := u*100 + f
	if negative {
		cents = -cents
	}
	return cents, nil
}

// parseDateFlag parses a --date value as YYYY-MM-DD, defaulting to today
// when empty.
func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return date, nil
}

// parseMonthFlag parses a --month value as YYYY-MM, defaulting to the
// current month when empty.
func parseMonthFlag(value string) (time.Time, error) {
	if value == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local), nil
	}
	month, err := time.Parse("2006-01", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", value)
	}
	return month, nil
}
