package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultClientLimit = 2
	MaxClientLimit     = 100
)

var (
	ErrNoData       = errors.New("no paid jobs in range")
	ErrInvalidLimit = errors.New("invalid limit")
	ErrInvalidRange = errors.New("end is before start")
)

// Range bounds payment dates, inclusive on both ends.
type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) Validate() error {
	if r.End.Before(r.Start) {
		return ErrInvalidRange
	}

	return nil
}

// ParseRange reads start and end bounds given as RFC 3339 timestamps or
// YYYY-MM-DD dates. A date-only end covers the whole day.
func ParseRange(start, end string) (Range, error) {
	s, _, err := parseBound(start)
	if err != nil {
		return Range{}, fmt.Errorf("start: %w", err)
	}

	e, dateOnly, err := parseBound(end)
	if err != nil {
		return Range{}, fmt.Errorf("end: %w", err)
	}

	if dateOnly {
		e = e.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	r := Range{Start: s, End: e}

	return r, r.Validate()
}

func parseBound(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false, err
	}

	return t, false, nil
}

// ProfessionEarnings is the amount paid to contractors of one profession.
type ProfessionEarnings struct {
	Profession string
	Paid       decimal.Decimal
}

// ClientSpending is the amount one client paid for jobs.
type ClientSpending struct {
	ClientID uuid.UUID
	FullName string
	Paid     decimal.Decimal
}
