package domain

import (
	"errors"
	"time"
)

var (
	// ErrDayClosed indicates the accounting day is not open for operations.
	ErrDayClosed = errors.New("accounting day is closed")
	// ErrYearClosed indicates the accounting year is not open for operations.
	ErrYearClosed = errors.New("accounting year is closed")
)

// OperationalCalendar carries the operational accounting day and the day/year
// gate flags. It is loaded once per request and passed down explicitly; the
// gate is never queried from global state.
type OperationalCalendar struct {
	AccountingDate time.Time `json:"accounting_date"`
	DayOpen        bool      `json:"day_open"`
	YearOpen       bool      `json:"year_open"`
}

// Gate refuses every mutating operation unless both flags are open.
func (c OperationalCalendar) Gate() error {
	if !c.YearOpen {
		return ErrYearClosed
	}

	if !c.DayOpen {
		return ErrDayClosed
	}

	return nil
}
