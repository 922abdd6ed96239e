// Package calendarrepo manages repository layer of the operational calendar.
package calendarrepo

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/corebank/branchledger/internal/domain"
	"github.com/corebank/branchledger/pkg/dbpkg"
	"github.com/corebank/branchledger/pkg/errorspkg"
)

// RepoPGS facilitates operational calendar repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns calendar RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const getQuery = `
SELECT accounting_date, day_open, year_open
FROM operational_calendar
ORDER BY accounting_date DESC
LIMIT 1
`

// Get returns the current operational calendar. An absent row reads as a
// fully closed calendar so a misconfigured system refuses every operation.
func (r *RepoPGS) Get(ctx context.Context) (domain.OperationalCalendar, error) {
	l := zerolog.Ctx(ctx)

	var c domain.OperationalCalendar

	row := r.db.QueryRowContext(ctx, getQuery)

	if err := row.Scan(&c.AccountingDate, &c.DayOpen, &c.YearOpen); err != nil {
		if err == sql.ErrNoRows {
			return c, nil
		}

		l.Error().Err(err).Send()

		return c, errorspkg.ErrInternal
	}

	return c, nil
}
