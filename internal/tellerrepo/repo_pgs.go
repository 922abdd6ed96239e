// Package tellerrepo manages repository layer of tellers and their drawer
// audit records.
package tellerrepo

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/corebank/branchledger/internal/domain"
	"github.com/corebank/branchledger/pkg/dbpkg"
	"github.com/corebank/branchledger/pkg/errorspkg"
)

// RepoPGS facilitates teller repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns teller RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const tellerColumns = `
	id, username, full_name, hashed_password, branch_id, account_id, created_at`

func scanTeller(row *sql.Row) (domain.Teller, error) {
	var t domain.Teller

	err := row.Scan(
		&t.ID,
		&t.Username,
		&t.FullName,
		&t.HashedPassword,
		&t.BranchID,
		&t.AccountID,
		&t.CreatedAt,
	)

	return t, err
}

const getQuery = `
SELECT` + tellerColumns + `
FROM tellers
WHERE id = $1
`

// Get returns the teller with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Teller, error) {
	l := zerolog.Ctx(ctx)

	t, err := scanTeller(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTellerNotFound
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getByUsernameQuery = `
SELECT` + tellerColumns + `
FROM tellers
WHERE username = $1
`

// GetByUsername returns the teller with the given username.
func (r *RepoPGS) GetByUsername(ctx context.Context, username string) (domain.Teller, error) {
	l := zerolog.Ctx(ctx)

	t, err := scanTeller(r.db.QueryRowContext(ctx, getByUsernameQuery, username))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTellerNotFound
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const createOperationQuery = `
INSERT INTO
	teller_operations (transaction_ref, event_name, kind, direction, amount, fee,
		split_source_branch, split_destination_branch, split_head_office, split_network_partner,
		teller_id, teller_account_id, previous_balance, current_balance,
		source_branch_id, destination_branch_id, inter_branch, accounting_date)
VALUES
	($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
RETURNING id, created_at
`

// CreateOperation appends the drawer audit row and returns it with its id.
func (r *RepoPGS) CreateOperation(ctx context.Context, op domain.TellerOperation) (domain.TellerOperation, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createOperationQuery,
		op.TransactionRef,
		op.EventName,
		op.Kind,
		op.Direction,
		op.Amount,
		op.Fee,
		op.Split.SourceBranch,
		op.Split.DestinationBranch,
		op.Split.HeadOffice,
		op.Split.NetworkPartner,
		op.TellerID,
		op.TellerAccountID,
		op.PreviousBalance,
		op.CurrentBalance,
		op.SourceBranchID,
		op.DestinationBranchID,
		op.InterBranch,
		op.AccountingDate,
	)

	if err := row.Scan(&op.ID, &op.CreatedAt); err != nil {
		l.Error().Err(err).Send()
		return op, errorspkg.ErrInternal
	}

	return op, nil
}
