// Package transactionrepo manages repository layer of ledger transactions.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/corebank/branchledger/internal/domain"
	"github.com/corebank/branchledger/pkg/dbpkg"
	"github.com/corebank/branchledger/pkg/errorspkg"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const transactionColumns = `
	id, reference, kind, direction, account_id, amount, fee, tax,
	previous_balance, resulting_balance, sender_account_id, receiver_account_id,
	source_branch_id, destination_branch_id, inter_branch,
	split_source_branch, split_destination_branch, split_head_office, split_network_partner,
	status, teller_id, accounting_date, created_at`

func scanTransaction(row *sql.Row) (domain.Transaction, error) {
	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.Reference,
		&t.Kind,
		&t.Direction,
		&t.AccountID,
		&t.Amount,
		&t.Fee,
		&t.Tax,
		&t.PreviousBalance,
		&t.ResultingBalance,
		&t.SenderAccountID,
		&t.ReceiverAccountID,
		&t.SourceBranchID,
		&t.DestinationBranchID,
		&t.InterBranch,
		&t.Split.SourceBranch,
		&t.Split.DestinationBranch,
		&t.Split.HeadOffice,
		&t.Split.NetworkPartner,
		&t.Status,
		&t.TellerID,
		&t.AccountingDate,
		&t.CreatedAt,
	)

	return t, err
}

const createQuery = `
INSERT INTO
	transactions (reference, kind, direction, account_id, amount, fee, tax,
		previous_balance, resulting_balance, sender_account_id, receiver_account_id,
		source_branch_id, destination_branch_id, inter_branch,
		split_source_branch, split_destination_branch, split_head_office, split_network_partner,
		status, teller_id, accounting_date)
VALUES
	($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
RETURNING` + transactionColumns

// Create persists the ledger entry and returns it with its id.
func (r *RepoPGS) Create(ctx context.Context, t domain.Transaction) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		t.Reference,
		t.Kind,
		t.Direction,
		t.AccountID,
		t.Amount,
		t.Fee,
		t.Tax,
		t.PreviousBalance,
		t.ResultingBalance,
		t.SenderAccountID,
		t.ReceiverAccountID,
		t.SourceBranchID,
		t.DestinationBranchID,
		t.InterBranch,
		t.Split.SourceBranch,
		t.Split.DestinationBranch,
		t.Split.HeadOffice,
		t.Split.NetworkPartner,
		t.Status,
		t.TellerID,
		t.AccountingDate,
	)

	created, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "transactions_reference_key" {
				// References are uuid-derived; a collision means a retry of
				// an already-written entry.
				return created, errorspkg.ErrInternal
			}
		}

		return created, errorspkg.ErrInternal
	}

	return created, nil
}

const getByReferenceQuery = `
SELECT` + transactionColumns + `
FROM transactions
WHERE reference = $1
`

// GetByReference returns the ledger entry with the given reference.
func (r *RepoPGS) GetByReference(ctx context.Context, reference string) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	t, err := scanTransaction(r.db.QueryRowContext(ctx, getByReferenceQuery, reference))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const updateStatusQuery = `
UPDATE transactions
SET status = $1
WHERE reference = $2 AND status = 'COMPLETED'
RETURNING` + transactionColumns

// UpdateStatus marks a completed entry as reversed. Completed is the only
// state a reversal may start from.
func (r *RepoPGS) UpdateStatus(ctx context.Context, reference string, status domain.TransactionStatus) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	t, err := scanTransaction(r.db.QueryRowContext(ctx, updateStatusQuery, status, reference))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}
