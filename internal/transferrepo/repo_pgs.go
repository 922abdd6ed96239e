// Package transferrepo manages repository layer of transfer records.
package transferrepo

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/corebank/branchledger/internal/domain"
	"github.com/corebank/branchledger/pkg/dbpkg"
	"github.com/corebank/branchledger/pkg/errorspkg"
)

// RepoPGS facilitates transfer repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transfer RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const transferColumns = `
	id, reference, type, status, from_account_number, to_account_number,
	from_name, to_name, amount, fee,
	split_source_branch, split_destination_branch, split_head_office, split_network_partner,
	source_branch_id, destination_branch_id, initiated_by, decided_by, comment,
	accounting_date, created_at, decided_at`

func scanTransfer(row *sql.Row) (domain.Transfer, error) {
	var t domain.Transfer

	err := row.Scan(
		&t.ID,
		&t.Reference,
		&t.Type,
		&t.Status,
		&t.FromAccountNumber,
		&t.ToAccountNumber,
		&t.FromName,
		&t.ToName,
		&t.Amount,
		&t.Fee,
		&t.Split.SourceBranch,
		&t.Split.DestinationBranch,
		&t.Split.HeadOffice,
		&t.Split.NetworkPartner,
		&t.SourceBranchID,
		&t.DestinationBranchID,
		&t.InitiatedBy,
		&t.DecidedBy,
		&t.Comment,
		&t.AccountingDate,
		&t.CreatedAt,
		&t.DecidedAt,
	)

	return t, err
}

const createQuery = `
INSERT INTO
	transfers (reference, type, status, from_account_number, to_account_number,
		from_name, to_name, amount, fee,
		split_source_branch, split_destination_branch, split_head_office, split_network_partner,
		source_branch_id, destination_branch_id, initiated_by, decided_by, comment,
		accounting_date, decided_at)
VALUES
	($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
RETURNING` + transferColumns

// Create persists the transfer record and returns it with its id.
func (r *RepoPGS) Create(ctx context.Context, t domain.Transfer) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		t.Reference,
		t.Type,
		t.Status,
		t.FromAccountNumber,
		t.ToAccountNumber,
		t.FromName,
		t.ToName,
		t.Amount,
		t.Fee,
		t.Split.SourceBranch,
		t.Split.DestinationBranch,
		t.Split.HeadOffice,
		t.Split.NetworkPartner,
		t.SourceBranchID,
		t.DestinationBranchID,
		t.InitiatedBy,
		t.DecidedBy,
		t.Comment,
		t.AccountingDate,
		t.DecidedAt,
	)

	created, err := scanTransfer(row)
	if err != nil {
		l.Error().Err(err).Send()
		return created, errorspkg.ErrInternal
	}

	return created, nil
}

const getQuery = `
SELECT` + transferColumns + `
FROM transfers
WHERE id = $1
`

// Get returns the transfer record with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	t, err := scanTransfer(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransferNotFound
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const updateDecisionQuery = `
UPDATE transfers
SET
	status = $1,
	decided_by = $2,
	comment = $3,
	decided_at = $4
WHERE id = $5 AND status = 'PENDING'
RETURNING` + transferColumns

// UpdateDecision persists the terminal decision of a pending transfer. The
// status predicate makes the Pending transition single-shot even under
// concurrent confirmations.
func (r *RepoPGS) UpdateDecision(ctx context.Context, t domain.Transfer) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateDecisionQuery,
		t.Status,
		t.DecidedBy,
		t.Comment,
		t.DecidedAt,
		t.ID,
	)

	updated, err := scanTransfer(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return updated, domain.ErrTransferAlreadyDecided
		}

		return updated, errorspkg.ErrInternal
	}

	return updated, nil
}
