// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/corebank/branchledger/internal/domain"
	"github.com/corebank/branchledger/pkg/dbpkg"
	"github.com/corebank/branchledger/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const accountColumns = `
	id, number, customer_id, name, branch_id, bank_id, type, status,
	balance, previous_balance, balance_digest, product_id, version, created_at`

func scanAccount(row *sql.Row) (domain.Account, error) {
	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Number,
		&a.CustomerID,
		&a.Name,
		&a.BranchID,
		&a.BankID,
		&a.Type,
		&a.Status,
		&a.Balance,
		&a.PreviousBalance,
		&a.BalanceDigest,
		&a.ProductID,
		&a.Version,
		&a.CreatedAt,
	)

	return a, err
}

const createQuery = `
INSERT INTO
	accounts (number, customer_id, name, branch_id, bank_id, type, status,
		balance, previous_balance, balance_digest, product_id)
VALUES
	($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING` + accountColumns

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		account.Number,
		account.CustomerID,
		account.Name,
		account.BranchID,
		account.BankID,
		account.Type,
		account.Status,
		account.Balance,
		account.PreviousBalance,
		account.BalanceDigest,
		account.ProductID,
	)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_number_key" {
				return a, domain.ErrAccountNumberAlreadyExists
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT` + accountColumns + `
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getByNumberQuery = `
SELECT` + accountColumns + `
FROM accounts
WHERE number = $1
`

// GetByNumber returns the account with the given account number.
func (r *RepoPGS) GetByNumber(ctx context.Context, number string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getByNumberQuery, number))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listQuery = `
SELECT` + accountColumns + `
FROM accounts
WHERE branch_id = $1
ORDER BY id
LIMIT $2 OFFSET $3
`

// List returns the specified number of accounts for the given branch.
func (r *RepoPGS) List(ctx context.Context, branchID int32, limit, offset int32) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, branchID, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account

		err := rows.Scan(
			&a.ID,
			&a.Number,
			&a.CustomerID,
			&a.Name,
			&a.BranchID,
			&a.BankID,
			&a.Type,
			&a.Status,
			&a.Balance,
			&a.PreviousBalance,
			&a.BalanceDigest,
			&a.ProductID,
			&a.Version,
			&a.CreatedAt,
		)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const updateLedgerQuery = `
UPDATE accounts
SET
	balance = $1,
	previous_balance = $2,
	balance_digest = $3,
	status = $4,
	version = version + 1
WHERE id = $5 AND version = $6
RETURNING version
`

// UpdateLedger writes the balance mutation of a ledger posting. The update is
// guarded by the version read at validation time so that a concurrent posting
// against the same account fails with ErrStaleAccount instead of losing a
// write.
func (r *RepoPGS) UpdateLedger(ctx context.Context, account *domain.Account) error {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateLedgerQuery,
		account.Balance,
		account.PreviousBalance,
		account.BalanceDigest,
		account.Status,
		account.ID,
		account.Version,
	)

	if err := row.Scan(&account.Version); err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return domain.ErrStaleAccount
		}

		return errorspkg.ErrInternal
	}

	return nil
}
