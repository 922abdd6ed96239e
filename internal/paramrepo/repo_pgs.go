// Package paramrepo manages repository layer of per-product policy
// parameters. A missing parameter is a refusal upstream, never a default fee.
package paramrepo

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/corebank/branchledger/internal/domain"
	"github.com/corebank/branchledger/pkg/dbpkg"
	"github.com/corebank/branchledger/pkg/errorspkg"
)

// RepoPGS facilitates policy parameter repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns parameter RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const getDepositParameterQuery = `
SELECT
	id, product_id, min_amount, max_amount, fee_rate_pct,
	source_branch_pct, destination_branch_pct
FROM cash_deposit_parameters
WHERE product_id = $1
`

// GetDepositParameter returns the deposit policy of the given product.
func (r *RepoPGS) GetDepositParameter(ctx context.Context, productID int32) (domain.CashDepositParameter, error) {
	l := zerolog.Ctx(ctx)

	var p domain.CashDepositParameter

	row := r.db.QueryRowContext(ctx, getDepositParameterQuery, productID)

	err := row.Scan(
		&p.ID,
		&p.ProductID,
		&p.MinAmount,
		&p.MaxAmount,
		&p.FeeRatePct,
		&p.SourceBranchPct,
		&p.DestinationBranchPct,
	)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return p, domain.ErrParameterNotFound
		}

		return p, errorspkg.ErrInternal
	}

	return p, nil
}

const getWithdrawalParameterQuery = `
SELECT
	id, product_id, min_amount, max_amount, fee_rate_pct,
	source_branch_pct, destination_branch_pct
FROM cash_withdrawal_parameters
WHERE product_id = $1
`

// GetWithdrawalParameter returns the withdrawal policy of the given product.
func (r *RepoPGS) GetWithdrawalParameter(ctx context.Context, productID int32) (domain.CashWithdrawalParameter, error) {
	l := zerolog.Ctx(ctx)

	var p domain.CashWithdrawalParameter

	row := r.db.QueryRowContext(ctx, getWithdrawalParameterQuery, productID)

	err := row.Scan(
		&p.ID,
		&p.ProductID,
		&p.MinAmount,
		&p.MaxAmount,
		&p.FeeRatePct,
		&p.SourceBranchPct,
		&p.DestinationBranchPct,
	)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return p, domain.ErrParameterNotFound
		}

		return p, errorspkg.ErrInternal
	}

	return p, nil
}

const getTransferParameterQuery = `
SELECT
	id, product_id, type, min_amount, max_amount, fee_rate_pct,
	source_branch_pct, destination_branch_pct, head_office_pct, network_partner_pct
FROM transfer_parameters
WHERE product_id = $1 AND type = $2
`

// GetTransferParameter returns the transfer policy of the given product and
// transfer type.
func (r *RepoPGS) GetTransferParameter(ctx context.Context, productID int32, transferType domain.TransferType) (domain.TransferParameter, error) {
	l := zerolog.Ctx(ctx)

	var p domain.TransferParameter

	row := r.db.QueryRowContext(ctx, getTransferParameterQuery, productID, transferType)

	err := row.Scan(
		&p.ID,
		&p.ProductID,
		&p.Type,
		&p.MinAmount,
		&p.MaxAmount,
		&p.FeeRatePct,
		&p.SourceBranchPct,
		&p.DestinationBranchPct,
		&p.HeadOfficePct,
		&p.NetworkPartnerPct,
	)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return p, domain.ErrParameterNotFound
		}

		return p, errorspkg.ErrInternal
	}

	return p, nil
}
