package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrParameterNotFound indicates that the product has no policy parameter
	// configured for the requested operation type. No default fee is assumed.
	ErrParameterNotFound = errors.New("policy parameter not found for product")
	// ErrAmountOutOfRange indicates the amount is outside the configured limits.
	ErrAmountOutOfRange = errors.New("amount outside configured limits")
)

// CashDepositParameter is the per-product deposit policy.
type CashDepositParameter struct {
	ID                   int32           `json:"id"`
	ProductID            int32           `json:"product_id"`
	MinAmount            decimal.Decimal `json:"min_amount"`
	MaxAmount            decimal.Decimal `json:"max_amount"`
	FeeRatePct           decimal.Decimal `json:"fee_rate_pct"`
	SourceBranchPct      decimal.Decimal `json:"source_branch_pct"`
	DestinationBranchPct decimal.Decimal `json:"destination_branch_pct"`
}

// Shares returns the commission share configuration of the parameter.
func (p CashDepositParameter) Shares() ShareConfig {
	return ShareConfig{
		SourceBranchPct:      p.SourceBranchPct,
		DestinationBranchPct: p.DestinationBranchPct,
	}
}

// CashWithdrawalParameter is the per-product withdrawal policy.
type CashWithdrawalParameter struct {
	ID                   int32           `json:"id"`
	ProductID            int32           `json:"product_id"`
	MinAmount            decimal.Decimal `json:"min_amount"`
	MaxAmount            decimal.Decimal `json:"max_amount"`
	FeeRatePct           decimal.Decimal `json:"fee_rate_pct"`
	SourceBranchPct      decimal.Decimal `json:"source_branch_pct"`
	DestinationBranchPct decimal.Decimal `json:"destination_branch_pct"`
}

// Shares returns the commission share configuration of the parameter.
func (p CashWithdrawalParameter) Shares() ShareConfig {
	return ShareConfig{
		SourceBranchPct:      p.SourceBranchPct,
		DestinationBranchPct: p.DestinationBranchPct,
	}
}

// TransferParameter is the per-product, per-transfer-type policy. Transfers
// additionally carry head office and network partner shares.
type TransferParameter struct {
	ID                   int32           `json:"id"`
	ProductID            int32           `json:"product_id"`
	Type                 TransferType    `json:"type"`
	MinAmount            decimal.Decimal `json:"min_amount"`
	MaxAmount            decimal.Decimal `json:"max_amount"`
	FeeRatePct           decimal.Decimal `json:"fee_rate_pct"`
	SourceBranchPct      decimal.Decimal `json:"source_branch_pct"`
	DestinationBranchPct decimal.Decimal `json:"destination_branch_pct"`
	HeadOfficePct        decimal.Decimal `json:"head_office_pct"`
	NetworkPartnerPct    decimal.Decimal `json:"network_partner_pct"`
}

// Shares returns the commission share configuration of the parameter.
func (p TransferParameter) Shares() ShareConfig {
	return ShareConfig{
		SourceBranchPct:      p.SourceBranchPct,
		DestinationBranchPct: p.DestinationBranchPct,
		HeadOfficePct:        p.HeadOfficePct,
		NetworkPartnerPct:    p.NetworkPartnerPct,
	}
}

// WithinLimits reports whether amount falls inside [min, max].
func WithinLimits(amount, min, max decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(min) && amount.LessThanOrEqual(max)
}

// Fee computes a percentage fee on the amount, rounded to 2 decimal places.
func Fee(amount, ratePct decimal.Decimal) decimal.Decimal {
	return amount.Mul(ratePct).Div(decimal.NewFromInt(100)).Round(2)
}
