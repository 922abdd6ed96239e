// Package commission splits transaction fees into branch and office shares.
package commission

import (
	"github.com/shopspring/decimal"

	"github.com/corebank/branchledger/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Allocate computes the commission split for a fee.
//
// Intra-branch operations attribute the entire fee to the source branch.
// Inter-branch operations apply the configured percentage shares; the source
// branch share is derived last as the remainder so that the split always sums
// exactly to the fee, with no rounding leakage.
func Allocate(fee decimal.Decimal, interBranch bool, cfg domain.ShareConfig) (domain.CommissionSplit, error) {
	if fee.IsNegative() {
		return domain.CommissionSplit{}, domain.ErrInvalidAmount
	}

	zero := decimal.Zero

	if fee.IsZero() {
		return domain.CommissionSplit{
			SourceBranch:      zero,
			DestinationBranch: zero,
			HeadOffice:        zero,
			NetworkPartner:    zero,
		}, nil
	}

	if !interBranch {
		return domain.CommissionSplit{
			SourceBranch:      fee,
			DestinationBranch: zero,
			HeadOffice:        zero,
			NetworkPartner:    zero,
		}, nil
	}

	total := cfg.SourceBranchPct.
		Add(cfg.DestinationBranchPct).
		Add(cfg.HeadOfficePct).
		Add(cfg.NetworkPartnerPct)

	if total.GreaterThan(hundred) {
		return domain.CommissionSplit{}, domain.ErrInvalidShareConfig
	}

	destination := share(fee, cfg.DestinationBranchPct)
	headOffice := share(fee, cfg.HeadOfficePct)
	network := share(fee, cfg.NetworkPartnerPct)

	// Remainder to the source branch keeps the split exact.
	source := fee.Sub(destination).Sub(headOffice).Sub(network)

	return domain.CommissionSplit{
		SourceBranch:      source,
		DestinationBranch: destination,
		HeadOffice:        headOffice,
		NetworkPartner:    network,
	}, nil
}

func share(fee, pct decimal.Decimal) decimal.Decimal {
	return fee.Mul(pct).Div(hundred).Round(2)
}
