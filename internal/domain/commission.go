package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidShareConfig indicates percentage shares summing over 100.
	ErrInvalidShareConfig = errors.New("commission shares exceed 100 percent")
)

// ShareConfig carries the configured percentage shares used to split a fee
// between branches when an operation crosses branch boundaries. Head office
// and network partner shares apply to transfers only and are zero otherwise.
type ShareConfig struct {
	SourceBranchPct      decimal.Decimal `json:"source_branch_pct"`
	DestinationBranchPct decimal.Decimal `json:"destination_branch_pct"`
	HeadOfficePct        decimal.Decimal `json:"head_office_pct"`
	NetworkPartnerPct    decimal.Decimal `json:"network_partner_pct"`
}

// CommissionSplit is the division of a transaction fee among branches, head
// office and the network partner. The shares always sum exactly to the fee.
type CommissionSplit struct {
	SourceBranch      decimal.Decimal `json:"source_branch"`
	DestinationBranch decimal.Decimal `json:"destination_branch"`
	HeadOffice        decimal.Decimal `json:"head_office"`
	NetworkPartner    decimal.Decimal `json:"network_partner"`
}

// Total returns the sum of all shares.
func (s CommissionSplit) Total() decimal.Decimal {
	return s.SourceBranch.Add(s.DestinationBranch).Add(s.HeadOffice).Add(s.NetworkPartner)
}
