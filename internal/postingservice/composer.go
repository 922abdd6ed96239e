// Package postingservice translates completed ledger transactions into
// posting requests for the external accounting service.
package postingservice

import (
	"strings"

	"github.com/corebank/branchledger/internal/domain"
)

// Event attribute names the accounting service expects per amount line.
const (
	LinePrincipal            = "PRINCIPAL_AMOUNT"
	LineFee                  = "FEE_AMOUNT"
	LineTax                  = "TAX_AMOUNT"
	LineSourceCommission     = "SOURCE_BRANCH_COMMISSION"
	LineDestCommission       = "DESTINATION_BRANCH_COMMISSION"
	LineHeadOfficeCommission = "HEAD_OFFICE_COMMISSION"
	LineNetworkCommission    = "NETWORK_PARTNER_COMMISSION"
)

// Composer maps transactions to accounting posting requests. It performs no
// business validation; it is a translation step only.
type Composer struct{}

// NewComposer returns a posting composer.
func NewComposer() *Composer {
	return &Composer{}
}

// Compose builds the posting request for a completed transaction. Zero fee,
// tax and commission lines are omitted; the principal line is always present.
func (c *Composer) Compose(tx domain.Transaction, branch domain.Branch, interBranch bool) domain.PostingRequest {
	req := domain.PostingRequest{
		Reference:      tx.Reference,
		EventName:      eventName(tx.Kind),
		BranchCode:     branch.Code,
		InterBranch:    interBranch,
		AccountingDate: tx.AccountingDate,
		Lines: []domain.PostingLine{
			{Name: LinePrincipal, Amount: tx.Amount.Abs()},
		},
	}

	if !tx.Fee.IsZero() {
		req.Lines = append(req.Lines, domain.PostingLine{Name: LineFee, Amount: tx.Fee})
	}

	if !tx.Tax.IsZero() {
		req.Lines = append(req.Lines, domain.PostingLine{Name: LineTax, Amount: tx.Tax})
	}

	if !tx.Split.SourceBranch.IsZero() {
		req.Lines = append(req.Lines, domain.PostingLine{Name: LineSourceCommission, Amount: tx.Split.SourceBranch})
	}

	if !tx.Split.DestinationBranch.IsZero() {
		req.Lines = append(req.Lines, domain.PostingLine{Name: LineDestCommission, Amount: tx.Split.DestinationBranch})
	}

	if !tx.Split.HeadOffice.IsZero() {
		req.Lines = append(req.Lines, domain.PostingLine{Name: LineHeadOfficeCommission, Amount: tx.Split.HeadOffice})
	}

	if !tx.Split.NetworkPartner.IsZero() {
		req.Lines = append(req.Lines, domain.PostingLine{Name: LineNetworkCommission, Amount: tx.Split.NetworkPartner})
	}

	return req
}

func eventName(kind domain.OperationKind) string {
	return strings.ToLower(string(kind))
}
