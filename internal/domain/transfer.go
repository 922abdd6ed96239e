package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrTransferNotFound indicates that the transfer record is not found.
	ErrTransferNotFound = errors.New("transfer not found")
	// ErrSameAccountTransfer indicates sender and receiver are the same account.
	ErrSameAccountTransfer = errors.New("sender and receiver accounts are the same")
	// ErrTransferAlreadyDecided indicates the transfer left the pending state already.
	ErrTransferAlreadyDecided = errors.New("transfer has already been decided")
	// ErrUnknownTransferDecision indicates a decision outside approve/reject.
	ErrUnknownTransferDecision = errors.New("unknown transfer decision")
)

// TransferType selects the policy parameters for a transfer, resolved by
// comparing sender and receiver branch ids.
type TransferType string

// Transfer types.
const (
	TransferTypeLocal       TransferType = "LOCAL"
	TransferTypeInterBranch TransferType = "INTER_BRANCH"
)

// TransferStatus is the state of a two-phase transfer request.
type TransferStatus string

// Transfer request states. Pending transitions exactly once to Approved or
// Rejected; both are terminal.
const (
	TransferStatusPending  TransferStatus = "PENDING"
	TransferStatusApproved TransferStatus = "APPROVED"
	TransferStatusRejected TransferStatus = "REJECTED"
)

// TransferDecision is the confirmation step verdict.
type TransferDecision string

// Confirmation verdicts.
const (
	TransferDecisionApprove TransferDecision = "APPROVE"
	TransferDecisionReject  TransferDecision = "REJECT"
)

// Transfer is the request/approval record of the two-phase transfer workflow.
// Only the Approved transition posts ledger entries.
type Transfer struct {
	ID                  int64           `json:"id"`
	Reference           string          `json:"reference"`
	Type                TransferType    `json:"type"`
	Status              TransferStatus  `json:"status"`
	FromAccountNumber   string          `json:"from_account_number"`
	ToAccountNumber     string          `json:"to_account_number"`
	FromName            string          `json:"from_name"`
	ToName              string          `json:"to_name"`
	Amount              decimal.Decimal `json:"amount"`
	Fee                 decimal.Decimal `json:"fee"`
	Split               CommissionSplit `json:"commission_split"`
	SourceBranchID      int32           `json:"source_branch_id"`
	DestinationBranchID int32           `json:"destination_branch_id"`
	InitiatedBy         int64           `json:"initiated_by"`
	DecidedBy           int64           `json:"decided_by,omitempty"`
	Comment             string          `json:"comment,omitempty"`
	AccountingDate      time.Time       `json:"accounting_date"`
	CreatedAt           time.Time       `json:"created_at"`
	DecidedAt           time.Time       `json:"decided_at,omitempty"`
}

// CreateTransferParams is the input data for both the immediate transfer and
// the request step of the two-phase workflow.
type CreateTransferParams struct {
	FromAccountNumber string
	ToAccountNumber   string
	Amount            decimal.Decimal
}

// TransferTxResult is the result of a posted transfer: the mirrored ledger
// entries and the mutated account aggregates.
type TransferTxResult struct {
	Transfer    Transfer    `json:"transfer"`
	DebitEntry  Transaction `json:"debit_entry"`
	CreditEntry Transaction `json:"credit_entry"`
	FromAccount Account     `json:"from_account"`
	ToAccount   Account     `json:"to_account"`
}
