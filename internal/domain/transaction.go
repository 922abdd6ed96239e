package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrInvalidAmount indicates an invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates a non-positive amount.
	ErrNegativeAmount = errors.New("amount must be positive")
	// ErrUnknownOperationKind indicates an operation kind outside the closed set.
	ErrUnknownOperationKind = errors.New("unknown operation kind")
)

// OperationKind is the closed set of money movement operations.
type OperationKind string

// Supported operation kinds.
const (
	KindCashDeposit    OperationKind = "CASH_DEPOSIT"
	KindCashWithdrawal OperationKind = "CASH_WITHDRAWAL"
	KindLoanRepayment  OperationKind = "LOAN_REPAYMENT"
	KindTransfer       OperationKind = "TRANSFER"
)

// Valid reports whether k belongs to the closed operation kind set.
func (k OperationKind) Valid() bool {
	switch k {
	case KindCashDeposit, KindCashWithdrawal, KindLoanRepayment, KindTransfer:
		return true
	}

	return false
}

// Direction is the side of a ledger entry relative to the affected account.
type Direction string

// Entry directions.
const (
	DirectionDebit  Direction = "DEBIT"
	DirectionCredit Direction = "CREDIT"
)

// TransactionStatus is the terminal state of a ledger entry.
type TransactionStatus string

// Transaction states. Completed entries may only transition to Reversed.
const (
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusReversed  TransactionStatus = "REVERSED"
)

// Transaction is an immutable ledger entry for one affected account.
//
// Invariant: ResultingBalance = PreviousBalance + Amount, where Amount is the
// signed delta that already nets out fee and tax per the entry direction.
type Transaction struct {
	ID                  int64             `json:"id"`
	Reference           string            `json:"reference"`
	Kind                OperationKind     `json:"kind"`
	Direction           Direction         `json:"direction"`
	AccountID           int64             `json:"account_id"`
	Amount              decimal.Decimal   `json:"amount"`
	Fee                 decimal.Decimal   `json:"fee"`
	Tax                 decimal.Decimal   `json:"tax"`
	PreviousBalance     decimal.Decimal   `json:"previous_balance"`
	ResultingBalance    decimal.Decimal   `json:"resulting_balance"`
	SenderAccountID     int64             `json:"sender_account_id,omitempty"`
	ReceiverAccountID   int64             `json:"receiver_account_id,omitempty"`
	SourceBranchID      int32             `json:"source_branch_id"`
	DestinationBranchID int32             `json:"destination_branch_id"`
	InterBranch         bool              `json:"inter_branch"`
	Split               CommissionSplit   `json:"commission_split"`
	Status              TransactionStatus `json:"status"`
	TellerID            int64             `json:"teller_id"`
	AccountingDate      time.Time         `json:"accounting_date"`
	CreatedAt           time.Time         `json:"created_at"`
}

// Reference prefixes encode the operation kind and branch crossing so a
// reference is human-traceable on its own.
const (
	refPrefixCashDeposit         = "CDP"
	refPrefixCashWithdrawal      = "CWD"
	refPrefixLoanRepayment       = "LRP"
	refPrefixTransferLocal       = "TRL"
	refPrefixTransferInterBranch = "TRB"
)

// NewReference generates a unique, prefix-coded transaction reference.
func NewReference(kind OperationKind, interBranch bool) string {
	var prefix string

	switch kind {
	case KindCashDeposit:
		prefix = refPrefixCashDeposit
	case KindCashWithdrawal:
		prefix = refPrefixCashWithdrawal
	case KindLoanRepayment:
		prefix = refPrefixLoanRepayment
	case KindTransfer:
		prefix = refPrefixTransferLocal
		if interBranch {
			prefix = refPrefixTransferInterBranch
		}
	default:
		prefix = "TXN"
	}

	tail := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:16]

	return prefix + "-" + tail
}
