package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TellerOperation is an append-only audit record of a teller's cash drawer
// movement, linked to the ledger transaction it mirrors.
type TellerOperation struct {
	ID                  int64           `json:"id"`
	TransactionRef      string          `json:"transaction_ref"`
	EventName           string          `json:"event_name"`
	Kind                OperationKind   `json:"kind"`
	Direction           Direction       `json:"direction"`
	Amount              decimal.Decimal `json:"amount"`
	Fee                 decimal.Decimal `json:"fee"`
	Split               CommissionSplit `json:"commission_split"`
	TellerID            int64           `json:"teller_id"`
	TellerAccountID     int64           `json:"teller_account_id"`
	PreviousBalance     decimal.Decimal `json:"previous_balance"`
	CurrentBalance      decimal.Decimal `json:"current_balance"`
	SourceBranchID      int32           `json:"source_branch_id"`
	DestinationBranchID int32           `json:"destination_branch_id"`
	InterBranch         bool            `json:"inter_branch"`
	AccountingDate      time.Time       `json:"accounting_date"`
	CreatedAt           time.Time       `json:"created_at"`
}
