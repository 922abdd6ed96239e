package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrTellerNotFound indicates that the teller is not found.
	ErrTellerNotFound = errors.New("teller not found")
	// ErrWrongPassword indicates the wrong password for the given teller.
	ErrWrongPassword = errors.New("wrong password")
	// ErrTellerNotAuthorized indicates the teller may not perform the operation.
	ErrTellerNotAuthorized = errors.New("teller is not authorized for this operation")
	// ErrTellerCeilingExceeded indicates the amount exceeds the teller's authorized ceiling.
	ErrTellerCeilingExceeded = errors.New("amount exceeds teller authorized ceiling")
)

// Teller is an actor representing a cash drawer, subject to authorization
// ceilings checked through the external teller authorization partner.
type Teller struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	FullName       string    `json:"full_name"`
	HashedPassword string    `json:"-"`
	BranchID       int32     `json:"branch_id"`
	AccountID      int64     `json:"account_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// TellerAuthRequest asks the authorization partner whether a teller may run
// an operation of the given kind and amount.
type TellerAuthRequest struct {
	TellerID int64           `json:"teller_id"`
	Kind     OperationKind   `json:"kind"`
	Cash     bool            `json:"cash"`
	Amount   decimal.Decimal `json:"amount"`
}

// TellerAuthDecision is the authorization partner's verdict.
type TellerAuthDecision struct {
	Allowed   bool            `json:"allowed"`
	MaxAmount decimal.Decimal `json:"max_amount"`
}
