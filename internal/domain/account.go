// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountNumberAlreadyExists indicates that the account number is taken.
	ErrAccountNumberAlreadyExists = errors.New("account number already exists")
	// ErrAccountInactive indicates that the account status does not allow the operation.
	ErrAccountInactive = errors.New("account is not active")
	// ErrBalanceIntegrity indicates that the stored balance does not match its digest.
	ErrBalanceIntegrity = errors.New("balance digest verification failed")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrStaleAccount indicates that the account was modified concurrently.
	ErrStaleAccount = errors.New("account was modified by a concurrent operation")
)

// AccountType distinguishes the ledger role of an account.
type AccountType string

// Supported account types.
const (
	AccountTypeSavings AccountType = "SAVINGS"
	AccountTypeCurrent AccountType = "CURRENT"
	AccountTypeLoan    AccountType = "LOAN"
	AccountTypeTeller  AccountType = "TELLER"
)

// AccountStatus is the lifecycle state of an account.
//
// Accounts are never deleted, only status-transitioned.
type AccountStatus string

// Account lifecycle states.
const (
	AccountStatusInProgress AccountStatus = "IN_PROGRESS"
	AccountStatusActive     AccountStatus = "ACTIVE"
	AccountStatusDormant    AccountStatus = "DORMANT"
	AccountStatusClosed     AccountStatus = "CLOSED"
)

// Account holds a customer's financial position.
//
// Balance and BalanceDigest must only be mutated through the ledger writer,
// which verifies the digest first and re-seals after the mutation. Version
// guards against lost updates under concurrent operations.
type Account struct {
	ID              int64           `json:"id"`
	Number          string          `json:"number"`
	CustomerID      int64           `json:"customer_id"`
	Name            string          `json:"name"`
	BranchID        int32           `json:"branch_id"`
	BankID          int32           `json:"bank_id"`
	Type            AccountType     `json:"type"`
	Status          AccountStatus   `json:"status"`
	Balance         decimal.Decimal `json:"balance"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	BalanceDigest   string          `json:"-"`
	ProductID       int32           `json:"product_id"`
	Version         int32           `json:"-"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CreateAccountParams holds data needed for Account creation.
type CreateAccountParams struct {
	Number     string
	CustomerID int64
	Name       string
	BranchID   int32
	BankID     int32
	Type       AccountType
	ProductID  int32
}
