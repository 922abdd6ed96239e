package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrCustomerNotFound indicates the directory does not know the customer.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrBranchNotFound indicates the directory does not know the branch.
	ErrBranchNotFound = errors.New("branch not found")
	// ErrMembershipNotApproved indicates the customer's membership is not approved.
	ErrMembershipNotApproved = errors.New("customer membership is not approved")
)

// Customer is the directory partner's view of a customer.
type Customer struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Phone              string `json:"phone"`
	Language           string `json:"language"`
	BranchID           int32  `json:"branch_id"`
	MembershipApproved bool   `json:"membership_approved"`
}

// Branch is the directory partner's view of a branch.
type Branch struct {
	ID    int32  `json:"id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// PostingLine is one named amount line of an accounting posting.
type PostingLine struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// PostingRequest is the structured posting submitted to the external
// accounting service after a ledger transaction completes.
type PostingRequest struct {
	Reference      string        `json:"reference"`
	EventName      string        `json:"event_name"`
	BranchCode     string        `json:"branch_code"`
	InterBranch    bool          `json:"inter_branch"`
	AccountingDate time.Time     `json:"accounting_date"`
	Lines          []PostingLine `json:"lines"`
}

// Notification is a rendered message for the notification partner.
type Notification struct {
	Phone    string `json:"phone"`
	Language string `json:"language"`
	Body     string `json:"body"`
}
