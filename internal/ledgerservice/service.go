// Package ledgerservice builds immutable ledger entries and applies the
// resulting balance transition to the account aggregate.
package ledgerservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/corebank/branchledger/internal/domain"
	"github.com/corebank/branchledger/pkg/integritypkg"
)

// Service is the ledger transaction writer.
type Service struct {
	guard *integritypkg.Guard
}

// New returns a ledger writer backed by the given integrity guard.
func New(guard *integritypkg.Guard) *Service {
	return &Service{guard: guard}
}

// Operation describes one ledger entry to post against one account.
type Operation struct {
	Account               *domain.Account
	Kind                  domain.OperationKind
	Direction             domain.Direction
	Amount                decimal.Decimal // principal, positive
	Fee                   decimal.Decimal
	Tax                   decimal.Decimal
	Reference             string
	CounterpartyAccountID int64
	SourceBranchID        int32
	DestinationBranchID   int32
	InterBranch           bool
	Split                 domain.CommissionSplit
	TellerID              int64
	Calendar              domain.OperationalCalendar
}

// VerifyIntegrity checks the account's stored balance against its digest.
// It must run before any read of the balance that feeds a new computation.
func (s *Service) VerifyIntegrity(ctx context.Context, account *domain.Account) error {
	if !s.guard.Verify(account.Balance, account.BalanceDigest, account.Number) {
		zerolog.Ctx(ctx).Error().
			Str("account", account.Number).
			Msg("balance digest mismatch, refusing operation")

		return domain.ErrBalanceIntegrity
	}

	return nil
}

// Post verifies the account's balance integrity, computes the deterministic
// balance transition and stages it on the aggregate, then returns the
// immutable ledger entry.
//
// The signed delta nets out fee and tax per the entry direction: a credit
// applies +amount-fee-tax, a debit applies -(amount+fee+tax). The first
// credit against an in-progress account activates it.
func (s *Service) Post(ctx context.Context, op Operation) (domain.Transaction, error) {
	if !op.Kind.Valid() {
		return domain.Transaction{}, domain.ErrUnknownOperationKind
	}

	if !op.Amount.IsPositive() {
		return domain.Transaction{}, domain.ErrNegativeAmount
	}

	if op.Fee.IsNegative() || op.Tax.IsNegative() {
		return domain.Transaction{}, domain.ErrInvalidAmount
	}

	account := op.Account

	if err := s.VerifyIntegrity(ctx, account); err != nil {
		return domain.Transaction{}, err
	}

	var delta decimal.Decimal

	switch op.Direction {
	case domain.DirectionCredit:
		delta = op.Amount.Sub(op.Fee).Sub(op.Tax)
	case domain.DirectionDebit:
		delta = op.Amount.Add(op.Fee).Add(op.Tax).Neg()
	default:
		return domain.Transaction{}, domain.ErrInvalidAmount
	}

	previous := account.Balance
	resulting := previous.Add(delta)

	if resulting.IsNegative() {
		return domain.Transaction{}, domain.ErrInsufficientBalance
	}

	account.PreviousBalance = previous
	account.Balance = resulting
	account.BalanceDigest = s.guard.Seal(resulting, account.Number)

	// First-deposit activation.
	if op.Direction == domain.DirectionCredit && account.Status == domain.AccountStatusInProgress {
		account.Status = domain.AccountStatusActive
	}

	senderID, receiverID := account.ID, op.CounterpartyAccountID
	if op.Direction == domain.DirectionCredit {
		senderID, receiverID = op.CounterpartyAccountID, account.ID
	}

	tx := domain.Transaction{
		Reference:           op.Reference,
		Kind:                op.Kind,
		Direction:           op.Direction,
		AccountID:           account.ID,
		Amount:              delta,
		Fee:                 op.Fee,
		Tax:                 op.Tax,
		PreviousBalance:     previous,
		ResultingBalance:    resulting,
		SenderAccountID:     senderID,
		ReceiverAccountID:   receiverID,
		SourceBranchID:      op.SourceBranchID,
		DestinationBranchID: op.DestinationBranchID,
		InterBranch:         op.InterBranch,
		Split:               op.Split,
		Status:              domain.TransactionStatusCompleted,
		TellerID:            op.TellerID,
		AccountingDate:      op.Calendar.AccountingDate,
		CreatedAt:           time.Now(),
	}

	return tx, nil
}
