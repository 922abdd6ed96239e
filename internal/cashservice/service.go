// Package cashservice manages business logic of teller cash operations:
// deposits, withdrawals and loan repayments.
package cashservice

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/corebank/branchledger/internal/commission"
	"github.com/corebank/branchledger/internal/domain"
	"github.com/corebank/branchledger/internal/ledgerservice"
	"github.com/corebank/branchledger/internal/postingservice"
	"github.com/corebank/branchledger/internal/tellerservice"
)

// Repo provides data access layer interface needed by cash service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package cashservice
type Repo interface {
	GetCalendar(ctx context.Context) (domain.OperationalCalendar, error)
	GetTeller(ctx context.Context, id int64) (domain.Teller, error)
	GetAccount(ctx context.Context, id int64) (domain.Account, error)
	GetAccountByNumber(ctx context.Context, number string) (domain.Account, error)
	GetDepositParameter(ctx context.Context, productID int32) (domain.CashDepositParameter, error)
	GetWithdrawalParameter(ctx context.Context, productID int32) (domain.CashWithdrawalParameter, error)
	GetTransactionByReference(ctx context.Context, reference string) (domain.Transaction, error)
	Commit(ctx context.Context, batch domain.OperationBatch) (domain.OperationBatch, error)
}

// Partners provides the external collaborator interface needed by cash
// service layer: directory lookups, teller authorization, accounting posting
// and notification delivery.
type Partners interface {
	Customer(ctx context.Context, id int64) (domain.Customer, error)
	Branch(ctx context.Context, id int32) (domain.Branch, error)
	AuthorizeTeller(ctx context.Context, req domain.TellerAuthRequest) (domain.TellerAuthDecision, error)
	SubmitPosting(ctx context.Context, req domain.PostingRequest) error
	Notify(ctx context.Context, msg domain.Notification) error
}

// Service facilitates cash operation business logic.
type Service struct {
	repo     Repo
	partners Partners
	writer   *ledgerservice.Service
	teller   *tellerservice.Service
	composer *postingservice.Composer
}

// New returns a cash service.
func New(repo Repo, partners Partners, writer *ledgerservice.Service, teller *tellerservice.Service, composer *postingservice.Composer) *Service {
	return &Service{
		repo:     repo,
		partners: partners,
		writer:   writer,
		teller:   teller,
		composer: composer,
	}
}

// OperationParams is the input data for a cash operation.
type OperationParams struct {
	AccountNumber string
	Amount        decimal.Decimal
}

// OperationResult is the committed outcome of a cash operation.
type OperationResult struct {
	Transaction domain.Transaction `json:"transaction"`
	Account     domain.Account     `json:"account"`
}

// Deposit credits cash handed to the teller onto the account.
func (s *Service) Deposit(ctx context.Context, tellerID int64, arg OperationParams) (OperationResult, error) {
	return s.run(ctx, tellerID, arg, domain.KindCashDeposit)
}

// Withdraw debits cash paid out by the teller from the account.
func (s *Service) Withdraw(ctx context.Context, tellerID int64, arg OperationParams) (OperationResult, error) {
	return s.run(ctx, tellerID, arg, domain.KindCashWithdrawal)
}

// RepayLoan credits a repayment onto a loan account.
func (s *Service) RepayLoan(ctx context.Context, tellerID int64, arg OperationParams) (OperationResult, error) {
	return s.run(ctx, tellerID, arg, domain.KindLoanRepayment)
}

// GetTransaction returns the ledger entry with the given reference.
func (s *Service) GetTransaction(ctx context.Context, reference string) (domain.Transaction, error) {
	return s.repo.GetTransactionByReference(ctx, reference)
}

// policy is the resolved per-product limit and share configuration for one
// operation kind.
type policy struct {
	min, max decimal.Decimal
	feeRate  decimal.Decimal
	shares   domain.ShareConfig
}

func (s *Service) lookupPolicy(ctx context.Context, kind domain.OperationKind, productID int32) (policy, error) {
	switch kind {
	case domain.KindCashDeposit, domain.KindLoanRepayment:
		p, err := s.repo.GetDepositParameter(ctx, productID)
		if err != nil {
			return policy{}, err
		}

		return policy{min: p.MinAmount, max: p.MaxAmount, feeRate: p.FeeRatePct, shares: p.Shares()}, nil
	case domain.KindCashWithdrawal:
		p, err := s.repo.GetWithdrawalParameter(ctx, productID)
		if err != nil {
			return policy{}, err
		}

		return policy{min: p.MinAmount, max: p.MaxAmount, feeRate: p.FeeRatePct, shares: p.Shares()}, nil
	}

	return policy{}, domain.ErrUnknownOperationKind
}

func (s *Service) run(ctx context.Context, tellerID int64, arg OperationParams, kind domain.OperationKind) (OperationResult, error) {
	l := zerolog.Ctx(ctx)

	if !arg.Amount.IsPositive() {
		return OperationResult{}, domain.ErrNegativeAmount
	}

	calendar, err := s.repo.GetCalendar(ctx)
	if err != nil {
		l.Error().Err(err).Send()
		return OperationResult{}, err
	}

	if err := calendar.Gate(); err != nil {
		l.Info().Err(err).Send()
		return OperationResult{}, err
	}

	teller, err := s.repo.GetTeller(ctx, tellerID)
	if err != nil {
		l.Info().Err(err).Send()
		return OperationResult{}, err
	}

	tellerAccount, err := s.repo.GetAccount(ctx, teller.AccountID)
	if err != nil {
		l.Error().Err(err).Send()
		return OperationResult{}, err
	}

	account, err := s.repo.GetAccountByNumber(ctx, arg.AccountNumber)
	if err != nil {
		l.Info().Err(err).Send()
		return OperationResult{}, err
	}

	if account.Status == domain.AccountStatusClosed {
		return OperationResult{}, domain.ErrAccountInactive
	}

	if kind == domain.KindCashWithdrawal && account.Status != domain.AccountStatusActive {
		return OperationResult{}, domain.ErrAccountInactive
	}

	if kind == domain.KindLoanRepayment && account.Type != domain.AccountTypeLoan {
		return OperationResult{}, domain.ErrAccountInactive
	}

	if err := s.writer.VerifyIntegrity(ctx, &account); err != nil {
		return OperationResult{}, err
	}

	customer, err := s.partners.Customer(ctx, account.CustomerID)
	if err != nil {
		l.Error().Err(err).Send()
		return OperationResult{}, err
	}

	if !customer.MembershipApproved {
		return OperationResult{}, domain.ErrMembershipNotApproved
	}

	decision, err := s.partners.AuthorizeTeller(ctx, domain.TellerAuthRequest{
		TellerID: teller.ID,
		Kind:     kind,
		Cash:     true,
		Amount:   arg.Amount,
	})
	if err != nil {
		l.Error().Err(err).Send()
		return OperationResult{}, err
	}

	if !decision.Allowed {
		return OperationResult{}, domain.ErrTellerNotAuthorized
	}

	if arg.Amount.GreaterThan(decision.MaxAmount) {
		return OperationResult{}, domain.ErrTellerCeilingExceeded
	}

	pol, err := s.lookupPolicy(ctx, kind, account.ProductID)
	if err != nil {
		l.Info().Err(err).Send()
		return OperationResult{}, err
	}

	if !domain.WithinLimits(arg.Amount, pol.min, pol.max) {
		return OperationResult{}, domain.ErrAmountOutOfRange
	}

	interBranch := teller.BranchID != account.BranchID
	fee := domain.Fee(arg.Amount, pol.feeRate)

	split, err := commission.Allocate(fee, interBranch, pol.shares)
	if err != nil {
		l.Error().Err(err).Send()
		return OperationResult{}, err
	}

	direction := domain.DirectionCredit
	tellerDirection := domain.DirectionCredit

	if kind == domain.KindCashWithdrawal {
		direction = domain.DirectionDebit
		tellerDirection = domain.DirectionDebit
	}

	tx, err := s.writer.Post(ctx, ledgerservice.Operation{
		Account:               &account,
		Kind:                  kind,
		Direction:             direction,
		Amount:                arg.Amount,
		Fee:                   fee,
		Reference:             domain.NewReference(kind, interBranch),
		CounterpartyAccountID: tellerAccount.ID,
		SourceBranchID:        teller.BranchID,
		DestinationBranchID:   account.BranchID,
		InterBranch:           interBranch,
		Split:                 split,
		TellerID:              teller.ID,
		Calendar:              calendar,
	})
	if err != nil {
		l.Info().Err(err).Send()
		return OperationResult{}, err
	}

	tellerOp, err := s.teller.Record(ctx, tellerservice.RecordParams{
		Teller:        teller,
		TellerAccount: &tellerAccount,
		Transaction:   tx,
		EventName:     fmt.Sprintf("teller_%d_%s", teller.ID, tx.Reference),
		Direction:     tellerDirection,
		Amount:        arg.Amount,
		Cash:          true,
		Calendar:      calendar,
	})
	if err != nil {
		l.Info().Err(err).Send()
		return OperationResult{}, err
	}

	batch := domain.OperationBatch{
		Accounts:         []*domain.Account{&account, &tellerAccount},
		Transactions:     []*domain.Transaction{&tx},
		TellerOperations: []*domain.TellerOperation{&tellerOp},
	}

	if _, err := s.repo.Commit(ctx, batch); err != nil {
		l.Error().Err(err).Send()
		return OperationResult{}, err
	}

	s.report(ctx, tx, account, customer)

	return OperationResult{Transaction: tx, Account: account}, nil
}

// report submits the accounting posting and the customer notification after
// the commit point. Failures are surfaced in logs only; the ledger commit is
// never rolled back for a downstream partner failure.
func (s *Service) report(ctx context.Context, tx domain.Transaction, account domain.Account, customer domain.Customer) {
	l := zerolog.Ctx(ctx)

	branch, err := s.partners.Branch(ctx, tx.SourceBranchID)
	if err != nil {
		l.Error().Err(err).Str("reference", tx.Reference).Msg("branch lookup failed, skipping accounting posting")
		return
	}

	posting := s.composer.Compose(tx, branch, tx.InterBranch)
	if err := s.partners.SubmitPosting(ctx, posting); err != nil {
		l.Error().Err(err).Str("reference", tx.Reference).Msg("accounting posting failed")
	}

	msg := domain.Notification{
		Phone:    customer.Phone,
		Language: customer.Language,
		Body: fmt.Sprintf("%s %s on account %s. Balance: %s",
			posting.EventName, tx.Amount.Abs().StringFixed(2), account.Number, account.Balance.StringFixed(2)),
	}

	if err := s.partners.Notify(ctx, msg); err != nil {
		l.Error().Err(err).Str("reference", tx.Reference).Msg("notification failed")
	}
}
