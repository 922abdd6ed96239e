// Package transferservice manages business logic of inter-account transfers:
// the immediate transfer and the two-phase request/confirm workflow.
package transferservice

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/corebank/branchledger/internal/commission"
	"github.com/corebank/branchledger/internal/domain"
	"github.com/corebank/branchledger/internal/ledgerservice"
	"github.com/corebank/branchledger/internal/postingservice"
	"github.com/corebank/branchledger/internal/tellerservice"
)

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	GetCalendar(ctx context.Context) (domain.OperationalCalendar, error)
	GetTeller(ctx context.Context, id int64) (domain.Teller, error)
	GetAccount(ctx context.Context, id int64) (domain.Account, error)
	GetAccountByNumber(ctx context.Context, number string) (domain.Account, error)
	GetTransferParameter(ctx context.Context, productID int32, transferType domain.TransferType) (domain.TransferParameter, error)
	GetTransfer(ctx context.Context, id int64) (domain.Transfer, error)
	Commit(ctx context.Context, batch domain.OperationBatch) (domain.OperationBatch, error)
}

// Partners provides the external collaborator interface needed by transfer
// service layer.
type Partners interface {
	Customer(ctx context.Context, id int64) (domain.Customer, error)
	Branch(ctx context.Context, id int32) (domain.Branch, error)
	AuthorizeTeller(ctx context.Context, req domain.TellerAuthRequest) (domain.TellerAuthDecision, error)
	SubmitPosting(ctx context.Context, req domain.PostingRequest) error
	Notify(ctx context.Context, msg domain.Notification) error
}

// Service facilitates transfer business logic.
type Service struct {
	repo     Repo
	partners Partners
	writer   *ledgerservice.Service
	teller   *tellerservice.Service
	composer *postingservice.Composer
}

// New returns a transfer service.
func New(repo Repo, partners Partners, writer *ledgerservice.Service, teller *tellerservice.Service, composer *postingservice.Composer) *Service {
	return &Service{
		repo:     repo,
		partners: partners,
		writer:   writer,
		teller:   teller,
		composer: composer,
	}
}

// plan is the fully validated state of a transfer before posting: resolved
// accounts, policy parameters and the computed fee split.
type plan struct {
	calendar      domain.OperationalCalendar
	teller        domain.Teller
	tellerAccount domain.Account
	from          domain.Account
	to            domain.Account
	fromCustomer  domain.Customer
	param         domain.TransferParameter
	transferType  domain.TransferType
	interBranch   bool
	amount        decimal.Decimal
	fee           decimal.Decimal
	split         domain.CommissionSplit
}

// validate runs every Pending invariant of the transfer workflow in order:
// same-account rejection, account resolution and status checks, membership
// approval, teller authorization, limit lookup by resolved type, balance
// integrity, sufficient funds and amount-within-limit.
func (s *Service) validate(ctx context.Context, tellerID int64, arg domain.CreateTransferParams) (plan, error) {
	l := zerolog.Ctx(ctx)

	var p plan

	if !arg.Amount.IsPositive() {
		return p, domain.ErrNegativeAmount
	}

	if arg.FromAccountNumber == arg.ToAccountNumber {
		return p, domain.ErrSameAccountTransfer
	}

	calendar, err := s.repo.GetCalendar(ctx)
	if err != nil {
		l.Error().Err(err).Send()
		return p, err
	}

	if err := calendar.Gate(); err != nil {
		l.Info().Err(err).Send()
		return p, err
	}

	teller, err := s.repo.GetTeller(ctx, tellerID)
	if err != nil {
		l.Info().Err(err).Send()
		return p, err
	}

	tellerAccount, err := s.repo.GetAccount(ctx, teller.AccountID)
	if err != nil {
		l.Error().Err(err).Send()
		return p, err
	}

	from, err := s.repo.GetAccountByNumber(ctx, arg.FromAccountNumber)
	if err != nil {
		l.Info().Err(err).Send()
		return p, err
	}

	to, err := s.repo.GetAccountByNumber(ctx, arg.ToAccountNumber)
	if err != nil {
		l.Info().Err(err).Send()
		return p, err
	}

	if from.Status != domain.AccountStatusActive || to.Status != domain.AccountStatusActive {
		return p, domain.ErrAccountInactive
	}

	fromCustomer, err := s.partners.Customer(ctx, from.CustomerID)
	if err != nil {
		l.Error().Err(err).Send()
		return p, err
	}

	toCustomer, err := s.partners.Customer(ctx, to.CustomerID)
	if err != nil {
		l.Error().Err(err).Send()
		return p, err
	}

	if !fromCustomer.MembershipApproved || !toCustomer.MembershipApproved {
		return p, domain.ErrMembershipNotApproved
	}

	decision, err := s.partners.AuthorizeTeller(ctx, domain.TellerAuthRequest{
		TellerID: teller.ID,
		Kind:     domain.KindTransfer,
		Cash:     false,
		Amount:   arg.Amount,
	})
	if err != nil {
		l.Error().Err(err).Send()
		return p, err
	}

	if !decision.Allowed {
		return p, domain.ErrTellerNotAuthorized
	}

	if arg.Amount.GreaterThan(decision.MaxAmount) {
		return p, domain.ErrTellerCeilingExceeded
	}

	transferType := domain.TransferTypeLocal
	interBranch := from.BranchID != to.BranchID

	if interBranch {
		transferType = domain.TransferTypeInterBranch
	}

	param, err := s.repo.GetTransferParameter(ctx, from.ProductID, transferType)
	if err != nil {
		l.Info().Err(err).Send()
		return p, err
	}

	if !domain.WithinLimits(arg.Amount, param.MinAmount, param.MaxAmount) {
		return p, domain.ErrAmountOutOfRange
	}

	if err := s.writer.VerifyIntegrity(ctx, &from); err != nil {
		return p, err
	}

	fee := domain.Fee(arg.Amount, param.FeeRatePct)

	if from.Balance.Sub(arg.Amount.Add(fee)).IsNegative() {
		return p, domain.ErrInsufficientBalance
	}

	split, err := commission.Allocate(fee, interBranch, param.Shares())
	if err != nil {
		l.Error().Err(err).Send()
		return p, err
	}

	return plan{
		calendar:      calendar,
		teller:        teller,
		tellerAccount: tellerAccount,
		from:          from,
		to:            to,
		fromCustomer:  fromCustomer,
		param:         param,
		transferType:  transferType,
		interBranch:   interBranch,
		amount:        arg.Amount,
		fee:           fee,
		split:         split,
	}, nil
}

// post writes the mirrored debit and credit entries plus the teller audit
// row for a validated plan and stages everything on one batch.
func (s *Service) post(ctx context.Context, p plan, transfer *domain.Transfer) (domain.TransferTxResult, domain.OperationBatch, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	debit, err := s.writer.Post(ctx, ledgerservice.Operation{
		Account:               &p.from,
		Kind:                  domain.KindTransfer,
		Direction:             domain.DirectionDebit,
		Amount:                p.amount,
		Fee:                   p.fee,
		Reference:             transfer.Reference + "-D",
		CounterpartyAccountID: p.to.ID,
		SourceBranchID:        p.from.BranchID,
		DestinationBranchID:   p.to.BranchID,
		InterBranch:           p.interBranch,
		Split:                 p.split,
		TellerID:              p.teller.ID,
		Calendar:              p.calendar,
	})
	if err != nil {
		l.Info().Err(err).Send()
		return result, domain.OperationBatch{}, err
	}

	credit, err := s.writer.Post(ctx, ledgerservice.Operation{
		Account:               &p.to,
		Kind:                  domain.KindTransfer,
		Direction:             domain.DirectionCredit,
		Amount:                p.amount,
		Reference:             transfer.Reference + "-C",
		CounterpartyAccountID: p.from.ID,
		SourceBranchID:        p.from.BranchID,
		DestinationBranchID:   p.to.BranchID,
		InterBranch:           p.interBranch,
		TellerID:              p.teller.ID,
		Calendar:              p.calendar,
	})
	if err != nil {
		l.Error().Err(err).Send()
		return result, domain.OperationBatch{}, err
	}

	tellerOp, err := s.teller.Record(ctx, tellerservice.RecordParams{
		Teller:        p.teller,
		TellerAccount: &p.tellerAccount,
		Transaction:   debit,
		EventName:     fmt.Sprintf("teller_%d_%s", p.teller.ID, transfer.Reference),
		Direction:     domain.DirectionDebit,
		Amount:        p.amount,
		Cash:          false,
		Calendar:      p.calendar,
	})
	if err != nil {
		l.Error().Err(err).Send()
		return result, domain.OperationBatch{}, err
	}

	batch := domain.OperationBatch{
		Accounts:         []*domain.Account{&p.from, &p.to, &p.tellerAccount},
		Transactions:     []*domain.Transaction{&debit, &credit},
		TellerOperations: []*domain.TellerOperation{&tellerOp},
		Transfer:         transfer,
	}

	result = domain.TransferTxResult{
		Transfer:    *transfer,
		DebitEntry:  debit,
		CreditEntry: credit,
		FromAccount: p.from,
		ToAccount:   p.to,
	}

	return result, batch, nil
}

func (s *Service) buildTransfer(p plan, status domain.TransferStatus, tellerID int64) *domain.Transfer {
	return &domain.Transfer{
		Reference:           domain.NewReference(domain.KindTransfer, p.interBranch),
		Type:                p.transferType,
		Status:              status,
		FromAccountNumber:   p.from.Number,
		ToAccountNumber:     p.to.Number,
		FromName:            p.from.Name,
		ToName:              p.to.Name,
		Amount:              p.amount,
		Fee:                 p.fee,
		Split:               p.split,
		SourceBranchID:      p.from.BranchID,
		DestinationBranchID: p.to.BranchID,
		InitiatedBy:         tellerID,
		AccountingDate:      p.calendar.AccountingDate,
	}
}

// Transfer validates and immediately posts a transfer: debit sender, credit
// receiver, teller mirror row, one commit.
func (s *Service) Transfer(ctx context.Context, tellerID int64, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	p, err := s.validate(ctx, tellerID, arg)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	transfer := s.buildTransfer(p, domain.TransferStatusApproved, tellerID)
	transfer.DecidedBy = tellerID
	transfer.DecidedAt = time.Now()

	result, batch, err := s.post(ctx, p, transfer)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	if _, err := s.repo.Commit(ctx, batch); err != nil {
		l.Error().Err(err).Send()
		return domain.TransferTxResult{}, err
	}

	s.report(ctx, result.DebitEntry, p)

	return result, nil
}

// Request validates the transfer and records it in Pending state. No balance
// is mutated until the confirmation step approves the request.
func (s *Service) Request(ctx context.Context, tellerID int64, arg domain.CreateTransferParams) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	p, err := s.validate(ctx, tellerID, arg)
	if err != nil {
		return domain.Transfer{}, err
	}

	transfer := s.buildTransfer(p, domain.TransferStatusPending, tellerID)

	batch, err := s.repo.Commit(ctx, domain.OperationBatch{Transfer: transfer})
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Transfer{}, err
	}

	if batch.Transfer != nil {
		transfer = batch.Transfer
	}

	return *transfer, nil
}

// Confirm decides a pending transfer. Rejection records the decision only;
// approval re-validates the pending invariants and posts the ledger entries.
// A transfer that already left Pending returns ErrTransferAlreadyDecided.
func (s *Service) Confirm(ctx context.Context, tellerID int64, transferID int64, decision domain.TransferDecision, comment string) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	if decision != domain.TransferDecisionApprove && decision != domain.TransferDecisionReject {
		return domain.TransferTxResult{}, domain.ErrUnknownTransferDecision
	}

	calendar, err := s.repo.GetCalendar(ctx)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.TransferTxResult{}, err
	}

	if err := calendar.Gate(); err != nil {
		l.Info().Err(err).Send()
		return domain.TransferTxResult{}, err
	}

	transfer, err := s.repo.GetTransfer(ctx, transferID)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.TransferTxResult{}, err
	}

	if transfer.Status != domain.TransferStatusPending {
		return domain.TransferTxResult{}, domain.ErrTransferAlreadyDecided
	}

	transfer.DecidedBy = tellerID
	transfer.Comment = comment
	transfer.DecidedAt = time.Now()

	if decision == domain.TransferDecisionReject {
		transfer.Status = domain.TransferStatusRejected

		if _, err := s.repo.Commit(ctx, domain.OperationBatch{Transfer: &transfer}); err != nil {
			l.Error().Err(err).Send()
			return domain.TransferTxResult{}, err
		}

		return domain.TransferTxResult{Transfer: transfer}, nil
	}

	// Approval: none of the Pending invariants may have been violated in
	// the meantime.
	p, err := s.validate(ctx, tellerID, domain.CreateTransferParams{
		FromAccountNumber: transfer.FromAccountNumber,
		ToAccountNumber:   transfer.ToAccountNumber,
		Amount:            transfer.Amount,
	})
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	// The charges were fixed at request time.
	p.fee = transfer.Fee
	p.split = transfer.Split

	if p.from.Balance.Sub(transfer.Amount.Add(transfer.Fee)).IsNegative() {
		return domain.TransferTxResult{}, domain.ErrInsufficientBalance
	}

	transfer.Status = domain.TransferStatusApproved

	result, batch, err := s.post(ctx, p, &transfer)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	if _, err := s.repo.Commit(ctx, batch); err != nil {
		l.Error().Err(err).Send()
		return domain.TransferTxResult{}, err
	}

	s.report(ctx, result.DebitEntry, p)

	return result, nil
}

// Get returns the transfer record with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Transfer, error) {
	return s.repo.GetTransfer(ctx, id)
}

// report submits the accounting posting and the sender notification after
// the commit point; failures never roll back the ledger.
func (s *Service) report(ctx context.Context, debit domain.Transaction, p plan) {
	l := zerolog.Ctx(ctx)

	branch, err := s.partners.Branch(ctx, p.from.BranchID)
	if err != nil {
		l.Error().Err(err).Str("reference", debit.Reference).Msg("branch lookup failed, skipping accounting posting")
		return
	}

	posting := s.composer.Compose(debit, branch, p.interBranch)
	if err := s.partners.SubmitPosting(ctx, posting); err != nil {
		l.Error().Err(err).Str("reference", debit.Reference).Msg("accounting posting failed")
	}

	msg := domain.Notification{
		Phone:    p.fromCustomer.Phone,
		Language: p.fromCustomer.Language,
		Body: fmt.Sprintf("transfer %s to account %s. Balance: %s",
			p.amount.StringFixed(2), p.to.Number, p.from.Balance.StringFixed(2)),
	}

	if err := s.partners.Notify(ctx, msg); err != nil {
		l.Error().Err(err).Str("reference", debit.Reference).Msg("notification failed")
	}
}
