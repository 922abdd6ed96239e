// Package tellerservice mirrors cash-affecting operations on the teller's
// drawer ledger and manages teller sessions.
package tellerservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/corebank/branchledger/internal/domain"
	"github.com/corebank/branchledger/pkg/integritypkg"
	"github.com/corebank/branchledger/pkg/passpkg"
	"github.com/corebank/branchledger/pkg/tokenpkg"
)

// Repo provides data access layer interface needed by teller service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package tellerservice
type Repo interface {
	GetTellerByUsername(ctx context.Context, username string) (domain.Teller, error)
}

// Service facilitates teller service layer logic.
type Service struct {
	repo          Repo
	guard         *integritypkg.Guard
	tokenMaker    tokenpkg.Maker
	tokenDuration time.Duration
}

// New returns a teller service.
func New(repo Repo, guard *integritypkg.Guard, tokenMaker tokenpkg.Maker, tokenDuration time.Duration) *Service {
	return &Service{
		repo:          repo,
		guard:         guard,
		tokenMaker:    tokenMaker,
		tokenDuration: tokenDuration,
	}
}

// Login verifies the teller credentials and issues a session token.
func (s *Service) Login(ctx context.Context, username, password string) (string, domain.Teller, error) {
	l := zerolog.Ctx(ctx)

	teller, err := s.repo.GetTellerByUsername(ctx, username)
	if err != nil {
		l.Info().Err(err).Send()
		return "", domain.Teller{}, err
	}

	if err := passpkg.Check(password, teller.HashedPassword); err != nil {
		l.Info().Err(err).Send()
		return "", domain.Teller{}, domain.ErrWrongPassword
	}

	token, _, err := s.tokenMaker.CreateToken(teller.ID, teller.Username, s.tokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", domain.Teller{}, err
	}

	return token, teller, nil
}

// RecordParams describes one drawer movement to mirror.
type RecordParams struct {
	Teller        domain.Teller
	TellerAccount *domain.Account
	Transaction   domain.Transaction
	EventName     string
	Direction     domain.Direction
	Amount        decimal.Decimal
	// Cash marks operations that physically move drawer cash. Only cash,
	// non-inter-branch movements mutate the teller account balance here;
	// inter-branch cash settles through the accounting posting instead.
	Cash     bool
	Calendar domain.OperationalCalendar
}

// Record appends a TellerOperation mirroring the given ledger transaction.
//
// Authorization is a precondition checked by the caller through the teller
// authorization partner; Record itself only records.
func (s *Service) Record(ctx context.Context, arg RecordParams) (domain.TellerOperation, error) {
	l := zerolog.Ctx(ctx)

	if !arg.Amount.IsPositive() {
		return domain.TellerOperation{}, domain.ErrNegativeAmount
	}

	account := arg.TellerAccount
	previous := account.Balance
	current := previous

	if arg.Cash && !arg.Transaction.InterBranch {
		if !s.guard.Verify(account.Balance, account.BalanceDigest, account.Number) {
			l.Error().
				Str("account", account.Number).
				Msg("teller account digest mismatch, refusing operation")

			return domain.TellerOperation{}, domain.ErrBalanceIntegrity
		}

		switch arg.Direction {
		case domain.DirectionCredit:
			current = previous.Add(arg.Amount)
		case domain.DirectionDebit:
			current = previous.Sub(arg.Amount)

			if current.IsNegative() {
				return domain.TellerOperation{}, domain.ErrInsufficientBalance
			}
		default:
			return domain.TellerOperation{}, domain.ErrInvalidAmount
		}

		account.PreviousBalance = previous
		account.Balance = current
		account.BalanceDigest = s.guard.Seal(current, account.Number)
	}

	op := domain.TellerOperation{
		TransactionRef:      arg.Transaction.Reference,
		EventName:           arg.EventName,
		Kind:                arg.Transaction.Kind,
		Direction:           arg.Direction,
		Amount:              arg.Amount,
		Fee:                 arg.Transaction.Fee,
		Split:               arg.Transaction.Split,
		TellerID:            arg.Teller.ID,
		TellerAccountID:     account.ID,
		PreviousBalance:     previous,
		CurrentBalance:      current,
		SourceBranchID:      arg.Transaction.SourceBranchID,
		DestinationBranchID: arg.Transaction.DestinationBranchID,
		InterBranch:         arg.Transaction.InterBranch,
		AccountingDate:      arg.Calendar.AccountingDate,
		CreatedAt:           time.Now(),
	}

	return op, nil
}
