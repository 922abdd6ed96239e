// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/corebank/branchledger/internal/domain"
	"github.com/corebank/branchledger/pkg/integritypkg"
	"github.com/corebank/branchledger/pkg/randompkg"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	GetByNumber(ctx context.Context, number string) (domain.Account, error)
	List(ctx context.Context, branchID int32, limit, offset int32) ([]domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo  Repo
	guard *integritypkg.Guard
}

// New returns account service struct to manage account business logic.
func New(repo Repo, guard *integritypkg.Guard) *Service {
	return &Service{repo: repo, guard: guard}
}

// Create opens an account in the IN_PROGRESS state with a sealed zero
// balance. The first credit activates it.
func (s *Service) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	number := arg.Number
	if number == "" {
		number = randompkg.AccountNumber()
	}

	zero := decimal.Zero

	account := domain.Account{
		Number:        number,
		CustomerID:    arg.CustomerID,
		Name:          arg.Name,
		BranchID:      arg.BranchID,
		BankID:        arg.BankID,
		Type:          arg.Type,
		Status:        domain.AccountStatusInProgress,
		Balance:       zero,
		BalanceDigest: s.guard.Seal(zero, number),
		ProductID:     arg.ProductID,
	}

	return s.repo.Create(ctx, account)
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Account, error) {
	return s.repo.Get(ctx, id)
}

// GetByNumber returns the account with the given account number.
func (s *Service) GetByNumber(ctx context.Context, number string) (domain.Account, error) {
	return s.repo.GetByNumber(ctx, number)
}

// List returns a page of the branch's accounts.
func (s *Service) List(ctx context.Context, branchID int32, pageSize, pageID int32) ([]domain.Account, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	return s.repo.List(ctx, branchID, limit, offset)
}
