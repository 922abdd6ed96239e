package accountservice

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/corebank/branchledger/internal/domain"
	"github.com/corebank/branchledger/pkg/integritypkg"
)

var testGuard = integritypkg.NewGuard("test-digest-key-test-digest-key!")

func TestCreate(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)

	var created domain.Account
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, account domain.Account) (domain.Account, error) {
			created = account
			account.ID = 1
			return account, nil
		})

	service := New(repo, testGuard)

	account, err := service.Create(context.Background(), domain.CreateAccountParams{
		CustomerID: 77,
		Name:       "John Doe",
		BranchID:   10,
		BankID:     1,
		Type:       domain.AccountTypeSavings,
		ProductID:  1,
	})
	require.NoError(t, err)

	require.Equal(t, int64(1), account.ID)
	require.Len(t, created.Number, 12)
	require.Equal(t, domain.AccountStatusInProgress, created.Status)
	require.True(t, created.Balance.IsZero())

	// The zero balance is sealed on creation.
	require.True(t, testGuard.Verify(created.Balance, created.BalanceDigest, created.Number))
}

func TestList(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)

	// Page 3 of size 10 translates to limit 10 offset 20.
	repo.EXPECT().List(gomock.Any(), gomock.Eq(int32(10)), gomock.Eq(int32(10)), gomock.Eq(int32(20))).
		Return([]domain.Account{}, nil)

	service := New(repo, testGuard)

	accounts, err := service.List(context.Background(), 10, 10, 3)
	require.NoError(t, err)
	require.Empty(t, accounts)
}
