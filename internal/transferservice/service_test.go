package transferservice

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/corebank/branchledger/internal/domain"
	"github.com/corebank/branchledger/internal/ledgerservice"
	"github.com/corebank/branchledger/internal/postingservice"
	"github.com/corebank/branchledger/internal/tellerservice"
	"github.com/corebank/branchledger/pkg/integritypkg"
	"github.com/corebank/branchledger/pkg/randompkg"
	"github.com/corebank/branchledger/pkg/tokenpkg"
)

var testGuard = integritypkg.NewGuard("test-digest-key-test-digest-key!")

func newTestService(t *testing.T, repo Repo, partners Partners) *Service {
	t.Helper()

	writer := ledgerservice.New(testGuard)

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	teller := tellerservice.New(nil, testGuard, tokenMaker, time.Minute)

	return New(repo, partners, writer, teller, postingservice.NewComposer())
}

func sealedAccount(balance int64, branchID int32) domain.Account {
	number := randompkg.AccountNumber()
	b := decimal.NewFromInt(balance)

	return domain.Account{
		ID:            int64(randompkg.IntBetween(1, 100_000)),
		Number:        number,
		CustomerID:    77,
		BranchID:      branchID,
		Type:          domain.AccountTypeSavings,
		Status:        domain.AccountStatusActive,
		Balance:       b,
		BalanceDigest: testGuard.Seal(b, number),
		ProductID:     1,
	}
}

func openCalendar() domain.OperationalCalendar {
	return domain.OperationalCalendar{
		AccountingDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		DayOpen:        true,
		YearOpen:       true,
	}
}

func testTeller(branchID int32) (domain.Teller, domain.Account) {
	teller := domain.Teller{ID: 3, Username: "drawer3", BranchID: branchID, AccountID: 900}

	number := randompkg.AccountNumber()
	balance := decimal.NewFromInt(50_000)
	account := domain.Account{
		ID:            900,
		Number:        number,
		BranchID:      branchID,
		Type:          domain.AccountTypeTeller,
		Status:        domain.AccountStatusActive,
		Balance:       balance,
		BalanceDigest: testGuard.Seal(balance, number),
	}

	return teller, account
}

func transferParameter(transferType domain.TransferType) domain.TransferParameter {
	return domain.TransferParameter{
		ProductID:            1,
		Type:                 transferType,
		MinAmount:            decimal.NewFromInt(10),
		MaxAmount:            decimal.NewFromInt(1_000_000),
		FeeRatePct:           decimal.NewFromInt(1),
		SourceBranchPct:      decimal.NewFromInt(60),
		DestinationBranchPct: decimal.NewFromInt(40),
	}
}

func allowAll() domain.TellerAuthDecision {
	return domain.TellerAuthDecision{Allowed: true, MaxAmount: decimal.NewFromInt(1_000_000)}
}

func approvedCustomer() domain.Customer {
	return domain.Customer{
		ID:                 77,
		Name:               randompkg.Owner(),
		Phone:              randompkg.Phone(),
		Language:           "en",
		MembershipApproved: true,
	}
}

// stubHappyPath wires every lookup the validation step performs for a transfer
// between the given accounts.
func stubHappyPath(repo *MockRepo, partners *MockPartners, teller domain.Teller, tellerAccount, from, to domain.Account, transferType domain.TransferType) {
	repo.EXPECT().GetCalendar(gomock.Any()).Return(openCalendar(), nil)
	repo.EXPECT().GetTeller(gomock.Any(), gomock.Eq(teller.ID)).Return(teller, nil)
	repo.EXPECT().GetAccount(gomock.Any(), gomock.Eq(teller.AccountID)).Return(tellerAccount, nil)
	repo.EXPECT().GetAccountByNumber(gomock.Any(), gomock.Eq(from.Number)).Return(from, nil)
	repo.EXPECT().GetAccountByNumber(gomock.Any(), gomock.Eq(to.Number)).Return(to, nil)
	partners.EXPECT().Customer(gomock.Any(), gomock.Any()).Times(2).Return(approvedCustomer(), nil)
	partners.EXPECT().AuthorizeTeller(gomock.Any(), gomock.Any()).Return(allowAll(), nil)
	repo.EXPECT().GetTransferParameter(gomock.Any(), gomock.Eq(from.ProductID), gomock.Eq(transferType)).
		Return(transferParameter(transferType), nil)
}

func TestTransferInterBranch(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	partners := NewMockPartners(ctrl)

	teller, tellerAccount := testTeller(10)
	from := sealedAccount(100_000, 10)
	to := sealedAccount(5_000, 20)

	stubHappyPath(repo, partners, teller, tellerAccount, from, to, domain.TransferTypeInterBranch)

	var committed domain.OperationBatch
	repo.EXPECT().Commit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, batch domain.OperationBatch) (domain.OperationBatch, error) {
			committed = batch
			return batch, nil
		})
	partners.EXPECT().Branch(gomock.Any(), gomock.Eq(from.BranchID)).Return(domain.Branch{ID: 10, Code: "BR010"}, nil)
	partners.EXPECT().SubmitPosting(gomock.Any(), gomock.Any()).Return(nil)
	partners.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil)

	service := newTestService(t, repo, partners)

	res, err := service.Transfer(context.Background(), teller.ID, domain.CreateTransferParams{
		FromAccountNumber: from.Number,
		ToAccountNumber:   to.Number,
		Amount:            decimal.NewFromInt(20_000),
	})
	require.NoError(t, err)

	require.Equal(t, domain.TransferStatusApproved, res.Transfer.Status)
	require.Equal(t, domain.TransferTypeInterBranch, res.Transfer.Type)
	require.Equal(t, teller.ID, res.Transfer.DecidedBy)

	// Sender is charged amount plus 1% fee: 100000 - 20000 - 200 = 79800.
	require.True(t, res.DebitEntry.ResultingBalance.Equal(decimal.NewFromInt(79_800)),
		"sender resulting balance = %s", res.DebitEntry.ResultingBalance)
	require.True(t, res.DebitEntry.Fee.Equal(decimal.NewFromInt(200)))

	// Receiver gets the full principal, no fee on the credit leg.
	require.True(t, res.CreditEntry.ResultingBalance.Equal(decimal.NewFromInt(25_000)),
		"receiver resulting balance = %s", res.CreditEntry.ResultingBalance)
	require.True(t, res.CreditEntry.Fee.IsZero())

	// Fee 200 split 60/40 between source and destination branches.
	require.True(t, res.DebitEntry.Split.SourceBranch.Equal(decimal.NewFromInt(120)))
	require.True(t, res.DebitEntry.Split.DestinationBranch.Equal(decimal.NewFromInt(80)))
	require.True(t, res.DebitEntry.Split.Total().Equal(res.DebitEntry.Fee))

	// Mirrored legs share one reference base.
	require.True(t, strings.HasSuffix(res.DebitEntry.Reference, "-D"))
	require.True(t, strings.HasSuffix(res.CreditEntry.Reference, "-C"))
	require.Equal(t,
		strings.TrimSuffix(res.DebitEntry.Reference, "-D"),
		strings.TrimSuffix(res.CreditEntry.Reference, "-C"))

	// One commit carries both mutated accounts, both legs, the teller audit
	// row and the transfer record.
	require.Len(t, committed.Accounts, 3)
	require.Len(t, committed.Transactions, 2)
	require.Len(t, committed.TellerOperations, 1)
	require.NotNil(t, committed.Transfer)

	// Re-sealed digests verify against the new balances.
	require.True(t, testGuard.Verify(res.FromAccount.Balance, res.FromAccount.BalanceDigest, res.FromAccount.Number))
	require.True(t, testGuard.Verify(res.ToAccount.Balance, res.ToAccount.BalanceDigest, res.ToAccount.Number))
}

func TestTransferValidation(t *testing.T) {
	t.Parallel()

	branchID := int32(10)
	teller, tellerAccount := testTeller(branchID)

	testCases := []struct {
		name       string
		arg        func() domain.CreateTransferParams
		buildStubs func(repo *MockRepo, partners *MockPartners)
		wantErr    error
	}{
		{
			name: "Same account refused before any lookup",
			arg: func() domain.CreateTransferParams {
				number := randompkg.AccountNumber()
				return domain.CreateTransferParams{
					FromAccountNumber: number,
					ToAccountNumber:   number,
					Amount:            decimal.NewFromInt(100),
				}
			},
			buildStubs: func(repo *MockRepo, partners *MockPartners) {
				repo.EXPECT().GetCalendar(gomock.Any()).Times(0)
				repo.EXPECT().Commit(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrSameAccountTransfer,
		},
		{
			name: "Negative amount",
			arg: func() domain.CreateTransferParams {
				return domain.CreateTransferParams{
					FromAccountNumber: randompkg.AccountNumber(),
					ToAccountNumber:   randompkg.AccountNumber(),
					Amount:            decimal.NewFromInt(-100),
				}
			},
			buildStubs: func(repo *MockRepo, partners *MockPartners) {
				repo.EXPECT().Commit(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrNegativeAmount,
		},
		{
			name: "Day closed",
			arg: func() domain.CreateTransferParams {
				return domain.CreateTransferParams{
					FromAccountNumber: randompkg.AccountNumber(),
					ToAccountNumber:   randompkg.AccountNumber(),
					Amount:            decimal.NewFromInt(100),
				}
			},
			buildStubs: func(repo *MockRepo, partners *MockPartners) {
				closed := openCalendar()
				closed.DayOpen = false
				repo.EXPECT().GetCalendar(gomock.Any()).Return(closed, nil)
				repo.EXPECT().Commit(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrDayClosed,
		},
	}

	from := sealedAccount(100_000, branchID)
	to := sealedAccount(5_000, branchID)
	to.Status = domain.AccountStatusDormant

	testCases = append(testCases, struct {
		name       string
		arg        func() domain.CreateTransferParams
		buildStubs func(repo *MockRepo, partners *MockPartners)
		wantErr    error
	}{
		name: "Inactive receiver",
		arg: func() domain.CreateTransferParams {
			return domain.CreateTransferParams{
				FromAccountNumber: from.Number,
				ToAccountNumber:   to.Number,
				Amount:            decimal.NewFromInt(100),
			}
		},
		buildStubs: func(repo *MockRepo, partners *MockPartners) {
			repo.EXPECT().GetCalendar(gomock.Any()).Return(openCalendar(), nil)
			repo.EXPECT().GetTeller(gomock.Any(), gomock.Any()).Return(teller, nil)
			repo.EXPECT().GetAccount(gomock.Any(), gomock.Any()).Return(tellerAccount, nil)
			repo.EXPECT().GetAccountByNumber(gomock.Any(), gomock.Eq(from.Number)).Return(from, nil)
			repo.EXPECT().GetAccountByNumber(gomock.Any(), gomock.Eq(to.Number)).Return(to, nil)
			repo.EXPECT().Commit(gomock.Any(), gomock.Any()).Times(0)
		},
		wantErr: domain.ErrAccountInactive,
	})

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			repo := NewMockRepo(ctrl)
			partners := NewMockPartners(ctrl)

			arg := tc.arg()
			tc.buildStubs(repo, partners)

			service := newTestService(t, repo, partners)

			_, err := service.Transfer(context.Background(), teller.ID, arg)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestTransferInsufficientFunds(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	partners := NewMockPartners(ctrl)

	teller, tellerAccount := testTeller(10)
	from := sealedAccount(1_000, 10)
	to := sealedAccount(5_000, 10)

	stubHappyPath(repo, partners, teller, tellerAccount, from, to, domain.TransferTypeLocal)
	repo.EXPECT().Commit(gomock.Any(), gomock.Any()).Times(0)

	service := newTestService(t, repo, partners)

	// Amount fits the balance but amount+fee does not: 1000 < 1000 + 10.
	_, err := service.Transfer(context.Background(), teller.ID, domain.CreateTransferParams{
		FromAccountNumber: from.Number,
		ToAccountNumber:   to.Number,
		Amount:            decimal.NewFromInt(1_000),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestRequest(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	partners := NewMockPartners(ctrl)

	teller, tellerAccount := testTeller(10)
	from := sealedAccount(100_000, 10)
	to := sealedAccount(5_000, 10)

	stubHappyPath(repo, partners, teller, tellerAccount, from, to, domain.TransferTypeLocal)

	var committed domain.OperationBatch
	repo.EXPECT().Commit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, batch domain.OperationBatch) (domain.OperationBatch, error) {
			committed = batch
			batch.Transfer.ID = 42
			return batch, nil
		})

	service := newTestService(t, repo, partners)

	transfer, err := service.Request(context.Background(), teller.ID, domain.CreateTransferParams{
		FromAccountNumber: from.Number,
		ToAccountNumber:   to.Number,
		Amount:            decimal.NewFromInt(20_000),
	})
	require.NoError(t, err)

	require.Equal(t, int64(42), transfer.ID)
	require.Equal(t, domain.TransferStatusPending, transfer.Status)
	require.Equal(t, teller.ID, transfer.InitiatedBy)

	// The fee is fixed at request time for the confirmation step to reuse.
	require.True(t, transfer.Fee.Equal(decimal.NewFromInt(200)))

	// A pending request mutates no balance and writes no ledger entry.
	require.Empty(t, committed.Accounts)
	require.Empty(t, committed.Transactions)
	require.Empty(t, committed.TellerOperations)
	require.NotNil(t, committed.Transfer)
}

func pendingTransfer(from, to domain.Account) domain.Transfer {
	return domain.Transfer{
		ID:                  42,
		Reference:           domain.NewReference(domain.KindTransfer, false),
		Type:                domain.TransferTypeLocal,
		Status:              domain.TransferStatusPending,
		FromAccountNumber:   from.Number,
		ToAccountNumber:     to.Number,
		Amount:              decimal.NewFromInt(20_000),
		Fee:                 decimal.NewFromInt(200),
		Split:               domain.CommissionSplit{SourceBranch: decimal.NewFromInt(200)},
		SourceBranchID:      from.BranchID,
		DestinationBranchID: to.BranchID,
		InitiatedBy:         3,
		AccountingDate:      openCalendar().AccountingDate,
	}
}

func TestConfirmApprove(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	partners := NewMockPartners(ctrl)

	teller, tellerAccount := testTeller(10)
	from := sealedAccount(100_000, 10)
	to := sealedAccount(5_000, 10)
	transfer := pendingTransfer(from, to)

	repo.EXPECT().GetCalendar(gomock.Any()).Return(openCalendar(), nil)
	repo.EXPECT().GetTransfer(gomock.Any(), gomock.Eq(transfer.ID)).Return(transfer, nil)

	// Approval re-validates every pending invariant.
	stubHappyPath(repo, partners, teller, tellerAccount, from, to, domain.TransferTypeLocal)

	var committed domain.OperationBatch
	repo.EXPECT().Commit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, batch domain.OperationBatch) (domain.OperationBatch, error) {
			committed = batch
			return batch, nil
		})
	partners.EXPECT().Branch(gomock.Any(), gomock.Any()).Return(domain.Branch{ID: 10, Code: "BR010"}, nil)
	partners.EXPECT().SubmitPosting(gomock.Any(), gomock.Any()).Return(nil)
	partners.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil)

	service := newTestService(t, repo, partners)

	res, err := service.Confirm(context.Background(), teller.ID, transfer.ID, domain.TransferDecisionApprove, "checked")
	require.NoError(t, err)

	require.Equal(t, domain.TransferStatusApproved, res.Transfer.Status)
	require.Equal(t, teller.ID, res.Transfer.DecidedBy)
	require.Equal(t, "checked", res.Transfer.Comment)

	// Charges fixed at request time are applied, not recomputed.
	require.True(t, res.DebitEntry.Fee.Equal(transfer.Fee))
	require.True(t, res.DebitEntry.ResultingBalance.Equal(decimal.NewFromInt(79_800)))

	require.Len(t, committed.Transactions, 2)
	require.NotNil(t, committed.Transfer)
	require.Equal(t, domain.TransferStatusApproved, committed.Transfer.Status)
}

func TestConfirmReject(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	partners := NewMockPartners(ctrl)

	from := sealedAccount(100_000, 10)
	to := sealedAccount(5_000, 10)
	transfer := pendingTransfer(from, to)

	repo.EXPECT().GetCalendar(gomock.Any()).Return(openCalendar(), nil)
	repo.EXPECT().GetTransfer(gomock.Any(), gomock.Eq(transfer.ID)).Return(transfer, nil)

	var committed domain.OperationBatch
	repo.EXPECT().Commit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, batch domain.OperationBatch) (domain.OperationBatch, error) {
			committed = batch
			return batch, nil
		})

	service := newTestService(t, repo, partners)

	res, err := service.Confirm(context.Background(), 9, transfer.ID, domain.TransferDecisionReject, "suspicious")
	require.NoError(t, err)

	require.Equal(t, domain.TransferStatusRejected, res.Transfer.Status)
	require.Equal(t, "suspicious", res.Transfer.Comment)

	// Rejection records the decision only.
	require.Empty(t, committed.Accounts)
	require.Empty(t, committed.Transactions)
	require.Empty(t, committed.TellerOperations)
	require.Equal(t, domain.TransferStatusRejected, committed.Transfer.Status)
}

func TestConfirmTerminalStates(t *testing.T) {
	t.Parallel()

	from := sealedAccount(100_000, 10)
	to := sealedAccount(5_000, 10)

	testCases := []struct {
		name     string
		status   domain.TransferStatus
		decision domain.TransferDecision
		wantErr  error
	}{
		{
			name:     "Already approved",
			status:   domain.TransferStatusApproved,
			decision: domain.TransferDecisionReject,
			wantErr:  domain.ErrTransferAlreadyDecided,
		},
		{
			name:     "Already rejected",
			status:   domain.TransferStatusRejected,
			decision: domain.TransferDecisionApprove,
			wantErr:  domain.ErrTransferAlreadyDecided,
		},
		{
			name:     "Unknown decision",
			status:   domain.TransferStatusPending,
			decision: domain.TransferDecision("MAYBE"),
			wantErr:  domain.ErrUnknownTransferDecision,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			repo := NewMockRepo(ctrl)
			partners := NewMockPartners(ctrl)

			transfer := pendingTransfer(from, to)
			transfer.Status = tc.status

			if tc.wantErr == domain.ErrTransferAlreadyDecided {
				repo.EXPECT().GetCalendar(gomock.Any()).Return(openCalendar(), nil)
				repo.EXPECT().GetTransfer(gomock.Any(), gomock.Any()).Return(transfer, nil)
			}
			repo.EXPECT().Commit(gomock.Any(), gomock.Any()).Times(0)

			service := newTestService(t, repo, partners)

			_, err := service.Confirm(context.Background(), 9, transfer.ID, tc.decision, "")
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}
