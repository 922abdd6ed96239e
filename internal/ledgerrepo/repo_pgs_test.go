package ledgerrepo

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/corebank/branchledger/internal/accountrepo"
	"github.com/corebank/branchledger/internal/domain"
	"github.com/corebank/branchledger/pkg/configpkg"
	"github.com/corebank/branchledger/pkg/errorspkg"
	"github.com/corebank/branchledger/pkg/integritypkg"
	"github.com/corebank/branchledger/pkg/randompkg"
)

var (
	testRepo        *RepoPGS
	testAccountRepo *accountrepo.RepoPGS
	testGuard       *integritypkg.Guard
)

func TestMain(m *testing.M) {
	flag.Parse()

	if testing.Short() {
		os.Exit(0)
	}

	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	testDB, err := sql.Open(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal("cannot connect to db:", err)
	}

	testRepo = NewRepoPGS(testDB)
	testAccountRepo = accountrepo.NewRepoPGS(testDB)
	testGuard = integritypkg.NewGuard(config.BalanceDigestKey)

	os.Exit(m.Run())
}

func createTestAccount(t *testing.T, balance decimal.Decimal) domain.Account {
	t.Helper()

	number := randompkg.AccountNumber()

	account, err := testAccountRepo.Create(context.Background(), domain.Account{
		Number:        number,
		CustomerID:    randompkg.Intn(1_000_000),
		Name:          randompkg.Owner(),
		BranchID:      randompkg.BranchID(),
		BankID:        1,
		Type:          domain.AccountTypeSavings,
		Status:        domain.AccountStatusActive,
		Balance:       balance,
		BalanceDigest: testGuard.Seal(balance, number),
		ProductID:     randompkg.IntBetween(1, 10),
	})
	require.NoError(t, err)

	return account
}

// moveBalance stages the signed delta on the account aggregate the way the
// transaction writer does before a commit.
func moveBalance(account *domain.Account, delta decimal.Decimal) {
	account.PreviousBalance = account.Balance
	account.Balance = account.Balance.Add(delta)
	account.BalanceDigest = testGuard.Seal(account.Balance, account.Number)
}

func newTestEntry(account domain.Account, direction domain.Direction, amount decimal.Decimal) *domain.Transaction {
	return &domain.Transaction{
		Reference:           domain.NewReference(domain.KindTransfer, false),
		Kind:                domain.KindTransfer,
		Direction:           direction,
		AccountID:           account.ID,
		Amount:              amount,
		PreviousBalance:     account.PreviousBalance,
		ResultingBalance:    account.Balance,
		SourceBranchID:      account.BranchID,
		DestinationBranchID: account.BranchID,
		Status:              domain.TransactionStatusCompleted,
		TellerID:            1,
		AccountingDate:      time.Now(),
	}
}

func TestCommit(t *testing.T) {
	sender := createTestAccount(t, decimal.NewFromInt(10_000))
	receiver := createTestAccount(t, decimal.NewFromInt(2_000))

	amount := decimal.NewFromInt(1_500)
	moveBalance(&sender, amount.Neg())
	moveBalance(&receiver, amount)

	batch := domain.OperationBatch{
		Accounts: []*domain.Account{&sender, &receiver},
		Transactions: []*domain.Transaction{
			newTestEntry(sender, domain.DirectionDebit, amount),
			newTestEntry(receiver, domain.DirectionCredit, amount),
		},
	}

	committed, err := testRepo.Commit(context.Background(), batch)
	require.NoError(t, err)

	// Created rows are written back onto the staged entries.
	for _, entry := range committed.Transactions {
		require.NotZero(t, entry.ID)
		require.NotZero(t, entry.CreatedAt)
	}

	gotSender, err := testRepo.GetAccount(context.Background(), sender.ID)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(8_500).Equal(gotSender.Balance))
	require.EqualValues(t, 1, gotSender.Version)
	require.True(t, testGuard.Verify(gotSender.Balance, gotSender.BalanceDigest, gotSender.Number))

	gotReceiver, err := testRepo.GetAccount(context.Background(), receiver.ID)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(3_500).Equal(gotReceiver.Balance))
	require.EqualValues(t, 1, gotReceiver.Version)

	debit, err := testRepo.GetTransactionByReference(context.Background(),
		batch.Transactions[0].Reference)
	require.NoError(t, err)
	require.Equal(t, sender.ID, debit.AccountID)
	require.True(t, amount.Equal(debit.Amount))
}

func TestCommitRollsBackMidBatchFailure(t *testing.T) {
	account := createTestAccount(t, decimal.NewFromInt(5_000))

	// Seed an entry whose reference the batch will collide with.
	seeded := newTestEntry(account, domain.DirectionCredit, decimal.NewFromInt(100))
	_, err := testRepo.Commit(context.Background(), domain.OperationBatch{
		Transactions: []*domain.Transaction{seeded},
	})
	require.NoError(t, err)

	moveBalance(&account, decimal.NewFromInt(700))
	duplicate := newTestEntry(account, domain.DirectionCredit, decimal.NewFromInt(700))
	duplicate.Reference = seeded.Reference

	_, err = testRepo.Commit(context.Background(), domain.OperationBatch{
		Accounts:     []*domain.Account{&account},
		Transactions: []*domain.Transaction{duplicate},
	})
	require.ErrorIs(t, err, errorspkg.ErrInternal)

	// The account update that preceded the failing insert must not persist.
	got, err := testRepo.GetAccount(context.Background(), account.ID)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(5_000).Equal(got.Balance))
	require.EqualValues(t, 0, got.Version)
}

func TestCommitStaleAccount(t *testing.T) {
	account := createTestAccount(t, decimal.NewFromInt(5_000))
	stale := account

	moveBalance(&account, decimal.NewFromInt(1_000))
	_, err := testRepo.Commit(context.Background(), domain.OperationBatch{
		Accounts: []*domain.Account{&account},
	})
	require.NoError(t, err)

	// A commit built from the pre-update snapshot must find the version gone.
	moveBalance(&stale, decimal.NewFromInt(2_000))
	entry := newTestEntry(stale, domain.DirectionCredit, decimal.NewFromInt(2_000))

	_, err = testRepo.Commit(context.Background(), domain.OperationBatch{
		Accounts:     []*domain.Account{&stale},
		Transactions: []*domain.Transaction{entry},
	})
	require.ErrorIs(t, err, domain.ErrStaleAccount)

	// Nothing of the losing batch persists.
	_, err = testRepo.GetTransactionByReference(context.Background(), entry.Reference)
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)

	got, err := testRepo.GetAccount(context.Background(), account.ID)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(6_000).Equal(got.Balance))
	require.EqualValues(t, 1, got.Version)
}

func TestCommitConcurrent(t *testing.T) {
	account1 := createTestAccount(t, decimal.NewFromInt(10_000))
	account2 := createTestAccount(t, decimal.NewFromInt(10_000))

	// Run n concurrent commits, alternating direction so account pairs are
	// touched in opposite order. Losers of the version race retry with a
	// fresh read.
	n := 10
	amount := decimal.NewFromInt(100)

	errs := make(chan error)

	for i := 0; i < n; i++ {
		fromID, toID := account1.ID, account2.ID
		if i%2 == 0 {
			fromID, toID = account2.ID, account1.ID
		}

		go func() {
			errs <- commitWithRetry(fromID, toID, amount)
		}()
	}

	for i := 0; i < n; i++ {
		require.NoError(t, <-errs)
	}

	// Directions alternate evenly, so both balances end where they started.
	got1, err := testRepo.GetAccount(context.Background(), account1.ID)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(10_000).Equal(got1.Balance))

	got2, err := testRepo.GetAccount(context.Background(), account2.ID)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(10_000).Equal(got2.Balance))
	require.True(t, testGuard.Verify(got2.Balance, got2.BalanceDigest, got2.Number))
}

func commitWithRetry(fromID, toID int64, amount decimal.Decimal) error {
	ctx := context.Background()

	for attempt := 0; attempt < 50; attempt++ {
		from, err := testRepo.GetAccount(ctx, fromID)
		if err != nil {
			return err
		}

		to, err := testRepo.GetAccount(ctx, toID)
		if err != nil {
			return err
		}

		moveBalance(&from, amount.Neg())
		moveBalance(&to, amount)

		_, err = testRepo.Commit(ctx, domain.OperationBatch{
			Accounts: []*domain.Account{&from, &to},
			Transactions: []*domain.Transaction{
				newTestEntry(from, domain.DirectionDebit, amount),
				newTestEntry(to, domain.DirectionCredit, amount),
			},
		})
		if errors.Is(err, domain.ErrStaleAccount) {
			continue
		}

		return err
	}

	return domain.ErrStaleAccount
}

func TestCommitTransferLifecycle(t *testing.T) {
	sender := createTestAccount(t, decimal.NewFromInt(5_000))
	receiver := createTestAccount(t, decimal.NewFromInt(5_000))

	transfer := &domain.Transfer{
		Reference:           domain.NewReference(domain.KindTransfer, true),
		Type:                domain.TransferTypeInterBranch,
		Status:              domain.TransferStatusPending,
		FromAccountNumber:   sender.Number,
		ToAccountNumber:     receiver.Number,
		FromName:            sender.Name,
		ToName:              receiver.Name,
		Amount:              decimal.NewFromInt(1_000),
		Fee:                 decimal.NewFromInt(10),
		SourceBranchID:      sender.BranchID,
		DestinationBranchID: receiver.BranchID,
		InitiatedBy:         1,
		AccountingDate:      time.Now(),
	}

	// ID zero commits through the create branch.
	committed, err := testRepo.Commit(context.Background(), domain.OperationBatch{
		Transfer: transfer,
	})
	require.NoError(t, err)
	require.NotZero(t, committed.Transfer.ID)
	require.Equal(t, domain.TransferStatusPending, committed.Transfer.Status)

	// A set ID commits through the decision branch.
	decision := *committed.Transfer
	decision.Status = domain.TransferStatusApproved
	decision.DecidedBy = 2
	decision.Comment = "approved at the counter"
	decision.DecidedAt = time.Now()

	decided, err := testRepo.Commit(context.Background(), domain.OperationBatch{
		Transfer: &decision,
	})
	require.NoError(t, err)
	require.Equal(t, domain.TransferStatusApproved, decided.Transfer.Status)
	require.EqualValues(t, 2, decided.Transfer.DecidedBy)

	got, err := testRepo.GetTransfer(context.Background(), decision.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TransferStatusApproved, got.Status)

	// The pending predicate makes the decision single-shot.
	again := *committed.Transfer
	again.Status = domain.TransferStatusRejected
	again.DecidedBy = 3
	again.DecidedAt = time.Now()

	_, err = testRepo.Commit(context.Background(), domain.OperationBatch{
		Transfer: &again,
	})
	require.ErrorIs(t, err, domain.ErrTransferAlreadyDecided)
}
