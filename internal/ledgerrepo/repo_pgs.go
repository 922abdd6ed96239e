// Package ledgerrepo is the unit-of-work over the per-entity repositories.
// Services stage every row of one logical operation on a domain.OperationBatch
// and Commit writes the whole batch inside a single database transaction.
package ledgerrepo

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/rs/zerolog"

	"github.com/corebank/branchledger/internal/accountrepo"
	"github.com/corebank/branchledger/internal/calendarrepo"
	"github.com/corebank/branchledger/internal/domain"
	"github.com/corebank/branchledger/internal/paramrepo"
	"github.com/corebank/branchledger/internal/tellerrepo"
	"github.com/corebank/branchledger/internal/transactionrepo"
	"github.com/corebank/branchledger/internal/transferrepo"
	"github.com/corebank/branchledger/pkg/errorspkg"
)

// RepoPGS bundles the per-entity repositories behind the service Repo
// interfaces and owns the commit boundary.
type RepoPGS struct {
	conn *sql.DB

	accounts     *accountrepo.RepoPGS
	transactions *transactionrepo.RepoPGS
	tellers      *tellerrepo.RepoPGS
	transfers    *transferrepo.RepoPGS
	params       *paramrepo.RepoPGS
	calendar     *calendarrepo.RepoPGS
}

// NewRepoPGS returns ledger RepoPGS with a connection used to start
// transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		conn:         db,
		accounts:     accountrepo.NewRepoPGS(db),
		transactions: transactionrepo.NewRepoPGS(db),
		tellers:      tellerrepo.NewRepoPGS(db),
		transfers:    transferrepo.NewRepoPGS(db),
		params:       paramrepo.NewRepoPGS(db),
		calendar:     calendarrepo.NewRepoPGS(db),
	}
}

// GetCalendar returns the current operational calendar.
func (r *RepoPGS) GetCalendar(ctx context.Context) (domain.OperationalCalendar, error) {
	return r.calendar.Get(ctx)
}

// GetTeller returns the teller with the given id.
func (r *RepoPGS) GetTeller(ctx context.Context, id int64) (domain.Teller, error) {
	return r.tellers.Get(ctx, id)
}

// GetTellerByUsername returns the teller with the given username.
func (r *RepoPGS) GetTellerByUsername(ctx context.Context, username string) (domain.Teller, error) {
	return r.tellers.GetByUsername(ctx, username)
}

// GetAccount returns the account with the given id.
func (r *RepoPGS) GetAccount(ctx context.Context, id int64) (domain.Account, error) {
	return r.accounts.Get(ctx, id)
}

// GetAccountByNumber returns the account with the given account number.
func (r *RepoPGS) GetAccountByNumber(ctx context.Context, number string) (domain.Account, error) {
	return r.accounts.GetByNumber(ctx, number)
}

// GetDepositParameter returns the deposit policy of the given product.
func (r *RepoPGS) GetDepositParameter(ctx context.Context, productID int32) (domain.CashDepositParameter, error) {
	return r.params.GetDepositParameter(ctx, productID)
}

// GetWithdrawalParameter returns the withdrawal policy of the given product.
func (r *RepoPGS) GetWithdrawalParameter(ctx context.Context, productID int32) (domain.CashWithdrawalParameter, error) {
	return r.params.GetWithdrawalParameter(ctx, productID)
}

// GetTransferParameter returns the transfer policy of the given product and
// transfer type.
func (r *RepoPGS) GetTransferParameter(ctx context.Context, productID int32, transferType domain.TransferType) (domain.TransferParameter, error) {
	return r.params.GetTransferParameter(ctx, productID, transferType)
}

// GetTransactionByReference returns the ledger entry with the given reference.
func (r *RepoPGS) GetTransactionByReference(ctx context.Context, reference string) (domain.Transaction, error) {
	return r.transactions.GetByReference(ctx, reference)
}

// GetTransfer returns the transfer record with the given id.
func (r *RepoPGS) GetTransfer(ctx context.Context, id int64) (domain.Transfer, error) {
	return r.transfers.Get(ctx, id)
}

// Commit writes every staged row of the batch inside one transaction and
// returns the batch with the created rows filled in. Account updates are
// version-guarded; a concurrent mutation surfaces as domain.ErrStaleAccount
// and nothing of the batch persists.
func (r *RepoPGS) Commit(ctx context.Context, batch domain.OperationBatch) (domain.OperationBatch, error) {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return batch, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	accounts := accountrepo.NewRepoPGS(tx)
	transactions := transactionrepo.NewRepoPGS(tx)
	tellers := tellerrepo.NewRepoPGS(tx)
	transfers := transferrepo.NewRepoPGS(tx)

	// Update accounts in consistent id order to avoid deadlocks between
	// concurrent operations touching the same pair.
	updates := make([]*domain.Account, len(batch.Accounts))
	copy(updates, batch.Accounts)
	sort.Slice(updates, func(i, j int) bool { return updates[i].ID < updates[j].ID })

	for _, account := range updates {
		if err := accounts.UpdateLedger(ctx, account); err != nil {
			return batch, err
		}
	}

	for _, entry := range batch.Transactions {
		created, err := transactions.Create(ctx, *entry)
		if err != nil {
			return batch, err
		}

		*entry = created
	}

	for _, op := range batch.TellerOperations {
		created, err := tellers.CreateOperation(ctx, *op)
		if err != nil {
			return batch, err
		}

		*op = created
	}

	if batch.Transfer != nil {
		var written domain.Transfer

		if batch.Transfer.ID == 0 {
			written, err = transfers.Create(ctx, *batch.Transfer)
		} else {
			written, err = transfers.UpdateDecision(ctx, *batch.Transfer)
		}

		if err != nil {
			return batch, err
		}

		*batch.Transfer = written
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return batch, errorspkg.ErrInternal
	}

	return batch, nil
}
