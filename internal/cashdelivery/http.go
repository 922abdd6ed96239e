// Package cashdelivery manages delivery layer of teller cash operations.
package cashdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/corebank/branchledger/internal/cashservice"
	"github.com/corebank/branchledger/internal/domain"
	"github.com/corebank/branchledger/internal/middleware"
	"github.com/corebank/branchledger/pkg/errorspkg"
	"github.com/corebank/branchledger/pkg/jsonresponse"
)

// Service provides service layer interface needed by cash delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package cashdelivery
type Service interface {
	Deposit(ctx context.Context, tellerID int64, arg cashservice.OperationParams) (cashservice.OperationResult, error)
	Withdraw(ctx context.Context, tellerID int64, arg cashservice.OperationParams) (cashservice.OperationResult, error)
	RepayLoan(ctx context.Context, tellerID int64, arg cashservice.OperationParams) (cashservice.OperationResult, error)
	GetTransaction(ctx context.Context, reference string) (domain.Transaction, error)
}

// Handler facilitates cash delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns cash operation handler.
func NewHandler(service Service) Handler {
	return Handler{service: service}
}

// statusCode maps operation sentinels to HTTP statuses. Policy refusals are
// Forbidden; malformed input is Bad Request; concurrency conflicts are
// Conflict.
func statusCode(err error) int {
	switch err {
	case domain.ErrAccountNotFound, domain.ErrTellerNotFound,
		domain.ErrCustomerNotFound, domain.ErrTransactionNotFound:
		return http.StatusNotFound
	case domain.ErrDayClosed, domain.ErrYearClosed,
		domain.ErrAccountInactive, domain.ErrBalanceIntegrity,
		domain.ErrInsufficientBalance, domain.ErrAmountOutOfRange,
		domain.ErrMembershipNotApproved, domain.ErrParameterNotFound,
		domain.ErrTellerNotAuthorized, domain.ErrTellerCeilingExceeded:
		return http.StatusForbidden
	case domain.ErrNegativeAmount, domain.ErrInvalidAmount,
		domain.ErrUnknownOperationKind:
		return http.StatusBadRequest
	case domain.ErrStaleAccount:
		return http.StatusConflict
	case errorspkg.ErrPartnerUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type operationRequest struct {
	AccountNumber string          `json:"account_number" binding:"required,numeric,len=12"`
	Amount        decimal.Decimal `json:"amount" binding:"required,amount"`
}

type operation func(ctx context.Context, tellerID int64, arg cashservice.OperationParams) (cashservice.OperationResult, error)

func (h *Handler) run(gctx *gin.Context, op operation) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req operationRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	res, err := op(ctx, middleware.TellerID(gctx), cashservice.OperationParams{
		AccountNumber: req.AccountNumber,
		Amount:        req.Amount,
	})
	if err != nil {
		code := statusCode(err)
		if code == http.StatusInternalServerError {
			err = errorspkg.ErrInternal
		}

		gctx.JSON(code, jsonresponse.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, res)
}

// Deposit handles http request to deposit cash onto an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.run(gctx, h.service.Deposit)
}

// Withdraw handles http request to withdraw cash from an account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	h.run(gctx, h.service.Withdraw)
}

// RepayLoan handles http request to repay a loan in cash.
func (h *Handler) RepayLoan(gctx *gin.Context) {
	h.run(gctx, h.service.RepayLoan)
}

type getTransactionRequest struct {
	Reference string `uri:"reference" binding:"required"`
}

// GetTransaction handles http request to look up a ledger entry by reference.
func (h *Handler) GetTransaction(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getTransactionRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	tx, err := h.service.GetTransaction(ctx, req.Reference)
	if err != nil {
		code := statusCode(err)
		if code == http.StatusInternalServerError {
			err = errorspkg.ErrInternal
		}

		gctx.JSON(code, jsonresponse.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, gin.H{"transaction": tx})
}
