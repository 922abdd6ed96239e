// Package transferdelivery manages delivery layer of transfers and the
// two-phase request/confirm workflow.
package transferdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/corebank/branchledger/internal/domain"
	"github.com/corebank/branchledger/internal/middleware"
	"github.com/corebank/branchledger/pkg/errorspkg"
	"github.com/corebank/branchledger/pkg/jsonresponse"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, tellerID int64, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
	Request(ctx context.Context, tellerID int64, arg domain.CreateTransferParams) (domain.Transfer, error)
	Confirm(ctx context.Context, tellerID int64, transferID int64, decision domain.TransferDecision, comment string) (domain.TransferTxResult, error)
	Get(ctx context.Context, id int64) (domain.Transfer, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(service Service) Handler {
	return Handler{service: service}
}

func statusCode(err error) int {
	switch err {
	case domain.ErrAccountNotFound, domain.ErrTellerNotFound,
		domain.ErrCustomerNotFound, domain.ErrTransferNotFound:
		return http.StatusNotFound
	case domain.ErrDayClosed, domain.ErrYearClosed,
		domain.ErrAccountInactive, domain.ErrBalanceIntegrity,
		domain.ErrInsufficientBalance, domain.ErrAmountOutOfRange,
		domain.ErrMembershipNotApproved, domain.ErrParameterNotFound,
		domain.ErrTellerNotAuthorized, domain.ErrTellerCeilingExceeded:
		return http.StatusForbidden
	case domain.ErrNegativeAmount, domain.ErrInvalidAmount,
		domain.ErrSameAccountTransfer, domain.ErrUnknownTransferDecision:
		return http.StatusBadRequest
	case domain.ErrTransferAlreadyDecided, domain.ErrStaleAccount:
		return http.StatusConflict
	case errorspkg.ErrPartnerUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func abort(gctx *gin.Context, err error) {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		err = errorspkg.ErrInternal
	}

	gctx.JSON(code, jsonresponse.Error(err))
}

type createRequest struct {
	FromAccountNumber string          `json:"from_account_number" binding:"required,numeric,len=12"`
	ToAccountNumber   string          `json:"to_account_number" binding:"required,numeric,len=12"`
	Amount            decimal.Decimal `json:"amount" binding:"required,amount"`
}

func bindCreate(gctx *gin.Context) (domain.CreateTransferParams, bool) {
	l := zerolog.Ctx(gctx.Request.Context())

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return domain.CreateTransferParams{}, false
	}

	return domain.CreateTransferParams{
		FromAccountNumber: req.FromAccountNumber,
		ToAccountNumber:   req.ToAccountNumber,
		Amount:            req.Amount,
	}, true
}

// Create handles http request to run an immediate transfer.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	arg, ok := bindCreate(gctx)
	if !ok {
		return
	}

	res, err := h.service.Transfer(ctx, middleware.TellerID(gctx), arg)
	if err != nil {
		abort(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, res)
}

// CreateRequest handles http request to open a pending transfer request.
func (h *Handler) CreateRequest(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	arg, ok := bindCreate(gctx)
	if !ok {
		return
	}

	transfer, err := h.service.Request(ctx, middleware.TellerID(gctx), arg)
	if err != nil {
		abort(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, gin.H{"transfer": transfer})
}

type decideURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type decideRequest struct {
	Decision string `json:"decision" binding:"required,oneof=APPROVE REJECT"`
	Comment  string `json:"comment"`
}

// Decide handles http request to approve or reject a pending transfer.
func (h *Handler) Decide(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri decideURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	var req decideRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	res, err := h.service.Confirm(ctx, middleware.TellerID(gctx), uri.ID,
		domain.TransferDecision(req.Decision), req.Comment)
	if err != nil {
		abort(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, res)
}

// Get handles http request to look up a transfer request.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri decideURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	transfer, err := h.service.Get(ctx, uri.ID)
	if err != nil {
		abort(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, gin.H{"transfer": transfer})
}
