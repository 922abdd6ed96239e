// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/corebank/branchledger/internal/domain"
	"github.com/corebank/branchledger/pkg/errorspkg"
	"github.com/corebank/branchledger/pkg/jsonresponse"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	GetByNumber(ctx context.Context, number string) (domain.Account, error)
	List(ctx context.Context, branchID int32, pageSize, pageID int32) ([]domain.Account, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(service Service) Handler {
	return Handler{service: service}
}

type createRequest struct {
	CustomerID int64  `json:"customer_id" binding:"required,min=1"`
	Name       string `json:"name" binding:"required"`
	BranchID   int32  `json:"branch_id" binding:"required,min=1"`
	BankID     int32  `json:"bank_id" binding:"required,min=1"`
	Type       string `json:"type" binding:"required,oneof=SAVINGS CURRENT LOAN TELLER"`
	ProductID  int32  `json:"product_id" binding:"required,min=1"`
}

// Create handles http request to open an account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	account, err := h.service.Create(ctx, domain.CreateAccountParams{
		CustomerID: req.CustomerID,
		Name:       req.Name,
		BranchID:   req.BranchID,
		BankID:     req.BankID,
		Type:       domain.AccountType(req.Type),
		ProductID:  req.ProductID,
	})
	if err != nil {
		switch err {
		case domain.ErrAccountNumberAlreadyExists:
			gctx.JSON(http.StatusConflict, jsonresponse.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, gin.H{"account": account})
}

type getRequest struct {
	Number string `uri:"number" binding:"required,numeric,len=12"`
}

// Get handles http request to look up an account by number.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	account, err := h.service.GetByNumber(ctx, req.Number)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, jsonresponse.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, gin.H{"account": account})
}

type listRequest struct {
	BranchID int32 `form:"branch_id" binding:"required,min=1"`
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

// List handles http request to page through a branch's accounts.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	accounts, err := h.service.List(ctx, req.BranchID, req.PageSize, req.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, gin.H{"accounts": accounts})
}
