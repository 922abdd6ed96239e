// Package tellerdelivery manages delivery layer of teller authentication.
package tellerdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/corebank/branchledger/internal/domain"
	"github.com/corebank/branchledger/pkg/errorspkg"
	"github.com/corebank/branchledger/pkg/jsonresponse"
)

// Service provides service layer interface needed by teller delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package tellerdelivery
type Service interface {
	Login(ctx context.Context, username, password string) (string, domain.Teller, error)
}

// Handler facilitates teller delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns teller handler.
func NewHandler(service Service) Handler {
	return Handler{service: service}
}

type loginRequest struct {
	Username string `json:"username" binding:"required,alphanum"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginResponse struct {
	AccessToken string        `json:"access_token"`
	Teller      domain.Teller `json:"teller"`
}

// Login handles http request to authenticate a teller.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req loginRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	accessToken, teller, err := h.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch err {
		case domain.ErrTellerNotFound:
			gctx.JSON(http.StatusNotFound, jsonresponse.Error(err))
		case domain.ErrWrongPassword:
			gctx.JSON(http.StatusUnauthorized, jsonresponse.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, loginResponse{
		AccessToken: accessToken,
		Teller:      teller,
	})
}
